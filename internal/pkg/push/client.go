package push

import (
	"context"
	"fmt"
	"time"

	"Inkwell/internal/api/config"

	"github.com/go-resty/resty/v2"
)

// Client Web Push 网关客户端。订阅端点的管理与实际推送协议都在网关侧，
// 这里只负责把通知内容交给网关。
type Client struct {
	http *resty.Client
}

func NewClient(cfg config.PushConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.URL).
		SetTimeout(5 * time.Second).
		SetHeader("Authorization", "Bearer "+cfg.APIKey)

	return &Client{http: client}
}

type notifyReq struct {
	Receiver string `json:"receiver"`
	Title    string `json:"title"`
	Body     string `json:"body"`
}

// Notify 向指定用户推送一条通知
func (s *Client) Notify(ctx context.Context, receiver, title, body string) error {
	resp, err := s.http.R().
		SetContext(ctx).
		SetBody(&notifyReq{Receiver: receiver, Title: title, Body: body}).
		Post("/api/notify")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("push gateway returned %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
