package mailer

import (
	"context"
	"fmt"
	"time"

	"Inkwell/internal/api/config"

	"github.com/go-resty/resty/v2"
)

// Client 邮件投递网关客户端。SMTP/模板渲染在网关侧完成，
// 这里只负责把内容交出去。
type Client struct {
	http   *resty.Client
	sender string
}

func NewClient(cfg config.NewsletterConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.DeliveryURL).
		SetTimeout(10 * time.Second).
		SetHeader("Authorization", "Bearer "+cfg.APIKey)

	return &Client{
		http:   client,
		sender: cfg.Sender,
	}
}

type sendReq struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Send 向单个收件人投递一封邮件
func (s *Client) Send(ctx context.Context, to, subject, body string) error {
	resp, err := s.http.R().
		SetContext(ctx).
		SetBody(&sendReq{From: s.sender, To: to, Subject: subject, Body: body}).
		Post("/api/send")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("delivery gateway returned %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

type batchReq struct {
	From       string      `json:"from"`
	Recipients []string    `json:"recipients"`
	Subject    string      `json:"subject"`
	Payload    interface{} `json:"payload"`
}

// SendBatch 批量投递，简报场景使用
func (s *Client) SendBatch(ctx context.Context, recipients []string, subject string, payload interface{}) error {
	resp, err := s.http.R().
		SetContext(ctx).
		SetBody(&batchReq{From: s.sender, Recipients: recipients, Subject: subject, Payload: payload}).
		Post("/api/send/batch")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("delivery gateway returned %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
