package events

import (
	"context"
	log "log/slog"
	"time"

	"Inkwell/internal/api/config"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// Producer 领域事件生产者。
// 事件是旁路副作用，发送失败只记日志，不影响请求主链路。
type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewProducer(cfg *config.Config) (*Producer, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	p, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &Producer{
		producer: p,
		topic:    cfg.Kafka.EventTopic,
	}, nil
}

// Publish 发送单条事件，按文章ID分区保证同一文章的事件有序
func (s *Producer) Publish(ctx context.Context, evt *Event) {
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now()
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		log.ErrorContext(ctx, "event marshal failed", "type", evt.Type, "err", err)
		return
	}

	_, _, err = s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(evt.PostID),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		log.ErrorContext(ctx, "event publish failed", "type", evt.Type, "post_id", evt.PostID, "err", err)
	}
}

func (s *Producer) Close() error {
	return s.producer.Close()
}
