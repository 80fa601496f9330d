// Package events fans audit events out to a message broker.
package events

import (
	"context"
	"log/slog"
)

// Publisher sends one encoded event. Key is used for partitioning or as the
// routing key.
type Publisher interface {
	Publish(ctx context.Context, key string, payload []byte) error
	Close() error
}

type Nop struct{}

func (Nop) Publish(context.Context, string, []byte) error { return nil }
func (Nop) Close() error                                  { return nil }

type Config struct {
	KafkaBrokers   []string
	KafkaTopic     string
	RabbitURL      string
	RabbitExchange string
}

// New picks Kafka when brokers are set, then RabbitMQ, and otherwise a
// publisher that drops everything.
func New(cfg Config, log *slog.Logger) (Publisher, error) {
	switch {
	case len(cfg.KafkaBrokers) > 0:
		log.Info("events.kafka.enabled", "topic", cfg.KafkaTopic)
		return NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic), nil
	case cfg.RabbitURL != "":
		p, err := NewRabbit(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			log.Error("events.rabbitmq.connect.failed", "err", err)
			return nil, err
		}
		log.Info("events.rabbitmq.enabled", "exchange", cfg.RabbitExchange)
		return p, nil
	default:
		log.Info("events.disabled")
		return Nop{}, nil
	}
}
