// Package kafka delivers outbox messages to the broker.
package kafka

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"zapshift/internal/core/ports"
	"zapshift/internal/pkg/errs"

	kafkago "github.com/segmentio/kafka-go"
)

const defaultWriteTimeout = 10 * time.Second

// Producer writes synchronously: SendMessage returns only once every in-sync
// replica has the message, which is what lets the outbox mark it done.
type Producer struct {
	writer *kafkago.Writer
}

var _ ports.Producer = (*Producer)(nil)

// NewProducer connects lazily; nothing is dialled until the first send.
func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafkago.Writer{
			Addr:                   kafkago.TCP(brokers...),
			Balancer:               &kafkago.Hash{},
			RequiredAcks:           kafkago.RequireAll,
			AllowAutoTopicCreation: true,
			BatchSize:              1,
			MaxAttempts:            3,
			WriteTimeout:           defaultWriteTimeout,
		},
	}
}

// SendMessage hashes key onto a partition, so events of one tracking ID stay ordered.
func (p *Producer) SendMessage(ctx context.Context, topic, key string, value []byte) error {
	err := p.writer.WriteMessages(ctx, kafkago.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	})
	if err != nil {
		return errs.NewUpstreamUnavailableError("kafka", err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// LogProducer stands in for the broker when none is configured. Messages are
// logged and considered delivered.
type LogProducer struct {
	logger *slog.Logger
}

var _ ports.Producer = (*LogProducer)(nil)

func NewLogProducer(logger *slog.Logger) *LogProducer {
	return &LogProducer{logger: logger.With("component", "log_producer")}
}

func (p *LogProducer) SendMessage(ctx context.Context, topic, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return errors.Join(errs.NewUpstreamUnavailableError("log producer", err), err)
	}
	p.logger.InfoContext(ctx, "message published", "topic", topic, "key", key, "value", string(value))
	return nil
}

func (p *LogProducer) Close() error {
	return nil
}
