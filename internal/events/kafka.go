// Package events publishes scored reports to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"rumorwatch/internal/metrics"
	"rumorwatch/internal/models"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher writes one message per stored report to a Kafka topic.
type Publisher struct {
	writer  messageWriter
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewPublisher creates an asynchronous Kafka producer for topic. Writes
// return once the message is queued; delivery failures are logged and
// counted when the batch completes.
func NewPublisher(brokers []string, topic string, logger *slog.Logger, m *metrics.Metrics) *Publisher {
	p := &Publisher{logger: logger, metrics: m}
	p.writer = &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 5 * time.Second,
		Async:        true,
		Completion:   p.completed,
	}
	return p
}

// PublishReport serializes r and hands it to the writer. The report id is
// the message key, so events for one report land on one partition.
func (p *Publisher) PublishReport(ctx context.Context, r *models.Report) error {
	msg, err := serializeToMessage(r)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish report %s: %w", r.ID, err)
	}
	p.logger.Debug("report queued for publishing", "report_id", r.ID)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// completed runs after each asynchronous batch.
func (p *Publisher) completed(msgs []kafkago.Message, err error) {
	if err == nil {
		return
	}
	for _, msg := range msgs {
		p.metrics.PublishFailed()
		p.logger.Warn("failed to deliver report event", "report_id", string(msg.Key), "error", err)
	}
}

func serializeToMessage(r *models.Report) (kafkago.Message, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize report: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(r.ID.String()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "risk_level", Value: []byte(r.RiskLevel)},
			{Key: "created_at", Value: []byte(r.CreatedAt.UTC().Format(time.RFC3339))},
		},
	}, nil
}
