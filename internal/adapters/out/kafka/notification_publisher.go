// Package kafka publishes workflow notifications as JSON events. An e-mail
// service consumes the topic; rendering and delivery happen there.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"procurement/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NotificationEvent is the message value. Field names are the wire contract
// with consumers and must not be renamed.
type NotificationEvent struct {
	Kind       string    `json:"kind"`
	OrderID    string    `json:"orderId"`
	PONumber   string    `json:"poNumber,omitempty"`
	Recipient  string    `json:"recipient"`
	Subject    string    `json:"subject"`
	Summary    string    `json:"summary"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewWriter builds a writer that keeps all messages of one order on one
// partition, so consumers see them in commit order.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
}

// NotificationPublisher implements ports.NotificationDispatcher.
type NotificationPublisher struct {
	writer    MessageWriter
	published *prometheus.CounterVec
}

// NewNotificationPublisher registers its counter with reg. A nil reg leaves
// the counter unregistered, which tests rely on.
func NewNotificationPublisher(writer MessageWriter, reg prometheus.Registerer) (*NotificationPublisher, error) {
	published := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "procurement_notifications_published_total",
			Help: "Notifications handed to Kafka, by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)
	if reg != nil {
		if err := reg.Register(published); err != nil {
			return nil, fmt.Errorf("register notification metrics: %w", err)
		}
	}

	return &NotificationPublisher{writer: writer, published: published}, nil
}

// Dispatch writes one event keyed by order id.
func (p *NotificationPublisher) Dispatch(ctx context.Context, n ports.Notification) error {
	value, err := json.Marshal(NotificationEvent{
		Kind:       string(n.Kind),
		OrderID:    n.OrderID,
		PONumber:   n.PONumber,
		Recipient:  n.Recipient,
		Subject:    n.Subject,
		Summary:    n.Summary,
		OccurredAt: n.OccurredAt,
	})
	if err != nil {
		p.published.WithLabelValues(string(n.Kind), "error").Inc()
		return fmt.Errorf("failed to marshal notification event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(n.OrderID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(n.Kind)},
		},
		Time: n.OccurredAt,
	})
	if err != nil {
		p.published.WithLabelValues(string(n.Kind), "error").Inc()
		return fmt.Errorf("failed to publish %s notification for order %s: %w", n.Kind, n.OrderID, err)
	}

	p.published.WithLabelValues(string(n.Kind), "ok").Inc()
	return nil
}

// Close flushes and closes the underlying writer.
func (p *NotificationPublisher) Close() error {
	return p.writer.Close()
}
