// Package kafka publishes customer notifications to a Kafka topic.
//
// Each notification becomes one JSON message keyed by order ID, so all
// messages about one order land on the same partition in emission order.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"marketplace/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafka.Writer used by Publisher.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderNotificationMessage is the wire form of a notification.
type OrderNotificationMessage struct {
	OrderID    string    `json:"orderId"`
	CustomerID string    `json:"customerId"`
	Kind       string    `json:"kind"`
	Status     string    `json:"status"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher implements ports.NotificationPublisher on top of kafka-go.
type Publisher struct {
	writer messageWriter
}

var _ ports.NotificationPublisher = (*Publisher)(nil)

// NewPublisher creates a publisher writing to topic on the given brokers.
//
// Example:
//
//	publisher := kafka.NewPublisher([]string{"localhost:9092"}, "order.changed")
//	defer publisher.Close()
func NewPublisher(brokers []string, topic string) *Publisher {
	return NewPublisherWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	})
}

// NewPublisherWithWriter wraps an existing writer.
func NewPublisherWithWriter(writer messageWriter) *Publisher {
	return &Publisher{writer: writer}
}

// Publish writes the batch in one call. Kafka-go reports partial failures as a
// kafka.WriteErrors value, which is returned wrapped.
func (p *Publisher) Publish(ctx context.Context, batch []ports.Notification) error {
	if len(batch) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(batch))
	for _, n := range batch {
		msg, err := toMessage(n)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish %d notifications: %w", len(msgs), err)
	}
	return nil
}

// Close flushes pending writes and releases the connection.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func toMessage(n ports.Notification) (kafka.Message, error) {
	payload, err := json.Marshal(OrderNotificationMessage{
		OrderID:    n.OrderID.String(),
		CustomerID: n.CustomerID,
		Kind:       string(n.Kind),
		Status:     n.Status.String(),
		Note:       n.Note,
		OccurredAt: n.At,
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode notification for order %s: %w", n.OrderID, err)
	}

	return kafka.Message{
		Key:   []byte(n.OrderID.String()),
		Value: payload,
		Time:  n.At,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(n.Kind)},
		},
	}, nil
}
