// Package events publishes order lifecycle changes for downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/JawwadIrshad/Resturant-App/internal/models"
	"github.com/JawwadIrshad/Resturant-App/internal/pricing"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

const (
	OrderCreated        = "order.created"
	OrderStatusChanged  = "order.status_changed"
	OrderPaymentChanged = "order.payment_changed"
	OrderCancelled      = "order.cancelled"
)

type OrderEvent struct {
	Type          string               `json:"type"`
	SessionID     string               `json:"session_id"`
	OrderID       string               `json:"order_id"`
	Status        models.OrderStatus   `json:"status"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	OrderType     models.OrderType     `json:"order_type"`
	FinalAmount   float64              `json:"final_amount"`
	ItemCount     int                  `json:"item_count"`
	OccurredAt    time.Time            `json:"occurred_at"`
}

func NewOrderEvent(typ, sessionID string, o models.Order) OrderEvent {
	count := 0
	for _, it := range o.Items {
		count += it.Quantity
	}
	return OrderEvent{
		Type:          typ,
		SessionID:     sessionID,
		OrderID:       o.ID,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		OrderType:     o.OrderType,
		FinalAmount:   pricing.Float(o.FinalAmount),
		ItemCount:     count,
		OccurredAt:    o.UpdatedAt,
	}
}

type Publisher interface {
	Publish(ctx context.Context, e OrderEvent) error
	Close() error
}

func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	w messageWriter
}

func NewKafkaPublisher(w messageWriter) *KafkaPublisher {
	return &KafkaPublisher{w: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e OrderEvent) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("order-%s-%s", e.SessionID, e.OrderID)),
		Value: body,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(e.Type)},
		},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", e.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}

// LogPublisher writes events to the log instead of a broker.
type LogPublisher struct {
	log zerolog.Logger
}

func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, e OrderEvent) error {
	p.log.Info().
		Str("event", e.Type).
		Str("session_id", e.SessionID).
		Str("order_id", e.OrderID).
		Str("status", string(e.Status)).
		Str("payment_status", string(e.PaymentStatus)).
		Float64("final_amount", e.FinalAmount).
		Msg("order event")
	return nil
}

func (p *LogPublisher) Close() error { return nil }
