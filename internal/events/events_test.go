package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/JawwadIrshad/Resturant-App/internal/models"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func sampleOrder() models.Order {
	return models.Order{
		ID:            "ORD-001",
		Items:         []models.CartItem{{MenuItem: models.MenuItem{ID: "1"}, Quantity: 2}, {MenuItem: models.MenuItem{ID: "5"}, Quantity: 1}},
		FinalAmount:   decimal.RequireFromString("57.2"),
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPaid,
		OrderType:     models.OrderTypeDineIn,
		UpdatedAt:     time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestKafkaPublisher(t *testing.T) {
	w := &recordingWriter{}
	p := NewKafkaPublisher(w)

	e := NewOrderEvent(OrderCreated, "sess-1", sampleOrder())
	if err := p.Publish(context.Background(), e); err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(w.msgs))
	}
	msg := w.msgs[0]
	if string(msg.Key) != "order-sess-1-ORD-001" {
		t.Fatalf("unexpected key %q", msg.Key)
	}

	var got OrderEvent
	if err := json.Unmarshal(msg.Value, &got); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if got.ItemCount != 3 || got.FinalAmount != 57.2 || got.Type != OrderCreated {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestKafkaPublisherWrapsErrors(t *testing.T) {
	boom := errors.New("broker down")
	p := NewKafkaPublisher(&recordingWriter{err: boom})
	if err := p.Publish(context.Background(), NewOrderEvent(OrderCancelled, "s", sampleOrder())); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped broker error, got %v", err)
	}
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(zerolog.New(&buf))
	if err := p.Publish(context.Background(), NewOrderEvent(OrderStatusChanged, "s", sampleOrder())); err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if !strings.Contains(buf.String(), `"order_id":"ORD-001"`) {
		t.Fatalf("unexpected log line %s", buf.String())
	}
}
