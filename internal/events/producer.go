package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/orderdesk/order-api/internal/transport"
)

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

type OrderCreatedEvent struct {
	EventID   string `json:"event_id"`
	Type      string `json:"type"`
	OrderID   int64  `json:"order_id"`
	UserID    int64  `json:"user_id"`
	Status    string `json:"status"`
	ItemCount int    `json:"item_count"`
}

func NewOrderCreated(detail *transport.OrderDetail) OrderCreatedEvent {
	return OrderCreatedEvent{
		EventID:   uuid.NewString(),
		Type:      "order_created",
		OrderID:   detail.ID,
		UserID:    detail.UserID,
		Status:    detail.Status,
		ItemCount: len(detail.Items),
	}
}

func (p *Producer) PublishOrderCreated(ctx context.Context, detail *transport.OrderDetail) error {
	event := NewOrderCreated(detail)
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.OrderID, 10)),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write failed: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
