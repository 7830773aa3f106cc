package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/example/promostock/internal/infrastructure/store"
	"github.com/example/promostock/internal/notification"
)

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // key = item id, keeps per-item order within a partition
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Producer{writer: writer}
}

func (p *Producer) Publish(ctx context.Context, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	})
}

// MovementRecorded implements stock.ChangePublisher: every committed
// movement is published as an ItemChange keyed by item id.
func (p *Producer) MovementRecorded(ctx context.Context, m *store.Movement) error {
	return p.Publish(ctx, m.ItemID, notification.ItemChange{
		ItemID:     m.ItemID,
		Reason:     string(m.Kind),
		MovementID: m.ID,
	})
}

// ItemTouched implements catalog.ChangePublisher for metadata updates.
func (p *Producer) ItemTouched(ctx context.Context, itemID string) error {
	return p.Publish(ctx, itemID, notification.ItemChange{
		ItemID: itemID,
		Reason: notification.ReasonMetadata,
	})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
