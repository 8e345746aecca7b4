package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"github.com/nithishcb360/recruit-sub001/internal/models"
)

// ActivityTopic carries every domain activity event.
const ActivityTopic = "recruit.activity"

// Bus wraps the watermill publisher plus the in-process subscriber feeding
// the recent-activities feed. With Kafka brokers configured events go to
// Kafka as well; without them everything stays on the in-process channel.
type Bus struct {
	publisher message.Publisher
	local     *gochannel.GoChannel
	kafkaPub  message.Publisher
}

func NewBus(kafkaBrokers []string, wmLogger watermill.LoggerAdapter) (*Bus, error) {
	local := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 256,
	}, wmLogger)

	bus := &Bus{publisher: local, local: local}

	if len(kafkaBrokers) > 0 {
		kafkaPub, err := kafka.NewPublisher(kafka.PublisherConfig{
			Brokers:   kafkaBrokers,
			Marshaler: kafka.DefaultMarshaler{},
		}, wmLogger)
		if err != nil {
			return nil, fmt.Errorf("create kafka publisher: %w", err)
		}
		bus.kafkaPub = kafkaPub
	}

	return bus, nil
}

// Publish emits one activity event. Local delivery always happens; Kafka
// delivery failures are returned but do not block local consumers.
func (b *Bus) Publish(event *models.ActivityEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode activity event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("action", event.Action)

	if err := b.local.Publish(ActivityTopic, msg); err != nil {
		return err
	}
	if b.kafkaPub != nil {
		kafkaMsg := message.NewMessage(event.ID, payload)
		kafkaMsg.Metadata.Set("action", event.Action)
		if err := b.kafkaPub.Publish(ActivityTopic, kafkaMsg); err != nil {
			return fmt.Errorf("publish to kafka: %w", err)
		}
	}
	return nil
}

// Subscribe returns the in-process channel for the activity topic. The
// subscription lives until ctx is cancelled or the bus is closed.
func (b *Bus) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return b.local.Subscribe(ctx, ActivityTopic)
}

func (b *Bus) Close() error {
	if b.kafkaPub != nil {
		if err := b.kafkaPub.Close(); err != nil {
			return err
		}
	}
	return b.local.Close()
}
