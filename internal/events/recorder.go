package events

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/nithishcb360/recruit-sub001/internal/models"
	"github.com/nithishcb360/recruit-sub001/internal/utils"
)

const defaultRecorderCapacity = 50

// Recorder consumes the activity topic and keeps the most recent events in
// memory for the dashboard feed. Oldest events fall off once capacity is
// reached.
type Recorder struct {
	mu       sync.RWMutex
	events   []models.ActivityEvent
	capacity int
	logger   utils.Logger
	cancel   context.CancelFunc
}

func NewRecorder(capacity int, logger utils.Logger) *Recorder {
	if capacity <= 0 {
		capacity = defaultRecorderCapacity
	}
	return &Recorder{
		events:   make([]models.ActivityEvent, 0, capacity),
		capacity: capacity,
		logger:   logger,
	}
}

// Start subscribes to the bus and consumes until Stop or bus close.
func (r *Recorder) Start(bus *Bus) error {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	messages, err := bus.Subscribe(ctx)
	if err != nil {
		cancel()
		return err
	}

	go func() {
		for msg := range messages {
			var event models.ActivityEvent
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				r.logger.Warn("dropping unreadable activity event", "message_id", msg.UUID, "error", err)
				msg.Ack()
				continue
			}
			r.record(event)
			msg.Ack()
		}
	}()
	return nil
}

func (r *Recorder) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
}

func (r *Recorder) record(event models.ActivityEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	if len(r.events) > r.capacity {
		r.events = r.events[len(r.events)-r.capacity:]
	}
}

// Recent returns up to limit events, newest first.
func (r *Recorder) Recent(limit int) []models.ActivityEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 || limit > len(r.events) {
		limit = len(r.events)
	}
	out := make([]models.ActivityEvent, 0, limit)
	for i := len(r.events) - 1; i >= len(r.events)-limit; i-- {
		out = append(out, r.events[i])
	}
	return out
}
