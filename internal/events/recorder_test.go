package events

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nithishcb360/recruit-sub001/internal/models"
	"github.com/nithishcb360/recruit-sub001/internal/utils"
)

func testLogger() utils.Logger {
	return utils.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
}

func TestRecorderReceivesPublishedEvents(t *testing.T) {
	bus, err := NewBus(nil, watermill.NopLogger{})
	require.NoError(t, err)
	defer bus.Close()

	recorder := NewRecorder(10, testLogger())
	require.NoError(t, recorder.Start(bus))
	defer recorder.Stop()

	require.NoError(t, bus.Publish(&models.ActivityEvent{
		Action:     models.ActivityTemplateCreated,
		EntityType: "template",
		EntityID:   42,
		EntityName: "Onboarding Survey",
	}))

	require.Eventually(t, func() bool {
		return len(recorder.Recent(10)) == 1
	}, 2*time.Second, 10*time.Millisecond)

	recent := recorder.Recent(10)
	assert.Equal(t, models.ActivityTemplateCreated, recent[0].Action)
	assert.NotEmpty(t, recent[0].ID)
	assert.False(t, recent[0].OccurredAt.IsZero())
}

func TestRecorderCapacityAndOrder(t *testing.T) {
	bus, err := NewBus(nil, watermill.NopLogger{})
	require.NoError(t, err)
	defer bus.Close()

	recorder := NewRecorder(3, testLogger())
	require.NoError(t, recorder.Start(bus))
	defer recorder.Stop()

	for i := int64(1); i <= 5; i++ {
		require.NoError(t, bus.Publish(&models.ActivityEvent{
			Action:   models.ActivityCandidateCreated,
			EntityID: i,
		}))
	}

	require.Eventually(t, func() bool {
		recent := recorder.Recent(0)
		return len(recent) == 3 && recent[0].EntityID == 5
	}, 2*time.Second, 10*time.Millisecond)

	recent := recorder.Recent(0)
	// Newest first, capped at capacity.
	assert.Equal(t, int64(5), recent[0].EntityID)
	assert.Equal(t, int64(3), recent[2].EntityID)
}
