package notifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calendarbot/internal/models"
)

func TestBuildDigests_OneMessagePerUser(t *testing.T) {
	date := models.NewDate(2025, time.April, 14)
	eventsByUser := map[string][]models.Event{
		"200": {
			{UserID: "200", Date: date, Time: models.TimeOfDay{Hour: 9, Minute: 30}, Description: "Standup"},
			{UserID: "200", Date: date, Time: models.TimeOfDay{Hour: 20, Minute: 43}, Description: "Dinner"},
		},
		"100": {
			{UserID: "100", Date: date, Time: models.TimeOfDay{Hour: 12}, Description: "Lunch"},
		},
	}

	digests := BuildDigests(date, eventsByUser)

	require.Len(t, digests, 2)
	// Deterministic order by user id.
	assert.Equal(t, "100", digests[0].UserID)
	assert.Equal(t, "200", digests[1].UserID)

	assert.Contains(t, digests[0].Text, "2025-04-14")
	assert.Contains(t, digests[0].Text, "1 event")
	assert.Contains(t, digests[0].Text, "Lunch")
	assert.Contains(t, digests[0].Text, "12:00:00")

	assert.Contains(t, digests[1].Text, "2 events")
	assert.Contains(t, digests[1].Text, "Standup")
	assert.Contains(t, digests[1].Text, "Dinner")
}

func TestBuildDigests_SkipsUsersWithoutEvents(t *testing.T) {
	date := models.Today()

	digests := BuildDigests(date, map[string][]models.Event{"idle": nil})

	assert.Empty(t, digests)
}

func TestBuildDigests_EmptyInput(t *testing.T) {
	assert.Empty(t, BuildDigests(models.Today(), nil))
	assert.Empty(t, BuildDigests(models.Today(), map[string][]models.Event{}))
}
