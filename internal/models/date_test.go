package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2025-04-14")

	require.NoError(t, err)
	assert.Equal(t, NewDate(2025, time.April, 14), date)
	assert.Equal(t, "2025-04-14", date.String())

	_, err = ParseDate("14.04.2025")
	assert.Error(t, err)
}

func TestDateAddDays_CrossesMonthBoundary(t *testing.T) {
	date := NewDate(2025, time.January, 30)

	assert.Equal(t, NewDate(2025, time.February, 3), date.AddDays(4))
}

func TestDateJSON_UsesCalendarLayout(t *testing.T) {
	data, err := json.Marshal(NewDate(2025, time.April, 14))

	require.NoError(t, err)
	assert.Equal(t, `"2025-04-14"`, string(data))

	var date Date
	require.NoError(t, json.Unmarshal(data, &date))
	assert.Equal(t, NewDate(2025, time.April, 14), date)
}

func TestDateAsMapKey_SurvivesJSON(t *testing.T) {
	// The bot caches listings in Redis as JSON keyed by date.
	listing := map[Date][]Event{
		NewDate(2025, time.April, 14): {
			{ID: 1, UserID: "user123", Date: NewDate(2025, time.April, 14), Time: TimeOfDay{Hour: 20, Minute: 43}, Description: "Test Description"},
		},
	}

	data, err := json.Marshal(listing)
	require.NoError(t, err)

	var decoded map[Date][]Event
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, listing, decoded)
}

func TestParseTimeOfDay(t *testing.T) {
	timeOfDay, err := ParseTimeOfDay("20:43")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 20, Minute: 43}, timeOfDay)
	assert.Equal(t, "20:43:00", timeOfDay.String())

	withSeconds, err := ParseTimeOfDay("09:05:30")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 9, Minute: 5, Second: 30}, withSeconds)
}

func TestParseTimeOfDay_RejectsOutOfRange(t *testing.T) {
	for _, input := range []string{"25:99", "12:60", "noon", ""} {
		_, err := ParseTimeOfDay(input)
		assert.Error(t, err, "input %q should be rejected", input)
	}
}

func TestTimeOfDayBefore(t *testing.T) {
	earlier := TimeOfDay{Hour: 9, Minute: 30}
	later := TimeOfDay{Hour: 9, Minute: 30, Second: 1}

	assert.True(t, earlier.Before(later))
	assert.False(t, later.Before(earlier))
	assert.False(t, earlier.Before(earlier))
}

func TestTimeOfDayMicroseconds_RoundTrip(t *testing.T) {
	timeOfDay := TimeOfDay{Hour: 20, Minute: 43, Second: 7}

	assert.Equal(t, timeOfDay, TimeOfDayFromMicroseconds(timeOfDay.Microseconds()))
}
