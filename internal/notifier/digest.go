package notifier

import (
	"fmt"
	"sort"
	"strings"

	"calendarbot/internal/models"
)

// Digest is one user's daily summary, ready to deliver.
type Digest struct {
	UserID string
	Text   string
}

// BuildDigests turns the day's events, grouped by user, into one
// message per user. Users with no events get no digest. Output is
// ordered by user id so repeated runs over the same input are
// deterministic.
func BuildDigests(date models.Date, eventsByUser map[string][]models.Event) []Digest {
	userIDs := make([]string, 0, len(eventsByUser))
	for userID := range eventsByUser {
		if len(eventsByUser[userID]) > 0 {
			userIDs = append(userIDs, userID)
		}
	}
	sort.Strings(userIDs)

	digests := make([]Digest, 0, len(userIDs))
	for _, userID := range userIDs {
		events := eventsByUser[userID]

		lines := []string{
			"Good morning! Here are your events for today:",
			"",
			fmt.Sprintf("%s – %d %s", date, len(events), plural(len(events))),
		}
		for _, event := range events {
			lines = append(lines, fmt.Sprintf("  • %s at %s", event.Description, event.Time))
		}

		digests = append(digests, Digest{UserID: userID, Text: strings.Join(lines, "\n")})
	}
	return digests
}

func plural(n int) string {
	if n == 1 {
		return "event"
	}
	return "events"
}
