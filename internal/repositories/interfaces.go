package repositories

import (
	"context"

	"calendarbot/internal/models"
)

// EventFilter narrows List. Empty slices impose no constraint; both
// filters combine with logical AND.
type EventFilter struct {
	UserIDs []string
	Dates   []models.Date
}

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	List(ctx context.Context, filter EventFilter) ([]models.Event, error)
}

// DraftRepository stores per-conversation scratch state: the partial
// event accumulated by the create dialog, and the last fetched listing
// that backs the expand/collapse toggles. State is keyed by the
// Telegram user id of the sender, not the chat.
type DraftRepository interface {
	PutDraft(ctx context.Context, draft *models.EventDraft) error
	GetDraft(ctx context.Context, userID int64) (*models.EventDraft, error)
	DeleteDraft(ctx context.Context, userID int64) error
	PutListing(ctx context.Context, userID int64, listing map[models.Date][]models.Event) error
	GetListing(ctx context.Context, userID int64) (map[models.Date][]models.Event, error)
}
