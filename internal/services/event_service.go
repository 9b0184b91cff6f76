package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"calendarbot/internal/models"
	"calendarbot/internal/repositories"
)

// ErrNoEvents is returned when a filtered query matches no rows. The
// contract deliberately treats an empty result as an error rather than
// an empty list; the HTTP layer maps it to 404 and the bot client
// downgrades it to an empty collection.
var ErrNoEvents = errors.New("event not found")

// ValidationError reports malformed input. The HTTP layer maps it to 422.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type EventService struct {
	repo repositories.EventRepository
}

func NewEventService(repo repositories.EventRepository) *EventService {
	return &EventService{repo: repo}
}

// Create persists a new event. The store assigns the id.
func (s *EventService) Create(ctx context.Context, userID string, date models.Date, timeOfDay models.TimeOfDay, description string) error {
	if strings.TrimSpace(userID) == "" {
		return &ValidationError{Message: "userId must not be empty"}
	}
	if date.IsZero() {
		return &ValidationError{Message: "date must not be empty"}
	}

	event := models.Event{
		UserID:      userID,
		Date:        date,
		Time:        timeOfDay,
		Description: description,
	}
	if err := s.repo.Create(ctx, &event); err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// GetEvents returns events narrowed by the optional user-id and date
// sets, combined with AND. Omitted filters impose no constraint. A
// query matching nothing fails with ErrNoEvents.
func (s *EventService) GetEvents(ctx context.Context, userIDs []string, dates []models.Date) ([]models.Event, error) {
	events, err := s.repo.List(ctx, repositories.EventFilter{UserIDs: userIDs, Dates: dates})
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	if len(events) == 0 {
		return nil, ErrNoEvents
	}
	return events, nil
}
