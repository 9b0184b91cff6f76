package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"calendarbot/internal/models"
)

var ErrNotFound = errors.New("not found")

type PostgresEventRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresEventRepository(pool *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{pool: pool}
}

func (r *PostgresEventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `INSERT INTO events (user_id, date, time, description)
              VALUES ($1, $2, $3, $4)
              RETURNING id`

	eventTime := pgtype.Time{Microseconds: event.Time.Microseconds(), Valid: true}
	err := r.pool.QueryRow(ctx, query, event.UserID, event.Date.Time, eventTime, event.Description).
		Scan(&event.ID)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// List returns events matching the filter in a stable order
// (date, time, id ascending). An empty result is returned as an empty
// slice; the service layer decides whether that is an error.
func (r *PostgresEventRepository) List(ctx context.Context, filter EventFilter) ([]models.Event, error) {
	query := `SELECT id, user_id, date, time, description FROM events`

	var clauses []string
	var args []any

	if len(filter.UserIDs) > 0 {
		args = append(args, filter.UserIDs)
		clauses = append(clauses, fmt.Sprintf("user_id = ANY($%d)", len(args)))
	}
	if len(filter.Dates) > 0 {
		dates := make([]time.Time, len(filter.Dates))
		for i, d := range filter.Dates {
			dates[i] = d.Time
		}
		args = append(args, dates)
		clauses = append(clauses, fmt.Sprintf("date = ANY($%d)", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY date, time, id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		var date time.Time
		var eventTime pgtype.Time
		if err := rows.Scan(&event.ID, &event.UserID, &date, &eventTime, &event.Description); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		event.Date = models.DateOf(date)
		event.Time = models.TimeOfDayFromMicroseconds(eventTime.Microseconds)
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}
