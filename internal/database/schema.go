package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const eventsSchema = `
CREATE TABLE IF NOT EXISTS events (
    id          BIGSERIAL PRIMARY KEY,
    user_id     TEXT NOT NULL,
    date        DATE NOT NULL,
    time        TIME NOT NULL,
    description TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_user_id ON events (user_id);
CREATE INDEX IF NOT EXISTS idx_events_date ON events (date);
`

// EnsureSchema creates the events table and its indexes if they do not
// exist yet. The API server runs this once at startup.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, eventsSchema); err != nil {
		return fmt.Errorf("error creating events schema: %w", err)
	}
	return nil
}
