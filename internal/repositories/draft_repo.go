package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"calendarbot/internal/models"
)

const draftPrefix = "draft:%d"
const listingPrefix = "listing:%d"

// RedisDraftRepository keeps conversation scratch state in Redis with a
// TTL so abandoned dialogs expire on their own. Each user owns exactly
// one draft and one cached listing.
type RedisDraftRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDraftRepository(client *redis.Client, ttl time.Duration) *RedisDraftRepository {
	return &RedisDraftRepository{client: client, ttl: ttl}
}

func (r *RedisDraftRepository) PutDraft(ctx context.Context, draft *models.EventDraft) error {
	jsonData, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	key := fmt.Sprintf(draftPrefix, draft.UserID)
	if err := r.client.Set(ctx, key, jsonData, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set draft: %w", err)
	}
	return nil
}

func (r *RedisDraftRepository) GetDraft(ctx context.Context, userID int64) (*models.EventDraft, error) {
	key := fmt.Sprintf(draftPrefix, userID)

	jsonData, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	var draft models.EventDraft
	if err := json.Unmarshal([]byte(jsonData), &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &draft, nil
}

func (r *RedisDraftRepository) DeleteDraft(ctx context.Context, userID int64) error {
	key := fmt.Sprintf(draftPrefix, userID)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}

func (r *RedisDraftRepository) PutListing(ctx context.Context, userID int64, listing map[models.Date][]models.Event) error {
	jsonData, err := json.Marshal(listing)
	if err != nil {
		return fmt.Errorf("failed to marshal listing: %w", err)
	}

	key := fmt.Sprintf(listingPrefix, userID)
	if err := r.client.Set(ctx, key, jsonData, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set listing: %w", err)
	}
	return nil
}

func (r *RedisDraftRepository) GetListing(ctx context.Context, userID int64) (map[models.Date][]models.Event, error) {
	key := fmt.Sprintf(listingPrefix, userID)

	jsonData, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	var listing map[models.Date][]models.Event
	if err := json.Unmarshal([]byte(jsonData), &listing); err != nil {
		return nil, fmt.Errorf("failed to unmarshal listing: %w", err)
	}
	return listing, nil
}
