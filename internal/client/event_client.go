package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"calendarbot/internal/models"
)

// ErrRequestFailed is returned for any non-2xx API response other than
// the not-found answer of a filtered query. Callers do not retry.
var ErrRequestFailed = errors.New("request failed")

const requestTimeout = 10 * time.Second

// Client wraps the event API's REST contract for the bot and the
// notifier. A 404 from a filtered query is translated into an empty
// result: "no upcoming events" is a normal state on this side.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

func New(baseURL, username, password string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		username:   username,
		password:   password,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// CreateEvent registers a new event for the user.
func (c *Client) CreateEvent(ctx context.Context, telegramID int64, date models.Date, timeOfDay models.TimeOfDay, description string) error {
	payload, err := json.Marshal(map[string]string{
		"userId":      strconv.FormatInt(telegramID, 10),
		"date":        date.String(),
		"time":        timeOfDay.String(),
		"description": description,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/event/", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: unexpected status %d", ErrRequestFailed, resp.StatusCode)
	}
	return nil
}

// EventsByUser fetches the user's events for the closed window
// [today, today+windowDays], grouped by date with each group sorted by
// time ascending. An empty map means no upcoming events.
func (c *Client) EventsByUser(ctx context.Context, telegramID int64, windowDays int) (map[models.Date][]models.Event, error) {
	params := url.Values{}
	params.Add("userIds", strconv.FormatInt(telegramID, 10))

	start := models.Today()
	for i := 0; i <= windowDays; i++ {
		params.Add("dates", start.AddDays(i).String())
	}

	events, err := c.getEvents(ctx, params)
	if err != nil {
		return nil, err
	}

	grouped := make(map[models.Date][]models.Event)
	for _, event := range events {
		grouped[event.Date] = append(grouped[event.Date], event)
	}
	for _, group := range grouped {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Time.Before(group[j].Time)
		})
	}
	return grouped, nil
}

// AllEventsOfDate fetches every user's events for the given date,
// grouped by user id in the order received.
func (c *Client) AllEventsOfDate(ctx context.Context, date models.Date) (map[string][]models.Event, error) {
	params := url.Values{}
	params.Add("dates", date.String())

	events, err := c.getEvents(ctx, params)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]models.Event)
	for _, event := range events {
		grouped[event.UserID] = append(grouped[event.UserID], event)
	}
	return grouped, nil
}

func (c *Client) getEvents(ctx context.Context, params url.Values) ([]models.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/event/?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrRequestFailed, resp.StatusCode)
	}

	var events []models.Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return events, nil
}
