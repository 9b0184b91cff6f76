package notifier

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/robfig/cron/v3"

	"calendarbot/internal/client"
	"calendarbot/internal/models"
)

const runTimeout = 5 * time.Minute

// Sender delivers one Telegram message. *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier sends every user their events for the current date, once a
// day. Delivery is best effort: a failed send is logged and the batch
// moves on to the next user.
type Notifier struct {
	api    Sender
	events *client.Client
}

func New(api Sender, events *client.Client) *Notifier {
	return &Notifier{api: api, events: events}
}

// Schedule registers the daily run at the given hour.
func (n *Notifier) Schedule(c *cron.Cron, hour int) error {
	_, err := c.AddFunc(fmt.Sprintf("0 %d * * *", hour), func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		n.Run(ctx)
	})
	return err
}

// Run executes one notification batch for today.
func (n *Notifier) Run(ctx context.Context) {
	today := models.Today()

	eventsByUser, err := n.events.AllEventsOfDate(ctx, today)
	if err != nil {
		log.Printf("notifier: failed to fetch events for %s: %v", today, err)
		return
	}

	for _, digest := range BuildDigests(today, eventsByUser) {
		chatID, err := strconv.ParseInt(digest.UserID, 10, 64)
		if err != nil {
			log.Printf("notifier: skipping user %q: not a chat id", digest.UserID)
			continue
		}
		if _, err := n.api.Send(tgbotapi.NewMessage(chatID, digest.Text)); err != nil {
			log.Printf("notifier: failed to notify user %s: %v", digest.UserID, err)
		}
	}
}
