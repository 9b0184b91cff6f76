package models

// DraftStep identifies what input the event-creation dialog is
// waiting on. A user with no stored draft is idle.
type DraftStep int

const (
	StepAwaitingName DraftStep = iota + 1
	StepAwaitingTime
)

// EventDraft is the per-conversation scratch state accumulated across
// the create dialog. It lives in Redis keyed by the sender's user id,
// so in a group chat each member runs their own dialog, and expires if
// the conversation is abandoned.
type EventDraft struct {
	UserID int64     `json:"user_id"`
	Step   DraftStep `json:"step"`
	Date   Date      `json:"date"`
	Name   string    `json:"name"`
}
