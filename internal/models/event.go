package models

// Event is a user-owned reminder record.
type Event struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"userId"`
	Date        Date      `json:"date"`
	Time        TimeOfDay `json:"time"`
	Description string    `json:"description"`
}
