package models

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time with no date or zone component.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay accepts HH:MM or HH:MM:SS. Out-of-range values such
// as "25:99" are rejected.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var parsed time.Time
	var err error
	if parsed, err = time.Parse("15:04:05", s); err != nil {
		if parsed, err = time.Parse("15:04", s); err != nil {
			return TimeOfDay{}, fmt.Errorf("invalid time %q: expected HH:MM or HH:MM:SS", s)
		}
	}
	return TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute(), Second: parsed.Second()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	if t.Hour != other.Hour {
		return t.Hour < other.Hour
	}
	if t.Minute != other.Minute {
		return t.Minute < other.Minute
	}
	return t.Second < other.Second
}

// Microseconds returns the offset since midnight, matching the
// representation pgx uses for TIME columns.
func (t TimeOfDay) Microseconds() int64 {
	return int64(t.Hour)*int64(time.Hour/time.Microsecond) +
		int64(t.Minute)*int64(time.Minute/time.Microsecond) +
		int64(t.Second)*int64(time.Second/time.Microsecond)
}

// TimeOfDayFromMicroseconds converts a TIME column value back,
// truncating sub-second precision.
func TimeOfDayFromMicroseconds(us int64) TimeOfDay {
	secs := us / int64(time.Second/time.Microsecond)
	return TimeOfDay{
		Hour:   int(secs / 3600),
		Minute: int(secs / 60 % 60),
		Second: int(secs % 60),
	}
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(b []byte) error {
	parsed, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
