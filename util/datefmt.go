package util

import (
	"fmt"
	"strings"
	"time"
)

// Offset-less layouts are read in the display location.
var localTimestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// ParseTimestamp reads an archive timestamp. RFC3339 values are converted to
// loc, offset-less values are interpreted in loc and a bare date is UTC
// midnight converted to loc. A nil loc means time.Local.
func ParseTimestamp(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range localTimestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t.In(loc), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

// FormatLetterDate renders t as "2024년 1월 2일 오후 3시" on a 12-hour clock.
func FormatLetterDate(t time.Time) string {
	hour := t.Hour()
	period := "오전"
	if hour >= 12 {
		period = "오후"
	}
	displayHour := hour
	if hour > 12 {
		displayHour = hour - 12
	} else if hour == 0 {
		displayHour = 12
	}
	return fmt.Sprintf("%d년 %d월 %d일 %s %d시", t.Year(), int(t.Month()), t.Day(), period, displayHour)
}

func FormatTimestamp(raw string, loc *time.Location) (string, error) {
	t, err := ParseTimestamp(raw, loc)
	if err != nil {
		return "", err
	}
	return FormatLetterDate(t), nil
}
