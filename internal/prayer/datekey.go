package prayer

import (
	"fmt"
	"time"
)

// Date keys look like "05-Mar-2025" and identify one gregorian day.
const dateKeyLayout = "02-Jan-2006"

// ParseDateKey parses a DD-MMM-YYYY key.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse(dateKeyLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return t, nil
}

// FormatDateKey renders a day as a DD-MMM-YYYY key.
func FormatDateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// Navigate moves a date key by direction days (-1 previous, +1 next),
// crossing month and year boundaries with ordinary calendar arithmetic.
func Navigate(key string, direction int) (string, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return "", err
	}
	return FormatDateKey(t.AddDate(0, 0, direction)), nil
}
