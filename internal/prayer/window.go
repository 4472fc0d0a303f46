package prayer

import (
	"fmt"
)

// TimeOfDay is a wall-clock instant within a single day, 24-hour, no
// timezone.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var t TimeOfDay
	if _, err := fmt.Sscanf(s, "%d:%d", &t.Hour, &t.Minute); err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid time %q", s)
	}
	return t, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// TotalMinutes returns minutes since midnight.
func (t TimeOfDay) TotalMinutes() int {
	return t.Hour*60 + t.Minute
}

func fromMinutes(m int) TimeOfDay {
	return TimeOfDay{Hour: m / 60, Minute: m % 60}
}

// Window is one prayer's interval for a day. Start and End are the
// authoritative upstream times; Adjustment and EndAdjustment are the
// persisted per-prayer minute offsets applied on top of them.
type Window struct {
	Name          string
	Start         TimeOfDay
	End           TimeOfDay
	Adjustment    int
	EndAdjustment int
}

// clampMinutes keeps an offset result inside [00:00, 23:59]; an offset
// never pushes a window onto another day.
func clampMinutes(m int) TimeOfDay {
	if m < 0 {
		m = 0
	}
	if m > 24*60-1 {
		m = 24*60 - 1
	}
	return fromMinutes(m)
}

// AdjustedStart applies the minute offset to the official start.
func (w Window) AdjustedStart() TimeOfDay {
	return clampMinutes(w.Start.TotalMinutes() + w.Adjustment)
}

// AdjustedEnd applies the end offset to the official end.
func (w Window) AdjustedEnd() TimeOfDay {
	return clampMinutes(w.End.TotalMinutes() + w.EndAdjustment)
}

// Adjustment is the persisted pair of minute offsets for one window.
type Adjustment struct {
	Start int
	End   int
}

// ApplyAdjustments returns a copy of windows with each window's offsets
// replaced by the map entry for its name, defaulting to 0 when absent.
// The input is not mutated and ordering is preserved.
func ApplyAdjustments(windows []Window, adjustments map[string]Adjustment) []Window {
	out := make([]Window, len(windows))
	for i, w := range windows {
		a := adjustments[w.Name]
		w.Adjustment = a.Start
		w.EndAdjustment = a.End
		out[i] = w
	}
	return out
}

// Current returns the window containing the instant: the last window
// whose adjusted start is at or before the instant and whose successor
// starts strictly later. Instants before the first window's start belong
// to the final window — before Fajr we are still in last night's Isha.
//
// Precondition: windows is a non-empty single-day list ascending by
// adjusted start.
func Current(windows []Window, at TimeOfDay) Window {
	now := at.TotalMinutes()
	for i, w := range windows {
		if now < w.AdjustedStart().TotalMinutes() {
			continue
		}
		if i == len(windows)-1 || now < windows[i+1].AdjustedStart().TotalMinutes() {
			return w
		}
	}
	return windows[len(windows)-1]
}

// LeadTime returns the instant beforeMinutes before start, wrapping
// across midnight to the same wall-clock minute of the previous day
// (00:02 with a 5-minute lead reminds at 23:57).
func LeadTime(start TimeOfDay, beforeMinutes int) TimeOfDay {
	const day = 24 * 60
	m := (start.TotalMinutes() - beforeMinutes) % day
	if m < 0 {
		m += day
	}
	return fromMinutes(m)
}
