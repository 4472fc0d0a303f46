package prayer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/miqat-app/miqat/internal/aladhan"
	"github.com/miqat-app/miqat/internal/db"
	"github.com/miqat-app/miqat/internal/hijri"
	"github.com/miqat-app/miqat/internal/model"
)

// Order is the canonical prayer sequence; the night fallback in Current
// relies on Isha being last.
var Order = []string{"Fajr", "Dhuhr", "Asr", "Maghrib", "Isha"}

// Source yields upstream timings for a gregorian day.
type Source interface {
	Timings(ctx context.Context, date time.Time) (aladhan.Timings, aladhan.HijriDate, error)
}

// Service assembles a day's prayer data: upstream timings, stored
// per-prayer adjustments and the stored hijri day offset.
type Service struct {
	source Source
	store  db.Store
}

func NewService(source Source, store db.Store) *Service {
	return &Service{source: source, store: store}
}

// Fallback timings used when the upstream source is unreachable, so the
// app keeps working in a degraded mode rather than erroring out.
var fallbackTimings = aladhan.Timings{
	Fajr:    "05:30",
	Dhuhr:   "12:30",
	Asr:     "16:00",
	Maghrib: "18:30",
	Isha:    "20:00",
}

// Day builds the full prayer day for a DD-MMM-YYYY key. Upstream failure
// degrades to fixed fallback times and an approximate hijri conversion;
// store failures are returned, since adjustments are authoritative data.
func (s *Service) Day(ctx context.Context, dateKey string) (model.PrayerDay, error) {
	date, err := ParseDateKey(dateKey)
	if err != nil {
		return model.PrayerDay{}, err
	}

	timings, hijriRaw, err := s.source.Timings(ctx, date)
	var hd hijri.Date
	if err != nil {
		log.Warn().Err(err).Str("date", dateKey).Msg("upstream timings unavailable, using fallback")
		timings = fallbackTimings
		hd = hijri.Approximate(date)
	} else {
		hd = hijri.Date{Day: hijriRaw.Day, Month: hijri.NormalizeMonth(hijriRaw.Month), Year: hijriRaw.Year}
	}

	stored, err := s.store.GetPrayerAdjustments(dateKey)
	if err != nil {
		return model.PrayerDay{}, fmt.Errorf("load adjustments: %w", err)
	}
	adjustments := make(map[string]Adjustment, len(stored))
	for _, a := range stored {
		adjustments[a.PrayerName] = Adjustment{Start: a.Adjustment, End: a.EndAdjustment}
	}

	dayOffset, err := s.store.GetHijriAdjustment(dateKey)
	if err != nil {
		return model.PrayerDay{}, fmt.Errorf("load hijri adjustment: %w", err)
	}
	hd = hijri.Adjust(hd, dayOffset)

	raw, err := rawWindows(timings)
	if err != nil {
		return model.PrayerDay{}, err
	}
	windows := ApplyAdjustments(raw, adjustments)

	prayers := make([]model.Prayer, 0, len(windows))
	for _, w := range windows {
		prayers = append(prayers, model.Prayer{
			ID:            uuid.NewString(),
			Name:          w.Name,
			StartTime:     w.AdjustedStart().String(),
			EndTime:       w.AdjustedEnd().String(),
			Adjustment:    w.Adjustment,
			EndAdjustment: w.EndAdjustment,
		})
	}

	return model.PrayerDay{
		ID:         uuid.NewString(),
		Date:       dateKey,
		HijriDate:  hd.Day,
		HijriMonth: hd.Month,
		HijriYear:  hd.Year,
		Prayers:    prayers,
	}, nil
}

// rawWindows orders the upstream timings and derives end times: each
// prayer ends when the next begins, and Isha runs to 23:59.
func rawWindows(t aladhan.Timings) ([]Window, error) {
	starts := map[string]string{
		"Fajr":    t.Fajr,
		"Dhuhr":   t.Dhuhr,
		"Asr":     t.Asr,
		"Maghrib": t.Maghrib,
		"Isha":    t.Isha,
	}

	windows := make([]Window, 0, len(Order))
	for i, name := range Order {
		start, err := ParseTimeOfDay(starts[name])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		end := TimeOfDay{Hour: 23, Minute: 59}
		if i < len(Order)-1 {
			end, err = ParseTimeOfDay(starts[Order[i+1]])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", Order[i+1], err)
			}
		}
		windows = append(windows, Window{Name: name, Start: start, End: end})
	}
	return windows, nil
}

// WindowsOf converts an assembled day back into scheduler windows. The
// day's start times already carry their adjustment, so the windows keep
// Adjustment zero and use the served time as the official start. The
// result is sorted by start: a large persisted offset can push one
// prayer past the next, and Current requires ascending order.
func WindowsOf(day model.PrayerDay) ([]Window, error) {
	windows := make([]Window, 0, len(day.Prayers))
	for _, p := range day.Prayers {
		start, err := ParseTimeOfDay(p.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name, err)
		}
		end, err := ParseTimeOfDay(p.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name, err)
		}
		windows = append(windows, Window{Name: p.Name, Start: start, End: end})
	}
	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].Start.TotalMinutes() < windows[j].Start.TotalMinutes()
	})
	return windows, nil
}
