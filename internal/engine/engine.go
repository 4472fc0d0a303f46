// Package engine runs the tick-driven notification scheduler: once per
// second it looks at the clock and decides, on minute boundaries, whether
// any configured trigger fires for the loaded day's prayer windows.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/miqat-app/miqat/internal/model"
	"github.com/miqat-app/miqat/internal/notify"
	"github.com/miqat-app/miqat/internal/prayer"
	"github.com/miqat-app/miqat/internal/settings"
)

// DayService assembles a day's prayer data for a date key.
type DayService interface {
	Day(ctx context.Context, dateKey string) (model.PrayerDay, error)
}

// Engine owns the selected date, the loaded windows and the cached user
// settings. All mutable state sits behind one mutex so tick evaluation
// and save-triggered reloads never interleave.
type Engine struct {
	days     DayService
	sink     notify.Sink
	settings settings.Store

	// Now is the clock source; tests replace it.
	Now func() time.Time

	mu       sync.Mutex
	selected string // date key the engine is tracking
	day      *model.PrayerDay
	windows  []prayer.Window
	cfg      model.NotificationConfig
	enabled  bool
}

func New(days DayService, sink notify.Sink, st settings.Store) *Engine {
	return &Engine{
		days:     days,
		sink:     sink,
		settings: st,
		Now:      time.Now,
		cfg:      model.DefaultNotificationConfig(),
	}
}

// Start loads settings, selects today's date and begins ticking. It
// returns after spawning the tick goroutine; cancelling ctx stops the
// ticker and releases it.
func (e *Engine) Start(ctx context.Context) {
	e.ReloadSettings(ctx)
	e.Select(ctx, prayer.FormatDateKey(e.Now()))

	go e.run(ctx)
}

func (e *Engine) run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.tick(ctx, e.Now())
		}
	}
}

func (e *Engine) tick(ctx context.Context, now time.Time) {
	e.mu.Lock()
	windows := e.windows
	cfg := e.cfg
	enabled := e.enabled
	e.mu.Unlock()

	if !enabled || len(windows) == 0 {
		return
	}

	for _, n := range Evaluate(now, windows, cfg) {
		if err := e.sink.Notify(ctx, n); err != nil {
			// no retry: a missed minute stays missed
			log.Error().Err(err).Str("title", n.Title).Msg("notification delivery failed")
		}
	}
}

// Evaluate returns the notifications due at the given instant. It runs
// only on minute boundaries (seconds == 0), which bounds firing to at
// most once per prayer and trigger per calendar minute even if the tick
// source misbehaves and delivers several ticks within one minute.
func Evaluate(at time.Time, windows []prayer.Window, cfg model.NotificationConfig) []notify.Notification {
	if at.Second() != 0 {
		return nil
	}

	instant := prayer.TimeOfDay{Hour: at.Hour(), Minute: at.Minute()}

	var due []notify.Notification
	for _, w := range windows {
		start := w.AdjustedStart()

		if cfg.AtPrayerTime && instant == start {
			due = append(due, notify.Notification{
				Title:               fmt.Sprintf("%s Prayer Time", w.Name),
				Body:                fmt.Sprintf("It's time for %s prayer. May Allah accept your prayers.", w.Name),
				Sound:               cfg.Sound,
				DismissAfterSeconds: notify.DismissAfter,
			})
		}

		if cfg.BeforePrayerTime && instant == prayer.LeadTime(start, cfg.BeforeMinutes) {
			due = append(due, notify.Notification{
				Title:               fmt.Sprintf("%s Prayer Reminder", w.Name),
				Body:                fmt.Sprintf("%s prayer starts in %d minutes (%s)", w.Name, cfg.BeforeMinutes, start),
				Sound:               cfg.Sound,
				DismissAfterSeconds: notify.DismissAfter,
			})
		}
	}
	return due
}

// Select points the engine at a date key and loads its day
// asynchronously. A load that completes after the selection moved on is
// discarded, so a slow fetch can never install another date's windows.
//
// The load outlives ctx: handlers pass request-scoped contexts, and
// net/http cancels those as soon as the handler returns, which would
// abort the upstream fetch mid-flight and degrade a healthy day to
// fallback times.
func (e *Engine) Select(ctx context.Context, dateKey string) {
	e.mu.Lock()
	e.selected = dateKey
	e.mu.Unlock()

	go e.load(context.WithoutCancel(ctx), dateKey)
}

// Navigate shifts the selected date by direction days and loads it.
func (e *Engine) Navigate(ctx context.Context, direction int) (string, error) {
	e.mu.Lock()
	current := e.selected
	e.mu.Unlock()

	next, err := prayer.Navigate(current, direction)
	if err != nil {
		return "", err
	}
	e.Select(ctx, next)
	return next, nil
}

// Reload refetches the selected day. Called after adjustment saves: the
// authoritative copy lives in the store, never mutated in place here.
// As in Select, the load is detached from ctx's cancellation.
func (e *Engine) Reload(ctx context.Context) {
	e.mu.Lock()
	dateKey := e.selected
	e.mu.Unlock()

	go e.load(context.WithoutCancel(ctx), dateKey)
}

func (e *Engine) load(ctx context.Context, dateKey string) {
	day, err := e.days.Day(ctx, dateKey)
	if err != nil {
		// keep whatever was loaded before
		log.Warn().Err(err).Str("date", dateKey).Msg("day load failed, keeping previous data")
		return
	}

	windows, err := prayer.WindowsOf(day)
	if err != nil {
		log.Error().Err(err).Str("date", dateKey).Msg("day has unparseable times")
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.selected != dateKey {
		log.Debug().Str("date", dateKey).Str("selected", e.selected).Msg("dropping stale day load")
		return
	}
	e.day = &day
	e.windows = windows
}

// ReloadSettings re-reads the cached notification config and enabled
// flag from the settings store. Save handlers call this so the tick loop
// works from explicit reloads, not ambient reads.
func (e *Engine) ReloadSettings(ctx context.Context) {
	cfg := e.settings.Config(ctx)
	enabled := e.settings.Enabled(ctx)

	e.mu.Lock()
	e.cfg = cfg
	e.enabled = enabled
	e.mu.Unlock()
}

// Status is a snapshot of the engine for the API.
type Status struct {
	SelectedDate  string           `json:"selected_date"`
	Loaded        bool             `json:"loaded"`
	Enabled       bool             `json:"enabled"`
	CurrentPrayer string           `json:"current_prayer,omitempty"`
	Permission    model.Permission `json:"permission"`
}

// Status reports the selected date, whether its day is loaded, and the
// current window at the engine's clock.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := Status{
		SelectedDate: e.selected,
		Loaded:       e.day != nil,
		Enabled:      e.enabled,
		Permission:   e.sink.Permission(),
	}
	if len(e.windows) > 0 {
		now := e.Now()
		st.CurrentPrayer = prayer.Current(e.windows, prayer.TimeOfDay{Hour: now.Hour(), Minute: now.Minute()}).Name
	}
	return st
}

// Day returns the loaded day, if any.
func (e *Engine) Day() (model.PrayerDay, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.day == nil {
		return model.PrayerDay{}, false
	}
	return *e.day, true
}

// SelectedDate returns the date key the engine is tracking.
func (e *Engine) SelectedDate() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selected
}
