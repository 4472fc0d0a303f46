package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/miqat-app/miqat/internal/model"
	"github.com/miqat-app/miqat/internal/notify"
	"github.com/miqat-app/miqat/internal/prayer"
)

func window(t *testing.T, name, start string) prayer.Window {
	t.Helper()
	tod, err := prayer.ParseTimeOfDay(start)
	if err != nil {
		t.Fatal(err)
	}
	return prayer.Window{Name: name, Start: tod}
}

func at(hour, min, sec int) time.Time {
	return time.Date(2025, time.March, 5, hour, min, sec, 0, time.UTC)
}

func defaultCfg() model.NotificationConfig {
	return model.DefaultNotificationConfig()
}

func TestEvaluateFiresAtPrayerTime(t *testing.T) {
	windows := []prayer.Window{window(t, "Fajr", "05:00")}

	due := Evaluate(at(5, 0, 0), windows, defaultCfg())
	if len(due) != 1 {
		t.Fatalf("got %d notifications, want 1", len(due))
	}
	if due[0].Title != "Fajr Prayer Time" {
		t.Errorf("title = %q", due[0].Title)
	}
	if due[0].DismissAfterSeconds != 10 {
		t.Errorf("dismiss after = %d, want 10", due[0].DismissAfterSeconds)
	}
}

func TestEvaluateFiresBeforePrayerTime(t *testing.T) {
	windows := []prayer.Window{window(t, "Fajr", "05:00")}

	due := Evaluate(at(4, 55, 0), windows, defaultCfg())
	if len(due) != 1 {
		t.Fatalf("got %d notifications, want 1", len(due))
	}
	if due[0].Title != "Fajr Prayer Reminder" {
		t.Errorf("title = %q", due[0].Title)
	}
	if want := "Fajr prayer starts in 5 minutes (05:00)"; due[0].Body != want {
		t.Errorf("body = %q, want %q", due[0].Body, want)
	}
}

func TestEvaluateGatedOnMinuteBoundary(t *testing.T) {
	windows := []prayer.Window{window(t, "Fajr", "05:00")}
	cfg := defaultCfg()

	// mid-minute ticks never fire, even at the right minute
	for _, instant := range []time.Time{at(4, 55, 30), at(5, 0, 30), at(5, 0, 1), at(5, 0, 59)} {
		if due := Evaluate(instant, windows, cfg); len(due) != 0 {
			t.Errorf("fired %d notifications at %v, want 0", len(due), instant)
		}
	}
}

func TestEvaluateQuietOutsideTriggerMinutes(t *testing.T) {
	windows := []prayer.Window{window(t, "Fajr", "05:00")}

	for _, instant := range []time.Time{at(4, 54, 0), at(4, 56, 0), at(5, 1, 0), at(12, 0, 0)} {
		if due := Evaluate(instant, windows, defaultCfg()); len(due) != 0 {
			t.Errorf("fired at %v, want quiet", instant)
		}
	}
}

func TestEvaluateHonorsTriggerFlags(t *testing.T) {
	windows := []prayer.Window{window(t, "Fajr", "05:00")}

	cfg := defaultCfg()
	cfg.AtPrayerTime = false
	if due := Evaluate(at(5, 0, 0), windows, cfg); len(due) != 0 {
		t.Error("at-time trigger fired while disabled")
	}

	cfg = defaultCfg()
	cfg.BeforePrayerTime = false
	if due := Evaluate(at(4, 55, 0), windows, cfg); len(due) != 0 {
		t.Error("before-time trigger fired while disabled")
	}
}

func TestEvaluateRespectsAdjustedStart(t *testing.T) {
	w := window(t, "Maghrib", "18:45")
	w.Adjustment = 3 // adjusted start 18:48
	windows := []prayer.Window{w}

	if due := Evaluate(at(18, 45, 0), windows, defaultCfg()); len(due) != 0 {
		t.Error("fired at official time despite adjustment")
	}
	due := Evaluate(at(18, 48, 0), windows, defaultCfg())
	if len(due) != 1 || due[0].Title != "Maghrib Prayer Time" {
		t.Fatalf("expected at-time fire at adjusted start, got %+v", due)
	}
}

func TestEvaluateLeadWrapsMidnight(t *testing.T) {
	windows := []prayer.Window{window(t, "Fajr", "00:02")}

	due := Evaluate(at(23, 57, 0), windows, defaultCfg())
	if len(due) != 1 || due[0].Title != "Fajr Prayer Reminder" {
		t.Fatalf("expected reminder at 23:57 for a 00:02 window, got %+v", due)
	}
}

// --- engine wiring ---

type fakeDayService struct {
	mu   sync.Mutex
	fn   func(dateKey string) (model.PrayerDay, error)
	seen []string
}

func (f *fakeDayService) Day(ctx context.Context, dateKey string) (model.PrayerDay, error) {
	f.mu.Lock()
	f.seen = append(f.seen, dateKey)
	fn := f.fn
	f.mu.Unlock()
	return fn(dateKey)
}

type fakeSink struct {
	mu         sync.Mutex
	sent       []notify.Notification
	err        error
	permission model.Permission
}

func (f *fakeSink) Notify(ctx context.Context, n notify.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, n)
	return nil
}

func (f *fakeSink) Permission() model.Permission {
	if f.permission == "" {
		return model.PermissionGranted
	}
	return f.permission
}

func (f *fakeSink) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fakeSettings struct {
	mu      sync.Mutex
	cfg     model.NotificationConfig
	enabled bool
}

func (f *fakeSettings) Config(ctx context.Context) model.NotificationConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cfg
}

func (f *fakeSettings) SaveConfig(ctx context.Context, cfg model.NotificationConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cfg = cfg
	return nil
}

func (f *fakeSettings) Enabled(ctx context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enabled
}

func (f *fakeSettings) SaveEnabled(ctx context.Context, enabled bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enabled = enabled
	return nil
}

func (f *fakeSettings) DarkMode(ctx context.Context) bool { return false }

func (f *fakeSettings) SaveDarkMode(ctx context.Context, _ bool) error { return nil }

func sampleDay(dateKey string) model.PrayerDay {
	return model.PrayerDay{
		Date: dateKey,
		Prayers: []model.Prayer{
			{Name: "Fajr", StartTime: "05:00", EndTime: "12:30"},
			{Name: "Dhuhr", StartTime: "12:30", EndTime: "16:00"},
			{Name: "Asr", StartTime: "16:00", EndTime: "18:45"},
			{Name: "Maghrib", StartTime: "18:45", EndTime: "20:00"},
			{Name: "Isha", StartTime: "20:00", EndTime: "23:59"},
		},
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestEngineTickDelivers(t *testing.T) {
	svc := &fakeDayService{fn: func(k string) (model.PrayerDay, error) { return sampleDay(k), nil }}
	sink := &fakeSink{}
	st := &fakeSettings{cfg: model.DefaultNotificationConfig(), enabled: true}

	eng := New(svc, sink, st)
	eng.ReloadSettings(context.Background())
	eng.Select(context.Background(), "05-Mar-2025")
	waitFor(t, func() bool { _, ok := eng.Day(); return ok })

	eng.tick(context.Background(), at(5, 0, 0))
	if sink.count() != 1 {
		t.Fatalf("delivered %d notifications, want 1", sink.count())
	}

	// mid-minute tick stays quiet
	eng.tick(context.Background(), at(5, 0, 30))
	if sink.count() != 1 {
		t.Fatalf("mid-minute tick delivered, total %d", sink.count())
	}
}

func TestEngineDisabledDoesNothing(t *testing.T) {
	svc := &fakeDayService{fn: func(k string) (model.PrayerDay, error) { return sampleDay(k), nil }}
	sink := &fakeSink{}
	st := &fakeSettings{cfg: model.DefaultNotificationConfig(), enabled: false}

	eng := New(svc, sink, st)
	eng.ReloadSettings(context.Background())
	eng.Select(context.Background(), "05-Mar-2025")
	waitFor(t, func() bool { _, ok := eng.Day(); return ok })

	eng.tick(context.Background(), at(5, 0, 0))
	if sink.count() != 0 {
		t.Fatalf("disabled engine delivered %d notifications", sink.count())
	}
}

func TestEngineNoDayLoadedDoesNothing(t *testing.T) {
	svc := &fakeDayService{fn: func(k string) (model.PrayerDay, error) {
		return model.PrayerDay{}, errors.New("upstream down")
	}}
	sink := &fakeSink{}
	st := &fakeSettings{cfg: model.DefaultNotificationConfig(), enabled: true}

	eng := New(svc, sink, st)
	eng.ReloadSettings(context.Background())
	eng.Select(context.Background(), "05-Mar-2025")
	waitFor(t, func() bool {
		svc.mu.Lock()
		defer svc.mu.Unlock()
		return len(svc.seen) > 0
	})

	eng.tick(context.Background(), at(5, 0, 0))
	if sink.count() != 0 {
		t.Fatalf("engine with no day delivered %d notifications", sink.count())
	}
}

func TestEngineSinkFailureIsNotRetried(t *testing.T) {
	svc := &fakeDayService{fn: func(k string) (model.PrayerDay, error) { return sampleDay(k), nil }}
	sink := &fakeSink{err: errors.New("broker unavailable")}
	st := &fakeSettings{cfg: model.DefaultNotificationConfig(), enabled: true}

	eng := New(svc, sink, st)
	eng.ReloadSettings(context.Background())
	eng.Select(context.Background(), "05-Mar-2025")
	waitFor(t, func() bool { _, ok := eng.Day(); return ok })

	// must not panic or loop; the failure is logged and dropped
	eng.tick(context.Background(), at(5, 0, 0))
	if sink.count() != 0 {
		t.Fatalf("sink recorded %d sends despite erroring", sink.count())
	}
}

func TestEngineDiscardsStaleLoad(t *testing.T) {
	release := make(chan struct{})
	svc := &fakeDayService{fn: func(k string) (model.PrayerDay, error) {
		if k == "05-Mar-2025" {
			<-release // slow fetch for the first date
		}
		return sampleDay(k), nil
	}}
	sink := &fakeSink{}
	st := &fakeSettings{cfg: model.DefaultNotificationConfig(), enabled: true}

	eng := New(svc, sink, st)
	eng.Select(context.Background(), "05-Mar-2025")
	eng.Select(context.Background(), "06-Mar-2025")
	waitFor(t, func() bool { d, ok := eng.Day(); return ok && d.Date == "06-Mar-2025" })

	// let the stale fetch finish; it must not clobber the newer day
	close(release)
	time.Sleep(50 * time.Millisecond)

	day, ok := eng.Day()
	if !ok || day.Date != "06-Mar-2025" {
		t.Fatalf("stale load installed: day = %+v", day)
	}
}

func TestEngineLoadSurvivesCallerCancellation(t *testing.T) {
	sink := &fakeSink{}
	st := &fakeSettings{cfg: model.DefaultNotificationConfig(), enabled: true}

	eng := New(ctxCheckingDayService{}, sink, st)

	// request-scoped contexts die the moment the handler returns; the
	// load must still complete with real data
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng.Select(ctx, "05-Mar-2025")
	waitFor(t, func() bool { _, ok := eng.Day(); return ok })

	day, _ := eng.Day()
	if day.Prayers[0].StartTime != "05:00" {
		t.Fatalf("load degraded under canceled caller context: Fajr = %s", day.Prayers[0].StartTime)
	}

	eng.Reload(ctx)
	waitFor(t, func() bool { d, ok := eng.Day(); return ok && d.Date == "05-Mar-2025" })
}

// ctxCheckingDayService fails like a real upstream client would when its
// context is already canceled.
type ctxCheckingDayService struct{}

func (ctxCheckingDayService) Day(ctx context.Context, dateKey string) (model.PrayerDay, error) {
	time.Sleep(20 * time.Millisecond)
	if err := ctx.Err(); err != nil {
		return model.PrayerDay{}, err
	}
	return sampleDay(dateKey), nil
}

func TestEngineNavigate(t *testing.T) {
	svc := &fakeDayService{fn: func(k string) (model.PrayerDay, error) { return sampleDay(k), nil }}
	sink := &fakeSink{}
	st := &fakeSettings{cfg: model.DefaultNotificationConfig(), enabled: true}

	eng := New(svc, sink, st)
	eng.Select(context.Background(), "28-Feb-2024")
	waitFor(t, func() bool { _, ok := eng.Day(); return ok })

	next, err := eng.Navigate(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if next != "29-Feb-2024" {
		t.Errorf("navigate = %s, want 29-Feb-2024", next)
	}
	waitFor(t, func() bool { d, ok := eng.Day(); return ok && d.Date == "29-Feb-2024" })
}

func TestEngineStatus(t *testing.T) {
	svc := &fakeDayService{fn: func(k string) (model.PrayerDay, error) { return sampleDay(k), nil }}
	sink := &fakeSink{}
	st := &fakeSettings{cfg: model.DefaultNotificationConfig(), enabled: true}

	eng := New(svc, sink, st)
	eng.ReloadSettings(context.Background())
	eng.Now = func() time.Time { return at(17, 59, 0) }
	eng.Select(context.Background(), "05-Mar-2025")
	waitFor(t, func() bool { _, ok := eng.Day(); return ok })

	status := eng.Status()
	if status.SelectedDate != "05-Mar-2025" || !status.Loaded || !status.Enabled {
		t.Errorf("status = %+v", status)
	}
	if status.CurrentPrayer != "Asr" {
		t.Errorf("current prayer at 17:59 = %s, want Asr", status.CurrentPrayer)
	}
	if status.Permission != model.PermissionGranted {
		t.Errorf("permission = %s", status.Permission)
	}
}
