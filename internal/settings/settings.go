// Package settings persists the user's notification preferences, the
// master enabled flag and the dark-mode flag in a durable key-value
// store. Malformed or missing values never surface as errors: readers
// always get defaults instead.
package settings

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/miqat-app/miqat/internal/model"
)

// Keys carried over from the original client's local storage.
const (
	keyConfig   = "namaz:notification_settings"
	keyEnabled  = "namaz:notifications_enabled"
	keyDarkMode = "namaz:dark_mode"
)

// Store reads and writes user settings. Loads degrade to defaults;
// only saves can fail.
type Store interface {
	Config(ctx context.Context) model.NotificationConfig
	SaveConfig(ctx context.Context, cfg model.NotificationConfig) error

	Enabled(ctx context.Context) bool
	SaveEnabled(ctx context.Context, enabled bool) error

	DarkMode(ctx context.Context) bool
	SaveDarkMode(ctx context.Context, dark bool) error
}

// KV is the minimal key-value surface the store needs; the redis package
// satisfies it in production and tests use a map.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}

type kvStore struct {
	kv KV
}

var _ Store = (*kvStore)(nil)

func NewStore(kv KV) Store {
	return &kvStore{kv: kv}
}

func (s *kvStore) Config(ctx context.Context) model.NotificationConfig {
	raw, err := s.kv.Get(ctx, keyConfig)
	if err != nil || raw == "" {
		return model.DefaultNotificationConfig()
	}
	var cfg model.NotificationConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		// stored garbage; start over with defaults
		log.Warn().Err(err).Msg("discarding malformed notification settings")
		return model.DefaultNotificationConfig()
	}
	if !model.ValidBeforeMinutes(cfg.BeforeMinutes) {
		cfg.BeforeMinutes = model.DefaultNotificationConfig().BeforeMinutes
	}
	return cfg
}

func (s *kvStore) SaveConfig(ctx context.Context, cfg model.NotificationConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, keyConfig, string(raw))
}

func (s *kvStore) Enabled(ctx context.Context) bool {
	raw, err := s.kv.Get(ctx, keyEnabled)
	if err != nil {
		return false
	}
	return raw == "true"
}

func (s *kvStore) SaveEnabled(ctx context.Context, enabled bool) error {
	return s.kv.Set(ctx, keyEnabled, boolString(enabled))
}

func (s *kvStore) DarkMode(ctx context.Context) bool {
	raw, err := s.kv.Get(ctx, keyDarkMode)
	if err != nil {
		return false
	}
	return raw == "true"
}

func (s *kvStore) SaveDarkMode(ctx context.Context, dark bool) error {
	return s.kv.Set(ctx, keyDarkMode, boolString(dark))
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
