// exposes a Store interface that is passed to API calls and to the prayer
// day assembly, so tests can swap in fakes
package db

import (
	"github.com/jmoiron/sqlx"

	"github.com/miqat-app/miqat/internal/model"
)

type Store interface {
	// per-prayer minute offsets, keyed by DD-MMM-YYYY date
	GetPrayerAdjustments(date string) ([]model.PrayerAdjustment, error)
	SavePrayerAdjustments(date string, adjustments []model.PrayerAdjustment) error

	// hijri day offset, keyed by DD-MMM-YYYY date
	GetHijriAdjustment(date string) (int, error)
	SaveHijriAdjustment(date string, dayAdjustment int) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore() Store {
	return &pgStore{db: DB}
}
