package db

import (
	"github.com/rs/zerolog/log"

	"github.com/miqat-app/miqat/internal/model"
)

func (s *pgStore) GetPrayerAdjustments(date string) ([]model.PrayerAdjustment, error) {
	var out []model.PrayerAdjustment
	const q = `
	SELECT prayer_name, adjustment, end_adjustment
	  FROM prayer_adjustments
	 WHERE date = $1
	 ORDER BY prayer_name;`
	if err := s.db.Select(&out, q, date); err != nil {
		log.Error().Err(err).Str("date", date).Msg("GetPrayerAdjustments failed")
		return nil, err
	}
	return out, nil
}

// SavePrayerAdjustments upserts each submitted prayer's offset for the
// given date. Prayers not in the list keep their stored rows untouched.
func (s *pgStore) SavePrayerAdjustments(date string, adjustments []model.PrayerAdjustment) error {
	tx, err := s.db.Beginx()
	if err != nil {
		log.Error().Err(err).Msg("SavePrayerAdjustments begin failed")
		return err
	}
	const q = `
	INSERT INTO prayer_adjustments (date, prayer_name, adjustment, end_adjustment, updated_at)
	VALUES ($1, $2, $3, $4, now())
	ON CONFLICT (date, prayer_name)
	DO UPDATE SET adjustment     = EXCLUDED.adjustment,
	              end_adjustment = EXCLUDED.end_adjustment,
	              updated_at     = now();`
	for _, adj := range adjustments {
		if _, err := tx.Exec(q, date, adj.PrayerName, adj.Adjustment, adj.EndAdjustment); err != nil {
			log.Error().Err(err).
				Str("date", date).
				Str("prayer", adj.PrayerName).
				Msg("SavePrayerAdjustments upsert failed")
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
