package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"
)

func (s *pgStore) GetHijriAdjustment(date string) (int, error) {
	var days int
	err := s.db.Get(&days, `SELECT day_adjustment FROM hijri_adjustments WHERE date = $1;`, date)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("GetHijriAdjustment failed")
		return 0, err
	}
	return days, nil
}

func (s *pgStore) SaveHijriAdjustment(date string, dayAdjustment int) error {
	const q = `
	INSERT INTO hijri_adjustments (date, day_adjustment, updated_at)
	VALUES ($1, $2, now())
	ON CONFLICT (date)
	DO UPDATE SET day_adjustment = EXCLUDED.day_adjustment, updated_at = now();`
	_, err := s.db.Exec(q, date, dayAdjustment)
	if err != nil {
		log.Error().Err(err).Str("date", date).Int("days", dayAdjustment).Msg("SaveHijriAdjustment failed")
	}
	return err
}
