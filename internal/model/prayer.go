package model

// Prayer is one daily prayer window as served to clients. Start and end
// are 24-hour "HH:MM" strings with the stored adjustments already
// applied; Adjustment and EndAdjustment echo the persisted per-prayer
// offsets in minutes.
type Prayer struct {
	ID            string `json:"id"`
	Name          string `json:"name"` // "Fajr", "Dhuhr", "Asr", "Maghrib", "Isha"
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Adjustment    int    `json:"adjustment"`
	EndAdjustment int    `json:"end_adjustment"`
}

// PrayerDay is a fully assembled day: the five prayers in canonical order
// plus the hijri date with the stored day offset applied.
type PrayerDay struct {
	ID         string   `json:"id"`
	Date       string   `json:"date"` // DD-MMM-YYYY
	HijriDate  string   `json:"hijri_date"`
	HijriMonth string   `json:"hijri_month"`
	HijriYear  string   `json:"hijri_year"`
	Prayers    []Prayer `json:"prayers"`
}

// PrayerAdjustment is a persisted pair of per-prayer minute offsets for
// one date: Adjustment shifts the start, EndAdjustment the end.
type PrayerAdjustment struct {
	PrayerName    string `json:"prayer_name" db:"prayer_name"`
	Adjustment    int    `json:"adjustment" db:"adjustment"`
	EndAdjustment int    `json:"end_adjustment" db:"end_adjustment"`
}
