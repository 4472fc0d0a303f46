package packets

// PrayerAdjustmentRequest is one prayer's minute offsets in a save call.
type PrayerAdjustmentRequest struct {
	PrayerName    string `json:"prayer_name" binding:"required"`
	Adjustment    int    `json:"adjustment"`
	EndAdjustment int    `json:"end_adjustment"`
}

type AdjustPrayersRequest struct {
	Adjustments []PrayerAdjustmentRequest `json:"adjustments" binding:"required"`
}

type AdjustHijriRequest struct {
	DayAdjustment int `json:"day_adjustment"`
}
