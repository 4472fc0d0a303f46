package packets

// Booleans are pointers so "false" survives required-field binding.

type UpdateNotificationSettingsRequest struct {
	BeforeMinutes    int   `json:"before_minutes" binding:"required"`
	AtPrayerTime     *bool `json:"at_prayer_time" binding:"required"`
	BeforePrayerTime *bool `json:"before_prayer_time" binding:"required"`
	Sound            *bool `json:"sound" binding:"required"`
}

type UpdateEnabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

type UpdateDarkModeRequest struct {
	DarkMode *bool `json:"dark_mode" binding:"required"`
}

type NavigateRequest struct {
	Direction int `json:"direction" binding:"required,oneof=-1 1"`
}
