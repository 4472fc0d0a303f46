package model

// NotificationConfig mirrors the user's reminder preferences. All fields
// are always present; missing or malformed persisted data falls back to
// DefaultNotificationConfig.
type NotificationConfig struct {
	BeforeMinutes    int  `json:"before_minutes"`
	AtPrayerTime     bool `json:"at_prayer_time"`
	BeforePrayerTime bool `json:"before_prayer_time"`
	Sound            bool `json:"sound"`
}

// DefaultNotificationConfig returns the settings used until the user
// saves their own.
func DefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		BeforeMinutes:    5,
		AtPrayerTime:     true,
		BeforePrayerTime: true,
		Sound:            true,
	}
}

// ValidBeforeMinutes reports whether m is one of the offered lead times.
func ValidBeforeMinutes(m int) bool {
	switch m {
	case 1, 3, 5, 10, 15:
		return true
	}
	return false
}

// Permission is the notification sink's delivery state. It is reported to
// the user but never gates the master enabled flag, which records intent.
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)
