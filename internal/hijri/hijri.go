// Package hijri handles the lunar calendar date shown alongside the
// gregorian one: normalizing upstream month names, applying the stored
// whole-day offset, and approximating a conversion when the upstream is
// unreachable.
package hijri

import (
	"strconv"
	"strings"
	"time"
)

// Date is a lunar calendar date. Day and Year are kept as strings to
// match the wire format.
type Date struct {
	Day   string
	Month string
	Year  string
}

var months = []string{
	"Muharram", "Safar", "Rabi al-awwal", "Rabi al-thani",
	"Jumada al-awwal", "Jumada al-thani", "Rajab", "Sha'ban",
	"Ramadan", "Shawwal", "Dhu al-Qi'dah", "Dhu al-Hijjah",
}

// The upstream API transliterates month names with diacritics; map them
// back to the plain spellings used throughout the app.
var monthNameMap = map[string]string{
	"Muḥarram":          "Muharram",
	"Ṣafar":             "Safar",
	"Rabīʿ al-awwal":    "Rabi al-awwal",
	"Rabīʿ al-thānī":    "Rabi al-thani",
	"Jumādá al-ūlá":     "Jumada al-awwal",
	"Jumādá al-ākhirah": "Jumada al-thani",
	"Rajab":             "Rajab",
	"Shaʿbān":           "Sha'ban",
	"Ramaḍān":           "Ramadan",
	"Shawwāl":           "Shawwal",
	"Dhū al-Qaʿdah":     "Dhu al-Qi'dah",
	"Dhū al-Ḥijjah":     "Dhu al-Hijjah",
}

// NormalizeMonth maps an upstream month name onto the canonical list,
// falling back to a case-insensitive partial match and then Muharram.
func NormalizeMonth(name string) string {
	if m, ok := monthNameMap[name]; ok {
		return m
	}
	lower := strings.ToLower(name)
	for _, m := range months {
		ml := strings.ToLower(m)
		if strings.Contains(lower, ml) || strings.Contains(ml, lower) {
			return m
		}
	}
	return months[0]
}

func monthIndex(name string) int {
	for i, m := range months {
		if m == name {
			return i
		}
	}
	return 0
}

// Adjust shifts a hijri date by whole days, borrowing and carrying across
// month and year boundaries with an approximate 30-day month.
func Adjust(d Date, days int) Date {
	day, err := strconv.Atoi(d.Day)
	if err != nil {
		day = 1
	}
	year, err := strconv.Atoi(d.Year)
	if err != nil {
		year = 1
	}
	mi := monthIndex(NormalizeMonth(d.Month))

	day += days
	for day < 1 {
		mi--
		if mi < 0 {
			mi = 11
			year--
		}
		day += 30
	}
	for day > 30 {
		day -= 30
		mi++
		if mi > 11 {
			mi = 0
			year++
		}
	}

	return Date{
		Day:   strconv.Itoa(day),
		Month: months[mi],
		Year:  strconv.Itoa(year),
	}
}

// islamic calendar epoch, 16 July 622 CE
var epoch = time.Date(622, time.July, 16, 0, 0, 0, 0, time.UTC)

// Approximate converts a gregorian date using mean lunar year and month
// lengths. Only used as a fallback when the upstream source is down; the
// result can be off by a day or two.
func Approximate(gregorian time.Time) Date {
	days := int(gregorian.Sub(epoch).Hours() / 24)
	year := int(float64(days)/354.367) + 1

	remaining := float64(days) - float64(year-1)*354.367
	month := int(remaining/29.53) + 1
	day := int(remaining-float64(month-1)*29.53) + 1

	if month > 12 {
		month = 12
	}
	if day < 1 {
		day = 1
	}
	if day > 30 {
		day = 30
	}

	return Date{
		Day:   strconv.Itoa(day),
		Month: months[month-1],
		Year:  strconv.Itoa(year),
	}
}
