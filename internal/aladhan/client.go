// Package aladhan fetches astronomical prayer times from the Aladhan
// public API. The service never computes times itself; this client is the
// single upstream source.
package aladhan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "http://api.aladhan.com/v1"

// Timings are the five daily prayer start times in 24-hour "HH:MM".
type Timings struct {
	Fajr    string
	Dhuhr   string
	Asr     string
	Maghrib string
	Isha    string
}

// HijriDate is the upstream's lunar date for the requested gregorian day,
// before any stored day offset is applied.
type HijriDate struct {
	Day   string
	Month string
	Year  string
}

// Client queries prayer timings for a fixed location and juristic school.
type Client struct {
	baseURL   string
	http      *http.Client
	latitude  float64
	longitude float64
	method    int
	school    int
}

// NewClient returns a client for the given coordinates. method selects
// the calculation authority (2 = ISNA) and school the asr convention
// (1 = Hanafi).
func NewClient(latitude, longitude float64, method, school int) *Client {
	return &Client{
		baseURL:   defaultBaseURL,
		http:      &http.Client{Timeout: 30 * time.Second},
		latitude:  latitude,
		longitude: longitude,
		method:    method,
		school:    school,
	}
}

// SetBaseURL points the client at a different API root (tests).
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

type timingsResponse struct {
	Code int `json:"code"`
	Data struct {
		Timings map[string]string `json:"timings"`
		Date    struct {
			Hijri struct {
				Day   string `json:"day"`
				Month struct {
					En string `json:"en"`
				} `json:"month"`
				Year string `json:"year"`
			} `json:"hijri"`
		} `json:"date"`
	} `json:"data"`
}

// Timings fetches prayer times for a gregorian date. The upstream path
// wants DD-MM-YYYY.
func (c *Client) Timings(ctx context.Context, date time.Time) (Timings, HijriDate, error) {
	endpoint := fmt.Sprintf("%s/timings/%s", c.baseURL, date.Format("02-01-2006"))
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%.4f", c.latitude))
	params.Set("longitude", fmt.Sprintf("%.4f", c.longitude))
	params.Set("method", fmt.Sprintf("%d", c.method))
	params.Set("school", fmt.Sprintf("%d", c.school))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return Timings{}, HijriDate{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Timings{}, HijriDate{}, fmt.Errorf("aladhan request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Timings{}, HijriDate{}, fmt.Errorf("aladhan: unexpected status %d", resp.StatusCode)
	}

	var body timingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Timings{}, HijriDate{}, fmt.Errorf("aladhan: decode response: %w", err)
	}

	t := Timings{
		Fajr:    cleanTime(body.Data.Timings["Fajr"]),
		Dhuhr:   cleanTime(body.Data.Timings["Dhuhr"]),
		Asr:     cleanTime(body.Data.Timings["Asr"]),
		Maghrib: cleanTime(body.Data.Timings["Maghrib"]),
		Isha:    cleanTime(body.Data.Timings["Isha"]),
	}
	if t.Fajr == "" || t.Dhuhr == "" || t.Asr == "" || t.Maghrib == "" || t.Isha == "" {
		return Timings{}, HijriDate{}, fmt.Errorf("aladhan: incomplete timings in response")
	}

	h := HijriDate{
		Day:   body.Data.Date.Hijri.Day,
		Month: body.Data.Date.Hijri.Month.En,
		Year:  body.Data.Date.Hijri.Year,
	}
	return t, h, nil
}

// cleanTime strips timezone annotations some responses carry,
// e.g. "05:12 (IST)" -> "05:12".
func cleanTime(s string) string {
	if i := strings.IndexByte(s, ' '); i > 0 {
		return s[:i]
	}
	return s
}
