package packets

type EnabledResponse struct {
	Enabled bool `json:"enabled"`
}

type DarkModeResponse struct {
	DarkMode bool `json:"dark_mode"`
}

type NavigateResponse struct {
	Date string `json:"date"`
}
