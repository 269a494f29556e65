package config

import (
	"encoding/json"
	"os"
)

// UserSettings holds the user's watchlists for page composition: which
// currencies to quote against the rouble and which tickers to show.
type UserSettings struct {
	Currencies []string `json:"user_currencies"`
	Stocks     []string `json:"user_stocks"`
}

// DefaultUserSettings is what pages show when no settings file exists.
func DefaultUserSettings() UserSettings {
	return UserSettings{
		Currencies: []string{"USD", "EUR"},
		Stocks:     []string{"AAPL", "AMZN", "GOOGL", "MSFT", "TSLA"},
	}
}

// LoadUserSettings reads the settings file, falling back to defaults on any
// read or shape problem. Each list falls back independently, so a file that
// only configures currencies still gets the default stock list.
func LoadUserSettings(path string) UserSettings {
	defaults := DefaultUserSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		return defaults
	}

	var raw struct {
		Currencies []string `json:"user_currencies"`
		Stocks     []string `json:"user_stocks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return defaults
	}

	settings := defaults
	if raw.Currencies != nil {
		settings.Currencies = raw.Currencies
	}
	if raw.Stocks != nil {
		settings.Stocks = raw.Stocks
	}
	return settings
}
