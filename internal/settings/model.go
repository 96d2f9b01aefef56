// Package settings stores application preferences as JSON values keyed by name.
package settings

import "errors"

var ErrNotFound = errors.New("setting not found")

// Setting is one stored preference. Value holds JSON.
type Setting struct {
	Name  string `db:"name" yaml:"name"`
	Value string `db:"value" yaml:"value"`
}

// Documented setting keys.
const (
	KeyTheme           = "theme"
	KeyStudyMode       = "studyMode"
	KeyCardsPerSession = "cardsPerSession"
	KeyShowTimer       = "showTimer"
	KeyEnableSounds    = "enableSounds"
)

// Keys lists the documented keys in display order.
var Keys = []string{KeyTheme, KeyStudyMode, KeyCardsPerSession, KeyShowTimer, KeyEnableSounds}

// AppSettings is the effective value of every documented key.
type AppSettings struct {
	Theme           string `json:"theme" validate:"oneof=light dark system"`
	StudyMode       string `json:"studyMode" validate:"oneof=standard spaced-repetition shuffle"`
	CardsPerSession int    `json:"cardsPerSession" validate:"min=1"`
	ShowTimer       bool   `json:"showTimer"`
	EnableSounds    bool   `json:"enableSounds"`
}

// Defaults returns the settings used when nothing is stored.
func Defaults() AppSettings {
	return AppSettings{
		Theme:           "system",
		StudyMode:       "spaced-repetition",
		CardsPerSession: 20,
		ShowTimer:       true,
		EnableSounds:    false,
	}
}

// IsDocumented reports whether key is one of Keys.
func IsDocumented(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}
