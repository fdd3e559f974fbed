package store

import (
	"errors"
	"fmt"
	"time"
)

// Visual theme identifiers. A closed set; unknown values are rejected on
// save and replaced by the default on load.
const (
	ThemeCream    = "cream"
	ThemeForest   = "forest"
	ThemeOcean    = "ocean"
	ThemeMidnight = "midnight"
)

// Font size steps.
const (
	FontSmall  = "small"
	FontMedium = "medium"
	FontLarge  = "large"
)

var (
	validThemes    = map[string]bool{ThemeCream: true, ThemeForest: true, ThemeOcean: true, ThemeMidnight: true}
	validFontSizes = map[string]bool{FontSmall: true, FontMedium: true, FontLarge: true}
)

// Settings is the display preferences blob, persisted on device only.
type Settings struct {
	Theme          string `json:"theme"`
	FontSize       string `json:"font_size"`
	ShowTimestamps bool   `json:"show_timestamps"`
}

// DefaultSettings are applied when nothing has been saved yet.
func DefaultSettings() Settings {
	return Settings{Theme: ThemeCream, FontSize: FontMedium, ShowTimestamps: true}
}

// Validate rejects values outside the closed sets.
func (s Settings) Validate() error {
	if !validThemes[s.Theme] {
		return fmt.Errorf("unknown theme %q", s.Theme)
	}
	if !validFontSizes[s.FontSize] {
		return fmt.Errorf("unknown font size %q", s.FontSize)
	}
	return nil
}

// Settings loads the saved settings, falling back to defaults when absent
// or unreadable. Individual bad fields also fall back to their defaults
// so one corrupt value does not discard the rest.
func (s *Store) Settings() Settings {
	var loaded Settings
	if err := s.getJSON(keySettings, &loaded); err != nil {
		return DefaultSettings()
	}
	if !validThemes[loaded.Theme] {
		loaded.Theme = DefaultSettings().Theme
	}
	if !validFontSizes[loaded.FontSize] {
		loaded.FontSize = DefaultSettings().FontSize
	}
	return loaded
}

// SaveSettings validates and persists the settings blob.
func (s *Store) SaveSettings(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	return s.putJSON(keySettings, settings)
}

// Consent is the cookie-consent acknowledgment blob.
type Consent struct {
	Accepted   bool      `json:"accepted"`
	Analytics  bool      `json:"analytics"`
	AcceptedAt time.Time `json:"accepted_at"`
}

// Consent returns the stored acknowledgment and whether one exists.
func (s *Store) Consent() (Consent, bool) {
	var c Consent
	if err := s.getJSON(keyConsent, &c); err != nil {
		if !errors.Is(err, ErrNoValue) {
			return Consent{}, false
		}
		return Consent{}, false
	}
	return c, true
}

// SaveConsent records the acknowledgment with the current time.
func (s *Store) SaveConsent(c Consent) error {
	if c.AcceptedAt.IsZero() {
		c.AcceptedAt = time.Now().UTC()
	}
	return s.putJSON(keyConsent, c)
}
