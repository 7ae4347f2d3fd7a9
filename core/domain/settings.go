// ABOUTME: AppSettings domain model holds process-wide reading preferences
// ABOUTME: Lazily created with defaults on first access when absent

package domain

// AppearanceMode selects the client rendering theme.
type AppearanceMode string

const (
	AppearanceSystem AppearanceMode = "system"
	AppearanceLight  AppearanceMode = "light"
	AppearanceDark   AppearanceMode = "dark"
)

// AppSettings is the singleton configuration record read by both
// reading engines to seed initial speed and color. Reads are
// snapshot-at-use; last write wins.
type AppSettings struct {
	// RSVPSpeedWPM is the words-per-minute pace for RSVP playback
	RSVPSpeedWPM int

	// TTSSpeedMultiplier scales the synthesizer's base speaking rate
	TTSSpeedMultiplier float64

	// FocusColor is the RSVP focus-letter highlight color
	FocusColor RGBColor

	// SelectedVoiceID names the preferred synthesis voice, if any
	SelectedVoiceID string

	// Appearance is the client theme preference
	Appearance AppearanceMode
}

// RGBColor represents an RGB color value
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// DefaultSettings returns the settings used when no record exists yet.
func DefaultSettings() AppSettings {
	return AppSettings{
		RSVPSpeedWPM:       300,
		TTSSpeedMultiplier: 1.0,
		FocusColor:         RGBColor{R: 214, G: 60, B: 60},
		Appearance:         AppearanceSystem,
	}
}

// Normalize clamps out-of-range values back to usable defaults.
func (s *AppSettings) Normalize() {
	if s.RSVPSpeedWPM < 60 {
		s.RSVPSpeedWPM = 60
	}
	if s.RSVPSpeedWPM > 1200 {
		s.RSVPSpeedWPM = 1200
	}
	if s.TTSSpeedMultiplier <= 0 {
		s.TTSSpeedMultiplier = 1.0
	}
	if s.Appearance == "" {
		s.Appearance = AppearanceSystem
	}
}
