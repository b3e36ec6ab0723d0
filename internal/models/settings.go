package models

// Units is the unit system used for display
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// Settings represents the user's preferences
type Settings struct {
	Units    Units  `json:"units"`    // "metric" or "imperial"
	UserName string `json:"userName"` // printed on tank labels, empty allowed
}

// DefaultSettings returns the settings used when nothing is stored.
func DefaultSettings() Settings {
	return Settings{
		Units:    UnitsMetric,
		UserName: "",
	}
}
