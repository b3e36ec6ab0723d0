// Package settings holds the user's display preferences.
package settings

import (
	"fmt"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"

	"github.com/julianstephens/mixcheck/internal/constants"
	"github.com/julianstephens/mixcheck/internal/logger"
	"github.com/julianstephens/mixcheck/internal/models"
	"github.com/julianstephens/mixcheck/internal/storage"
)

// Store caches the settings record kept under constants.SettingsKey. Nothing
// is read until Load is called; Refresh re-reads after another writer.
type Store struct {
	provider storage.Provider

	mu      sync.RWMutex
	current models.Settings
	loaded  bool
}

func New(provider storage.Provider) *Store {
	return &Store{
		provider: provider,
		current:  models.DefaultSettings(),
	}
}

// Load reads the stored settings once. Later calls are no-ops.
func (s *Store) Load() error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	return s.Refresh()
}

// Refresh re-reads the stored record. Missing or malformed data yields the
// defaults; only a failing provider is an error.
func (s *Store) Refresh() error {
	raw, found, err := s.provider.GetItem(constants.SettingsKey)
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	next := models.DefaultSettings()
	if found && raw != "" {
		next = decode(raw)
	}

	s.mu.Lock()
	s.current = next
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// Get returns the current snapshot, or the defaults before Load.
func (s *Store) Get() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update validates and saves next, replacing the snapshot.
func (s *Store) Update(next models.Settings) error {
	next.UserName = strings.TrimSpace(next.UserName)
	if err := Validate(next); err != nil {
		return err
	}

	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := s.provider.SetItem(constants.SettingsKey, string(data)); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	s.mu.Lock()
	s.current = next
	s.loaded = true
	s.mu.Unlock()

	logger.Info("Settings updated", "units", next.Units)
	return nil
}

// settingsInput is the validated form of models.Settings.
type settingsInput struct {
	Units    string `validate:"required|in:metric,imperial"`
	UserName string `validate:"maxLen:64"`
}

func Validate(st models.Settings) error {
	in := settingsInput{Units: string(st.Units), UserName: st.UserName}
	v := validate.Struct(&in)
	if !v.Validate() {
		return fmt.Errorf("invalid settings: %s", v.Errors.One())
	}
	return nil
}

// decode overlays a stored, possibly partial, record on the defaults. Each
// field is decoded on its own so one bad value only resets that field.
func decode(raw string) models.Settings {
	merged := models.DefaultSettings()

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		logger.Warn("Stored settings are malformed, using defaults", "error", err)
		return merged
	}

	if data, ok := fields["units"]; ok {
		var units models.Units
		if err := json.Unmarshal(data, &units); err != nil {
			logger.Warn("Ignoring malformed units in stored settings", "error", err)
		} else {
			switch units {
			case models.UnitsMetric, models.UnitsImperial:
				merged.Units = units
			default:
				logger.Warn("Ignoring unknown units in stored settings", "units", units)
			}
		}
	}

	if data, ok := fields["userName"]; ok {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			logger.Warn("Ignoring malformed userName in stored settings", "error", err)
		} else {
			merged.UserName = name
		}
	}

	return merged
}
