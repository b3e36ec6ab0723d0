// Package history persists saved calculations under a single versioned key.
//
// Records written by older versions are normalized on read and the collection
// is rewritten only when normalization changed something. Operations are
// read-modify-write without locking; callers serialize writers.
package history

import (
	"errors"
	"fmt"
	"sort"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/julianstephens/mixcheck/internal/calculator"
	"github.com/julianstephens/mixcheck/internal/constants"
	"github.com/julianstephens/mixcheck/internal/logger"
	"github.com/julianstephens/mixcheck/internal/models"
	"github.com/julianstephens/mixcheck/internal/storage"
)

// ErrCorruptHistory wraps every failure to decode the stored collection.
var ErrCorruptHistory = errors.New("history data is corrupt")

type Store struct {
	provider storage.Provider
	now      func() time.Time
}

func New(provider storage.Provider) *Store {
	return &Store{
		provider: provider,
		now:      time.Now,
	}
}

// List returns all entries, newest first.
func (s *Store) List() ([]models.HistoryEntry, error) {
	raw, found, err := s.provider.GetItem(constants.HistoryKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	if !found || raw == "" {
		return []models.HistoryEntry{}, nil
	}

	results, err := parseCollection(raw, s.now())
	if err != nil {
		return nil, err
	}

	entries := make([]models.HistoryEntry, len(results))
	migrated := 0
	for i, res := range results {
		entries[i] = res.Entry
		if res.migrated() {
			migrated++
			logger.Debug("Normalized legacy history entry", "id", res.Entry.ID, "rule", res.Rule)
		}
	}

	sortNewestFirst(entries)

	if migrated > 0 {
		if err := s.save(entries); err != nil {
			return nil, fmt.Errorf("failed to persist migrated history: %w", err)
		}
		logger.Info("Migrated legacy history entries", "count", migrated)
	}

	return entries, nil
}

// Add prepends entry to the collection. The entry is stored as given.
func (s *Store) Add(entry models.HistoryEntry) error {
	existing, err := s.List()
	if err != nil {
		return err
	}

	next := make([]models.HistoryEntry, 0, len(existing)+1)
	next = append(next, entry)
	next = append(next, existing...)

	return s.save(next)
}

// Delete removes the entry with the given id. An unknown id is not an error.
func (s *Store) Delete(id string) error {
	existing, err := s.List()
	if err != nil {
		return err
	}

	next := make([]models.HistoryEntry, 0, len(existing))
	for _, e := range existing {
		if e.ID != id {
			next = append(next, e)
		}
	}

	return s.save(next)
}

func (s *Store) Clear() error {
	if err := s.provider.RemoveItem(constants.HistoryKey); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func (s *Store) save(entries []models.HistoryEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := s.provider.SetItem(constants.HistoryKey, string(data)); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}

func sortNewestFirst(entries []models.HistoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAtMs > entries[j].CreatedAtMs
	})
}

// NewEntry builds the record saved for a calculation result.
func NewEntry(res calculator.Result, diverName, notes string, now time.Time) models.HistoryEntry {
	entry := models.HistoryEntry{
		ID:          uuid.NewString(),
		CreatedAtMs: now.UnixMilli(),
		DiverName:   diverName,
		Notes:       notes,
		O2:          res.Mix.O2,
		He:          res.Mix.He,
		PPO2:        models.Float(res.PPO2),
	}
	if res.Valid() {
		entry.ModMeters = models.Float(res.ModMeters)
		if res.EndMeters != nil {
			entry.EndMeters = models.Float(*res.EndMeters)
		}
	}
	return entry
}
