package history

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/mixcheck/internal/constants"
	"github.com/julianstephens/mixcheck/internal/datefilter"
	"github.com/julianstephens/mixcheck/internal/models"
)

// MixFilter selects entries by gas family
type MixFilter string

const (
	MixAll    MixFilter = "all"
	MixNitrox MixFilter = "nitrox"
	MixTrimix MixFilter = "trimix"
)

// MixFilters lists the filters in tab order
var MixFilters = []MixFilter{MixAll, MixNitrox, MixTrimix}

func ParseMixFilter(s string) (MixFilter, error) {
	switch f := MixFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return MixAll, nil
	case MixAll, MixNitrox, MixTrimix:
		return f, nil
	default:
		return "", fmt.Errorf("unknown mix filter %q (use all, nitrox or trimix)", s)
	}
}

func (f MixFilter) Title() string {
	switch f {
	case MixNitrox:
		return "Nitrox"
	case MixTrimix:
		return "Trimix"
	default:
		return "All"
	}
}

// EmptyMessage is shown when a filter matches nothing.
func (f MixFilter) EmptyMessage() string {
	switch f {
	case MixNitrox:
		return "No Nitrox entries yet."
	case MixTrimix:
		return "No Trimix entries yet."
	default:
		return "No history entries yet."
	}
}

// FilterByMix keeps helium-free entries for nitrox and entries with helium
// for trimix. Order is preserved.
func FilterByMix(entries []models.HistoryEntry, f MixFilter) []models.HistoryEntry {
	if f == MixAll || f == "" {
		return entries
	}

	out := make([]models.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		switch {
		case f == MixNitrox && e.He == 0:
			out = append(out, e)
		case f == MixTrimix && e.He > 0:
			out = append(out, e)
		}
	}
	return out
}

func FilterByDate(entries []models.HistoryEntry, f datefilter.DateFilter) []models.HistoryEntry {
	if f.StartDate == "" {
		return entries
	}

	out := make([]models.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		if datefilter.IsEntryInDateFilter(e.CreatedAtMs, f) {
			out = append(out, e)
		}
	}
	return out
}

// MixTitle names an entry's gas, e.g. "Nitrox 32" or "Trimix 21/35".
func MixTitle(e models.HistoryEntry) string {
	if e.He > 0 {
		return "Trimix " + FormatPercent(e.O2) + "/" + FormatPercent(e.He)
	}
	return "Nitrox " + FormatPercent(e.O2)
}

// FormatPercent prints a percentage without trailing zeros.
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Section is a run of entries recorded on the same local day.
type Section struct {
	Key     string
	Title   string
	Entries []models.HistoryEntry
}

// GroupByDay groups entries by local day in order of first appearance, so a
// newest-first input gives newest-first sections.
func GroupByDay(entries []models.HistoryEntry, now time.Time) []Section {
	sections := []Section{}
	index := map[string]int{}

	for _, e := range entries {
		key := datefilter.ToLocalDateKey(e.CreatedAtMs)
		if i, ok := index[key]; ok {
			sections[i].Entries = append(sections[i].Entries, e)
			continue
		}
		index[key] = len(sections)
		sections = append(sections, Section{
			Key:     key,
			Title:   SectionTitle(e.CreatedAtMs, now),
			Entries: []models.HistoryEntry{e},
		})
	}

	return sections
}

// SectionTitle is "Today", "Yesterday" or the date, relative to now.
func SectionTitle(ms int64, now time.Time) string {
	t := time.UnixMilli(ms).In(time.Local)
	now = now.In(time.Local)

	// Compare calendar days in UTC so DST changes cannot skew the difference.
	target := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch int(today.Sub(target).Hours() / 24) {
	case 0:
		return "Today"
	case 1:
		return "Yesterday"
	default:
		return t.Format(constants.LabelDateFormat)
	}
}
