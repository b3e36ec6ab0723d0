package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/mixcheck/internal/datefilter"
	"github.com/julianstephens/mixcheck/internal/models"
)

func TestFilterByMix(t *testing.T) {
	entries := []models.HistoryEntry{
		{ID: "air", O2: 21},
		{ID: "tx", O2: 21, He: 35},
		{ID: "ean32", O2: 32},
	}

	assert.Len(t, FilterByMix(entries, MixAll), 3)

	nitrox := FilterByMix(entries, MixNitrox)
	require.Len(t, nitrox, 2)
	assert.Equal(t, "air", nitrox[0].ID)
	assert.Equal(t, "ean32", nitrox[1].ID)

	trimix := FilterByMix(entries, MixTrimix)
	require.Len(t, trimix, 1)
	assert.Equal(t, "tx", trimix[0].ID)
}

func TestParseMixFilter(t *testing.T) {
	f, err := ParseMixFilter("Trimix")
	require.NoError(t, err)
	assert.Equal(t, MixTrimix, f)

	f, err = ParseMixFilter("")
	require.NoError(t, err)
	assert.Equal(t, MixAll, f)

	_, err = ParseMixFilter("heliox")
	assert.Error(t, err)
}

func TestMixTitle(t *testing.T) {
	assert.Equal(t, "Nitrox 32", MixTitle(models.HistoryEntry{O2: 32}))
	assert.Equal(t, "Trimix 21/35", MixTitle(models.HistoryEntry{O2: 21, He: 35}))
	assert.Equal(t, "Nitrox 32.5", MixTitle(models.HistoryEntry{O2: 32.5}))
}

func TestFilterByDate(t *testing.T) {
	day := func(d int) int64 { return time.Date(2026, time.February, d, 10, 0, 0, 0, time.Local).UnixMilli() }
	entries := []models.HistoryEntry{
		{ID: "12", CreatedAtMs: day(12)},
		{ID: "11", CreatedAtMs: day(11)},
		{ID: "9", CreatedAtMs: day(9)},
	}

	assert.Len(t, FilterByDate(entries, datefilter.DateFilter{Mode: datefilter.ModeSingle}), 3)

	single := FilterByDate(entries, datefilter.DateFilter{Mode: datefilter.ModeSingle, StartDate: "2026-02-11"})
	require.Len(t, single, 1)
	assert.Equal(t, "11", single[0].ID)

	rng := FilterByDate(entries, datefilter.DateFilter{Mode: datefilter.ModeRange, StartDate: "2026-02-12", EndDate: "2026-02-10"})
	require.Len(t, rng, 2)
	assert.Equal(t, "12", rng[0].ID)
	assert.Equal(t, "11", rng[1].ID)
}

func TestGroupByDay(t *testing.T) {
	now := time.Date(2026, time.February, 20, 15, 0, 0, 0, time.Local)
	at := func(d, h int) int64 { return time.Date(2026, time.February, d, h, 0, 0, 0, time.Local).UnixMilli() }

	entries := []models.HistoryEntry{
		{ID: "t2", CreatedAtMs: at(20, 14)},
		{ID: "t1", CreatedAtMs: at(20, 8)},
		{ID: "y", CreatedAtMs: at(19, 23)},
		{ID: "old", CreatedAtMs: at(3, 9)},
	}

	sections := GroupByDay(entries, now)
	require.Len(t, sections, 3)

	assert.Equal(t, "Today", sections[0].Title)
	assert.Equal(t, "2026-02-20", sections[0].Key)
	assert.Len(t, sections[0].Entries, 2)

	assert.Equal(t, "Yesterday", sections[1].Title)
	assert.Equal(t, "Feb 3, 2026", sections[2].Title)
}

func TestSectionTitle_AcrossMonths(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 30, 0, 0, time.Local)
	feb28 := time.Date(2026, time.February, 28, 23, 0, 0, 0, time.Local).UnixMilli()
	assert.Equal(t, "Yesterday", SectionTitle(feb28, now))
}

func TestMixFilterText(t *testing.T) {
	assert.Equal(t, "All", MixAll.Title())
	assert.Equal(t, "No Trimix entries yet.", MixTrimix.EmptyMessage())
	assert.Equal(t, "No history entries yet.", MixAll.EmptyMessage())
}
