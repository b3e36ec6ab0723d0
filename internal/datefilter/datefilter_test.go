package datefilter

import (
	"math"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localMs(year int, month time.Month, day, hour, min, sec, msec int) int64 {
	return time.Date(year, month, day, hour, min, sec, msec*int(time.Millisecond), time.Local).UnixMilli()
}

func TestToLocalDateKey(t *testing.T) {
	assert.Equal(t, "2026-02-20", ToLocalDateKey(localMs(2026, time.February, 20, 0, 0, 0, 0)))
	assert.Equal(t, "2026-02-20", ToLocalDateKey(localMs(2026, time.February, 20, 23, 59, 59, 999)))
	assert.Equal(t, "2026-01-05", ToLocalDateKey(localMs(2026, time.January, 5, 12, 0, 0, 0)))
}

func TestDayBoundaries(t *testing.T) {
	start := StartOfLocalDayMs("2026-02-20")
	end := EndOfLocalDayMs("2026-02-20")

	assert.Equal(t, float64(localMs(2026, time.February, 20, 0, 0, 0, 0)), start)
	assert.Equal(t, float64(localMs(2026, time.February, 20, 23, 59, 59, 999)), end)
}

func TestDayBoundaries_MalformedKeys(t *testing.T) {
	for _, key := range []string{"", "2026-02", "2026-13-01", "2026-00-10", "2026-02-32", "2026-02-00", "abcd-ef-gh", "2026/02/20"} {
		t.Run(key, func(t *testing.T) {
			assert.True(t, math.IsNaN(StartOfLocalDayMs(key)))
			assert.True(t, math.IsNaN(EndOfLocalDayMs(key)))
		})
	}
}

func TestIsEntryInDateFilter_NoStart(t *testing.T) {
	assert.True(t, IsEntryInDateFilter(0, DateFilter{Mode: ModeSingle}))
	assert.True(t, IsEntryInDateFilter(0, DateFilter{Mode: ModeRange, EndDate: "2026-02-20"}))
}

func TestIsEntryInDateFilter_SingleDay(t *testing.T) {
	f := DateFilter{Mode: ModeSingle, StartDate: "2026-02-20"}

	assert.True(t, IsEntryInDateFilter(localMs(2026, time.February, 20, 14, 0, 0, 0), f))
	assert.True(t, IsEntryInDateFilter(localMs(2026, time.February, 20, 0, 0, 0, 0), f))
	assert.True(t, IsEntryInDateFilter(localMs(2026, time.February, 20, 23, 59, 59, 999), f))
	assert.False(t, IsEntryInDateFilter(localMs(2026, time.February, 19, 23, 59, 59, 0), f))
	assert.False(t, IsEntryInDateFilter(localMs(2026, time.February, 21, 0, 0, 0, 0), f))
}

func TestIsEntryInDateFilter_RangeWithoutEndIsSingleDay(t *testing.T) {
	f := DateFilter{Mode: ModeRange, StartDate: "2026-02-20"}

	assert.True(t, IsEntryInDateFilter(localMs(2026, time.February, 20, 9, 30, 0, 0), f))
	assert.False(t, IsEntryInDateFilter(localMs(2026, time.February, 21, 9, 30, 0, 0), f))
}

func TestIsEntryInDateFilter_Range(t *testing.T) {
	tests := []struct {
		name   string
		filter DateFilter
	}{
		{name: "ordered", filter: DateFilter{Mode: ModeRange, StartDate: "2026-02-10", EndDate: "2026-02-12"}},
		{name: "reversed", filter: DateFilter{Mode: ModeRange, StartDate: "2026-02-12", EndDate: "2026-02-10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, IsEntryInDateFilter(localMs(2026, time.February, 10, 0, 0, 0, 0), tt.filter))
			assert.True(t, IsEntryInDateFilter(localMs(2026, time.February, 11, 12, 0, 0, 0), tt.filter))
			assert.True(t, IsEntryInDateFilter(localMs(2026, time.February, 12, 23, 59, 59, 999), tt.filter))
			assert.False(t, IsEntryInDateFilter(localMs(2026, time.February, 13, 0, 0, 0, 0), tt.filter))
			assert.False(t, IsEntryInDateFilter(localMs(2026, time.February, 9, 23, 59, 59, 999), tt.filter))
		})
	}
}

func TestIsEntryInDateFilter_MalformedKeyMatchesNothing(t *testing.T) {
	f := DateFilter{Mode: ModeSingle, StartDate: "not-a-date"}
	assert.False(t, IsEntryInDateFilter(localMs(2026, time.February, 20, 12, 0, 0, 0), f))
}

func TestIsFutureDateKey(t *testing.T) {
	assert.True(t, IsFutureDateKey("2026-02-21", "2026-02-20"))
	assert.False(t, IsFutureDateKey("2026-02-20", "2026-02-20"))
	assert.False(t, IsFutureDateKey("2025-12-31", "2026-02-20"))
}

func TestNextDraftDateFilter(t *testing.T) {
	const today = "2026-02-20"

	tests := []struct {
		name    string
		current DateFilter
		picked  string
		want    DateFilter
	}{
		{
			name:    "future pick is rejected",
			current: DateFilter{Mode: ModeRange, StartDate: "2026-02-10"},
			picked:  "2026-02-21",
			want:    DateFilter{Mode: ModeRange, StartDate: "2026-02-10"},
		},
		{
			name:    "single replaces start",
			current: DateFilter{Mode: ModeSingle, StartDate: "2026-02-01"},
			picked:  "2026-02-05",
			want:    DateFilter{Mode: ModeSingle, StartDate: "2026-02-05"},
		},
		{
			name:    "range first tap anchors",
			current: DateFilter{Mode: ModeRange},
			picked:  "2026-02-05",
			want:    DateFilter{Mode: ModeRange, StartDate: "2026-02-05"},
		},
		{
			name:    "range second tap completes",
			current: DateFilter{Mode: ModeRange, StartDate: "2026-02-05"},
			picked:  "2026-02-08",
			want:    DateFilter{Mode: ModeRange, StartDate: "2026-02-05", EndDate: "2026-02-08"},
		},
		{
			name:    "earlier second tap flips anchor",
			current: DateFilter{Mode: ModeRange, StartDate: "2026-02-05"},
			picked:  "2026-02-01",
			want:    DateFilter{Mode: ModeRange, StartDate: "2026-02-01", EndDate: "2026-02-05"},
		},
		{
			name:    "tap after completed range starts over",
			current: DateFilter{Mode: ModeRange, StartDate: "2026-02-01", EndDate: "2026-02-05"},
			picked:  "2026-02-10",
			want:    DateFilter{Mode: ModeRange, StartDate: "2026-02-10"},
		},
		{
			name:    "today is selectable",
			current: DateFilter{Mode: ModeSingle},
			picked:  today,
			want:    DateFilter{Mode: ModeSingle, StartDate: today},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextDraftDateFilter(tt.current, tt.picked, today))
		})
	}
}

func TestWithDateFilterMode(t *testing.T) {
	rng := DateFilter{Mode: ModeRange, StartDate: "2026-02-01", EndDate: "2026-02-05"}

	assert.Equal(t, rng, WithDateFilterMode(rng, ModeRange))
	assert.Equal(t, DateFilter{Mode: ModeSingle, StartDate: "2026-02-01"}, WithDateFilterMode(rng, ModeSingle))

	single := DateFilter{Mode: ModeSingle, StartDate: "2026-02-01"}
	assert.Equal(t, DateFilter{Mode: ModeRange, StartDate: "2026-02-01"}, WithDateFilterMode(single, ModeRange))
}

func TestFormatDateFilterLabel(t *testing.T) {
	_, ok := FormatDateFilterLabel(DateFilter{Mode: ModeSingle})
	assert.False(t, ok)

	label, ok := FormatDateFilterLabel(DateFilter{Mode: ModeSingle, StartDate: "2026-02-20"})
	require.True(t, ok)
	assert.Equal(t, "Feb 20, 2026", label)

	label, ok = FormatDateFilterLabel(DateFilter{Mode: ModeRange, StartDate: "2026-02-10"})
	require.True(t, ok)
	assert.Equal(t, "Feb 10, 2026", label)

	label, ok = FormatDateFilterLabel(DateFilter{Mode: ModeRange, StartDate: "2026-02-10", EndDate: "2026-03-02"})
	require.True(t, ok)
	assert.Equal(t, "Feb 10, 2026 - Mar 2, 2026", label)

	_, ok = FormatDateFilterLabel(DateFilter{Mode: ModeSingle, StartDate: "garbage"})
	assert.False(t, ok)
}

func TestBuildMarkedDates(t *testing.T) {
	assert.Empty(t, BuildMarkedDates(DateFilter{Mode: ModeRange}))

	single := BuildMarkedDates(DateFilter{Mode: ModeSingle, StartDate: "2026-02-20"})
	assert.Equal(t, map[string]Marking{
		"2026-02-20": {Selected: true, SelectedColor: SelectedColor},
	}, single)

	rng := BuildMarkedDates(DateFilter{Mode: ModeRange, StartDate: "2026-03-01", EndDate: "2026-02-27"})
	require.Len(t, rng, 3)
	assert.Equal(t, Marking{Color: RangeColor, TextColor: RangeTextColor, StartingDay: true}, rng["2026-02-27"])
	assert.Equal(t, Marking{Color: RangeColor, TextColor: RangeTextColor}, rng["2026-02-28"])
	assert.Equal(t, Marking{Color: RangeColor, TextColor: RangeTextColor, EndingDay: true}, rng["2026-03-01"])
}

func TestBuildMarkedDates_SameDayRange(t *testing.T) {
	rng := BuildMarkedDates(DateFilter{Mode: ModeRange, StartDate: "2026-02-20", EndDate: "2026-02-20"})
	assert.Equal(t, map[string]Marking{
		"2026-02-20": {Color: RangeColor, TextColor: RangeTextColor, StartingDay: true, EndingDay: true},
	}, rng)
}

// inZone runs the rest of the test with time.Local set to name.
func inZone(t *testing.T, name string) {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)

	orig := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = orig })
}

func TestDayBoundaries_DST(t *testing.T) {
	inZone(t, "America/New_York")

	tests := []struct {
		name   string
		key    string
		length time.Duration
	}{
		{"spring forward", "2026-03-08", 23 * time.Hour},
		{"fall back", "2026-11-01", 25 * time.Hour},
		{"regular day", "2026-03-09", 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := StartOfLocalDayMs(tt.key)
			end := EndOfLocalDayMs(tt.key)

			assert.Equal(t, float64(tt.length.Milliseconds()-1), end-start)
			assert.Equal(t, tt.key, ToLocalDateKey(int64(start)))
			assert.Equal(t, tt.key, ToLocalDateKey(int64(end)))
			assert.NotEqual(t, tt.key, ToLocalDateKey(int64(end)+1))
		})
	}
}

func TestIsEntryInDateFilter_DST(t *testing.T) {
	inZone(t, "America/New_York")

	f := DateFilter{Mode: ModeSingle, StartDate: "2026-03-08"}
	assert.True(t, IsEntryInDateFilter(localMs(2026, time.March, 8, 23, 30, 0, 0), f))
	assert.True(t, IsEntryInDateFilter(localMs(2026, time.March, 8, 23, 59, 59, 999), f))
	assert.False(t, IsEntryInDateFilter(localMs(2026, time.March, 9, 0, 0, 0, 0), f))
	assert.False(t, IsEntryInDateFilter(localMs(2026, time.March, 7, 23, 59, 59, 999), f))

	fall := DateFilter{Mode: ModeRange, StartDate: "2026-10-31", EndDate: "2026-11-01"}
	assert.True(t, IsEntryInDateFilter(localMs(2026, time.November, 1, 23, 59, 59, 999), fall))
	assert.False(t, IsEntryInDateFilter(localMs(2026, time.November, 2, 0, 0, 0, 0), fall))
}

func TestBuildMarkedDates_DST(t *testing.T) {
	inZone(t, "America/New_York")

	spring := BuildMarkedDates(DateFilter{Mode: ModeRange, StartDate: "2026-03-07", EndDate: "2026-03-10"})
	require.Len(t, spring, 4)
	for _, key := range []string{"2026-03-07", "2026-03-08", "2026-03-09", "2026-03-10"} {
		assert.Contains(t, spring, key)
	}
	assert.True(t, spring["2026-03-07"].StartingDay)
	assert.True(t, spring["2026-03-10"].EndingDay)

	fall := BuildMarkedDates(DateFilter{Mode: ModeRange, StartDate: "2026-10-31", EndDate: "2026-11-02"})
	require.Len(t, fall, 3)
	assert.Contains(t, fall, "2026-11-01")
	assert.True(t, fall["2026-11-02"].EndingDay)
}
