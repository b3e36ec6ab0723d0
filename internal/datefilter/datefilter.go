// Package datefilter selects history entries by local calendar day.
//
// Filters work on date keys (YYYY-MM-DD in the local time zone) rather than
// raw timestamps so the day a user picks and the day an entry was recorded
// always agree.
package datefilter

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/mixcheck/internal/constants"
)

type Mode string

const (
	ModeSingle Mode = "single"
	ModeRange  Mode = "range"
)

// DateFilter is the current selection. An empty StartDate means no filter.
// EndDate is always empty in single mode.
type DateFilter struct {
	Mode      Mode   `json:"mode"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// Marking is the calendar decoration for one date key.
type Marking struct {
	Selected      bool   `json:"selected,omitempty"`
	SelectedColor string `json:"selectedColor,omitempty"`
	Color         string `json:"color,omitempty"`
	TextColor     string `json:"textColor,omitempty"`
	StartingDay   bool   `json:"startingDay,omitempty"`
	EndingDay     bool   `json:"endingDay,omitempty"`
}

const (
	SelectedColor  = "#22d3ee"
	RangeColor     = "#0891b2"
	RangeTextColor = "#e0f2fe"
)

func parseDateKey(key string) (year int, month time.Month, day int, ok bool) {
	parts := strings.Split(key, "-")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}

	y, errY := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	d, errD := strconv.Atoi(parts[2])
	if errY != nil || errM != nil || errD != nil {
		return 0, 0, 0, false
	}
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return 0, 0, 0, false
	}

	return y, time.Month(m), d, true
}

func ToLocalDateKey(ms int64) string {
	return time.UnixMilli(ms).In(time.Local).Format(constants.DateFormat)
}

func TodayKey() string {
	return ToLocalDateKey(time.Now().UnixMilli())
}

// StartOfLocalDayMs returns local midnight of key in epoch milliseconds, or
// NaN when key is malformed. NaN makes every comparison false, so a bad key
// matches nothing.
func StartOfLocalDayMs(key string) float64 {
	y, m, d, ok := parseDateKey(key)
	if !ok {
		return math.NaN()
	}
	return float64(time.Date(y, m, d, 0, 0, 0, 0, time.Local).UnixMilli())
}

// EndOfLocalDayMs returns the last millisecond of key's local day, or NaN.
// It is one millisecond before the next local midnight, so days that are
// shortened or stretched by a DST change stay correct.
func EndOfLocalDayMs(key string) float64 {
	y, m, d, ok := parseDateKey(key)
	if !ok {
		return math.NaN()
	}
	next := time.Date(y, m, d+1, 0, 0, 0, 0, time.Local)
	return float64(next.UnixMilli() - 1)
}

// bounds returns the filter's dates in chronological order. Date keys sort
// lexically in date order.
func bounds(f DateFilter) (lower, upper string) {
	if f.StartDate <= f.EndDate {
		return f.StartDate, f.EndDate
	}
	return f.EndDate, f.StartDate
}

func isSingleDay(f DateFilter) bool {
	return f.Mode == ModeSingle || f.EndDate == ""
}

func IsEntryInDateFilter(entryMs int64, f DateFilter) bool {
	if f.StartDate == "" {
		return true
	}

	ms := float64(entryMs)
	if isSingleDay(f) {
		return ms >= StartOfLocalDayMs(f.StartDate) && ms <= EndOfLocalDayMs(f.StartDate)
	}

	lower, upper := bounds(f)
	return ms >= StartOfLocalDayMs(lower) && ms <= EndOfLocalDayMs(upper)
}

func IsFutureDateKey(key, todayKey string) bool {
	return key > todayKey
}

// NextDraftDateFilter applies a calendar tap to the draft filter. Future days
// are ignored. In range mode the first tap anchors a new range and the second
// completes it, swapping the ends when the second day is earlier.
func NextDraftDateFilter(current DateFilter, picked, todayKey string) DateFilter {
	if IsFutureDateKey(picked, todayKey) {
		return current
	}

	if current.Mode == ModeSingle {
		return DateFilter{Mode: ModeSingle, StartDate: picked}
	}

	if current.StartDate == "" || current.EndDate != "" {
		return DateFilter{Mode: ModeRange, StartDate: picked}
	}

	if picked < current.StartDate {
		return DateFilter{Mode: ModeRange, StartDate: picked, EndDate: current.StartDate}
	}
	return DateFilter{Mode: ModeRange, StartDate: current.StartDate, EndDate: picked}
}

func WithDateFilterMode(current DateFilter, mode Mode) DateFilter {
	if mode == current.Mode {
		return current
	}

	next := DateFilter{Mode: mode, StartDate: current.StartDate}
	if mode == ModeRange {
		next.EndDate = current.EndDate
	}
	return next
}

// FormatDateFilterLabel renders the selection as "Feb 20, 2026" or
// "Feb 10, 2026 - Feb 12, 2026". It reports false when nothing is selected
// or a key cannot be parsed.
func FormatDateFilterLabel(f DateFilter) (string, bool) {
	if f.StartDate == "" {
		return "", false
	}

	if isSingleDay(f) {
		return formatKey(f.StartDate)
	}

	lower, upper := bounds(f)
	start, ok := formatKey(lower)
	if !ok {
		return "", false
	}
	end, ok := formatKey(upper)
	if !ok {
		return "", false
	}
	return start + " - " + end, true
}

func formatKey(key string) (string, bool) {
	y, m, d, ok := parseDateKey(key)
	if !ok {
		return "", false
	}
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local).Format(constants.LabelDateFormat), true
}

// BuildMarkedDates returns calendar markings for the selection: one selected
// day, or every day of a completed range with its first and last flagged.
func BuildMarkedDates(f DateFilter) map[string]Marking {
	marked := make(map[string]Marking)
	if f.StartDate == "" {
		return marked
	}

	if isSingleDay(f) {
		marked[f.StartDate] = Marking{Selected: true, SelectedColor: SelectedColor}
		return marked
	}

	lower, upper := bounds(f)
	ly, lm, ld, ok := parseDateKey(lower)
	if !ok {
		return marked
	}
	end := StartOfLocalDayMs(upper)
	if math.IsNaN(end) {
		return marked
	}

	for i := 0; ; i++ {
		cursor := time.Date(ly, lm, ld+i, 0, 0, 0, 0, time.Local)
		if float64(cursor.UnixMilli()) > end {
			break
		}
		key := cursor.Format(constants.DateFormat)
		marked[key] = Marking{
			Color:       RangeColor,
			TextColor:   RangeTextColor,
			StartingDay: key == lower,
			EndingDay:   key == upper,
		}
	}

	return marked
}
