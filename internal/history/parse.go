package history

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/julianstephens/mixcheck/internal/models"
)

// rule names how a record's CreatedAtMs was obtained.
type rule int

const (
	ruleCreatedAtMs rule = iota
	ruleNumericID
	ruleLegacyDate
	ruleNow
)

func (r rule) String() string {
	switch r {
	case ruleCreatedAtMs:
		return "createdAtMs"
	case ruleNumericID:
		return "numeric id"
	case ruleLegacyDate:
		return "legacy createdAt"
	case ruleNow:
		return "now"
	default:
		return "unknown"
	}
}

// parseResult is a parsed record tagged with the rule that produced its
// timestamp. Anything other than ruleCreatedAtMs, or an id that was not
// stored as a string, means the stored form is out of date and should be
// rewritten.
type parseResult struct {
	Entry     models.HistoryEntry
	Rule      rule
	NumericID bool
}

func (r parseResult) migrated() bool {
	return r.Rule != ruleCreatedAtMs || r.NumericID
}

// rawEntry mirrors HistoryEntry with the loosely typed fields that older
// records stored differently left undecoded.
type rawEntry struct {
	ID          json.RawMessage `json:"id"`
	CreatedAtMs json.RawMessage `json:"createdAtMs"`
	CreatedAt   json.RawMessage `json:"createdAt"`
	DiverName   string          `json:"diverName"`
	Notes       string          `json:"notes"`
	O2          float64         `json:"o2"`
	He          float64         `json:"he"`
	PPO2        *float64        `json:"ppO2"`
	ModMeters   *float64        `json:"modMeters"`
	EndMeters   *float64        `json:"endMeters"`
}

// parseCollection decodes the stored array. Any structural problem is
// reported as ErrCorruptHistory.
func parseCollection(raw string, now time.Time) ([]parseResult, error) {
	var records []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptHistory, err)
	}

	results := make([]parseResult, 0, len(records))
	for i, rec := range records {
		res, err := parseRecord(rec, now)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrCorruptHistory, i, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// parseRecord decodes one stored record and derives its timestamp from the
// first rule that applies: a numeric createdAtMs, a numeric id, a dd/mm/yy
// createdAt, and finally now.
func parseRecord(data json.RawMessage, now time.Time) (parseResult, error) {
	if isNull(data) {
		return parseResult{}, fmt.Errorf("record is null")
	}

	var raw rawEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return parseResult{}, err
	}

	id, numericID, err := decodeID(raw.ID)
	if err != nil {
		return parseResult{}, err
	}

	entry := models.HistoryEntry{
		ID:        id,
		CreatedAt: decodeString(raw.CreatedAt),
		DiverName: raw.DiverName,
		Notes:     raw.Notes,
		O2:        raw.O2,
		He:        raw.He,
		PPO2:      raw.PPO2,
		ModMeters: raw.ModMeters,
		EndMeters: raw.EndMeters,
	}

	if ms, ok := decodeNumber(raw.CreatedAtMs); ok {
		entry.CreatedAtMs = ms
		return parseResult{Entry: entry, Rule: ruleCreatedAtMs, NumericID: numericID}, nil
	}

	if ms, ok := numericString(id); ok {
		entry.CreatedAtMs = ms
		return parseResult{Entry: entry, Rule: ruleNumericID, NumericID: numericID}, nil
	}

	if ms, ok := parseLegacyDate(entry.CreatedAt); ok {
		entry.CreatedAtMs = ms
		return parseResult{Entry: entry, Rule: ruleLegacyDate, NumericID: numericID}, nil
	}

	entry.CreatedAtMs = now.UnixMilli()
	return parseResult{Entry: entry, Rule: ruleNow, NumericID: numericID}, nil
}

func isNull(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// decodeID accepts the id as a string or, from hand-edited data, a number.
// numeric reports the latter so the record is rewritten with a string id.
func decodeID(data json.RawMessage) (id string, numeric bool, err error) {
	if isNull(data) {
		return "", false, nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s, false, nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64), true, nil
	}

	return "", false, fmt.Errorf("id must be a string or number, got %s", data)
}

func decodeString(data json.RawMessage) string {
	var s string
	if isNull(data) || json.Unmarshal(data, &s) != nil {
		return ""
	}
	return s
}

func decodeNumber(data json.RawMessage) (int64, bool) {
	var f float64
	if isNull(data) || json.Unmarshal(data, &f) != nil {
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(math.Round(f)), true
}

func numericString(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(math.Round(f)), true
}

// parseLegacyDate reads dd/mm/yy as local midnight in the 2000s. Out of range
// days roll over into the following month.
func parseLegacyDate(s string) (int64, bool) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return 0, false
	}

	var nums [3]int
	for i, p := range parts {
		if len(p) != 2 || !isDigit(p[0]) || !isDigit(p[1]) {
			return 0, false
		}
		nums[i] = int(p[0]-'0')*10 + int(p[1]-'0')
	}

	day, month, year := nums[0], nums[1], 2000+nums[2]
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local).UnixMilli(), true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
