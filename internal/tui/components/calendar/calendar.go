// Package calendar is a month-grid date picker that edits a draft
// datefilter.DateFilter.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/mixcheck/internal/constants"
	"github.com/julianstephens/mixcheck/internal/datefilter"
)

// ApplyMsg is sent when the draft is accepted.
type ApplyMsg struct {
	Filter datefilter.DateFilter
}

// CancelMsg is sent when the picker is closed without applying.
type CancelMsg struct{}

type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Pick      key.Binding
	Mode      key.Binding
	Clear     key.Binding
	Apply     key.Binding
	Cancel    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev week")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next week")),
		PrevMonth: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev month")),
		NextMonth: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next month")),
		Pick:      key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "pick day")),
		Mode:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "single/range")),
		Clear:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear")),
		Apply:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "apply")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

type Model struct {
	cursor time.Time
	today  time.Time
	draft  datefilter.DateFilter
	keys   KeyMap
}

// New opens the picker on the current filter's start day, or today.
func New(current datefilter.DateFilter, now time.Time) Model {
	today := midnight(now)
	if current.Mode == "" {
		current.Mode = datefilter.ModeSingle
	}

	cursor := today
	if t, err := time.ParseInLocation(constants.DateFormat, current.StartDate, time.Local); err == nil {
		cursor = t
	}

	return Model{
		cursor: cursor,
		today:  today,
		draft:  current,
		keys:   DefaultKeyMap(),
	}
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func (m Model) Draft() datefilter.DateFilter { return m.draft }

func (m Model) CursorKey() string { return m.cursor.Format(constants.DateFormat) }

func (m Model) todayKey() string { return m.today.Format(constants.DateFormat) }

func (m Model) Keys() KeyMap { return m.keys }

// Move shifts the cursor by days. The cursor never moves past today.
func (m *Model) Move(days int) {
	next := time.Date(m.cursor.Year(), m.cursor.Month(), m.cursor.Day()+days, 0, 0, 0, 0, time.Local)
	if next.After(m.today) {
		next = m.today
	}
	m.cursor = next
}

// MoveMonth shifts the cursor by whole months, clamping the day to the
// target month's length.
func (m *Model) MoveMonth(months int) {
	first := time.Date(m.cursor.Year(), m.cursor.Month()+time.Month(months), 1, 0, 0, 0, 0, time.Local)
	day := m.cursor.Day()
	if last := daysIn(first); day > last {
		day = last
	}
	next := time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.Local)
	if next.After(m.today) {
		next = m.today
	}
	m.cursor = next
}

func (m *Model) Pick() {
	m.draft = datefilter.NextDraftDateFilter(m.draft, m.CursorKey(), m.todayKey())
}

func (m *Model) ToggleMode() {
	mode := datefilter.ModeRange
	if m.draft.Mode == datefilter.ModeRange {
		mode = datefilter.ModeSingle
	}
	m.draft = datefilter.WithDateFilterMode(m.draft, mode)
}

func (m *Model) Clear() {
	m.draft = datefilter.DateFilter{Mode: m.draft.Mode}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Left):
		m.Move(-1)
	case key.Matches(keyMsg, m.keys.Right):
		m.Move(1)
	case key.Matches(keyMsg, m.keys.Up):
		m.Move(-7)
	case key.Matches(keyMsg, m.keys.Down):
		m.Move(7)
	case key.Matches(keyMsg, m.keys.PrevMonth):
		m.MoveMonth(-1)
	case key.Matches(keyMsg, m.keys.NextMonth):
		m.MoveMonth(1)
	case key.Matches(keyMsg, m.keys.Pick):
		m.Pick()
	case key.Matches(keyMsg, m.keys.Mode):
		m.ToggleMode()
	case key.Matches(keyMsg, m.keys.Clear):
		m.Clear()
	case key.Matches(keyMsg, m.keys.Apply):
		draft := m.draft
		return m, func() tea.Msg { return ApplyMsg{Filter: draft} }
	case key.Matches(keyMsg, m.keys.Cancel):
		return m, func() tea.Msg { return CancelMsg{} }
	}
	return m, nil
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	weekdayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	dayStyle     = lipgloss.NewStyle().Width(4).Align(lipgloss.Center)
	futureStyle  = dayStyle.Foreground(lipgloss.Color("238"))
	cursorStyle  = dayStyle.Reverse(true)
)

func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.Local).Day()
}

func (m Model) View() string {
	marked := datefilter.BuildMarkedDates(m.draft)
	first := time.Date(m.cursor.Year(), m.cursor.Month(), 1, 0, 0, 0, 0, time.Local)
	cursorKey := m.CursorKey()
	todayKey := m.todayKey()

	var b strings.Builder
	b.WriteString(headerStyle.Render(first.Format("January 2006")))
	b.WriteString("\n")

	var header []string
	for _, d := range []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"} {
		header = append(header, dayStyle.Inherit(weekdayStyle).Render(d))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	b.WriteString("\n")

	cells := make([]string, int(first.Weekday()))
	for i := range cells {
		cells[i] = dayStyle.Render("")
	}
	for day := 1; day <= daysIn(first); day++ {
		k := time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.Local).Format(constants.DateFormat)
		cells = append(cells, m.renderDay(day, k, marked, cursorKey, todayKey))
		if len(cells) == 7 {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
			b.WriteString("\n")
			cells = cells[:0]
		}
	}
	if len(cells) > 0 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Mode: %s", m.draft.Mode))
	if label, ok := datefilter.FormatDateFilterLabel(m.draft); ok {
		b.WriteString("  ·  " + label)
		if m.awaitingEnd() {
			b.WriteString("  ·  pick an end day")
		}
	}
	return b.String()
}

// awaitingEnd reports whether a range has its start day but no end day yet.
func (m Model) awaitingEnd() bool {
	return m.draft.Mode == datefilter.ModeRange && m.draft.StartDate != "" && m.draft.EndDate == ""
}

func (m Model) renderDay(day int, k string, marked map[string]datefilter.Marking, cursorKey, todayKey string) string {
	text := fmt.Sprintf("%d", day)
	style := dayStyle

	if mark, ok := marked[k]; ok {
		switch {
		case mark.Selected:
			style = style.Background(lipgloss.Color(mark.SelectedColor)).Foreground(lipgloss.Color("0"))
		default:
			style = style.Background(lipgloss.Color(mark.Color)).Foreground(lipgloss.Color(mark.TextColor))
			if mark.StartingDay || mark.EndingDay {
				style = style.Bold(true)
			}
		}
	} else if datefilter.IsFutureDateKey(k, todayKey) {
		style = futureStyle
	}

	if k == cursorKey {
		style = style.Inherit(cursorStyle)
	}
	return style.Render(text)
}
