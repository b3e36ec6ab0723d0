package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mixcheck/internal/calculator"
	"github.com/julianstephens/mixcheck/internal/history"
	"github.com/julianstephens/mixcheck/internal/settings"
	"github.com/julianstephens/mixcheck/internal/tui/components/calendar"
	"github.com/julianstephens/mixcheck/internal/tui/components/historylist"
)

type SessionState int

const (
	StateCalc SessionState = iota
	StateHistory
	StateSettings
	StateCalendar
	StateConfirmDelete
	StateEditSettings
)

// tabCount is the number of top-level tabs; states past it are overlays.
const tabCount = 3

var tabTitles = []string{"Calculator", "History", "Settings"}

type CalcFormModel struct {
	O2    string
	He    string
	PPO2  string
	Notes string
}

type SettingsFormModel struct {
	Units    string
	UserName string
}

type Model struct {
	history  *history.Store
	settings *settings.Store
	now      func() time.Time

	state       SessionState
	keys        KeyMap
	help        help.Model
	historyList historylist.Model
	calendar    calendar.Model

	form         *huh.Form
	calcForm     *CalcFormModel
	settingsForm *SettingsFormModel

	result *calculator.Result
	notes  string
	saved  bool

	entryToDeleteID string
	status          string
	err             error
	quitting        bool
	width           int
	height          int
}

// NewModel builds the TUI over loaded history and settings stores.
func NewModel(h *history.Store, s *settings.Store, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}

	m := Model{
		history:     h,
		settings:    s,
		now:         now,
		state:       StateCalc,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		historyList: historylist.New(0, 0),
		calcForm:    &CalcFormModel{},
	}
	m.historyList.SetUnits(s.Get().Units)
	m.reload()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateCalc:
		keys = append(keys, m.keys.Calculate)
		if m.result != nil && !m.saved {
			keys = append(keys, m.keys.Save)
		}
	case StateHistory:
		keys = append(keys, m.keys.Mix, m.keys.DateFilter, m.keys.ClearFilter)
	case StateSettings:
		keys = append(keys, m.keys.Edit)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}

	var actions []key.Binding
	switch m.state {
	case StateCalc:
		actions = []key.Binding{m.keys.Calculate, m.keys.Save}
	case StateHistory:
		actions = []key.Binding{m.keys.Mix, m.keys.DateFilter, m.keys.ClearFilter}
	case StateSettings:
		actions = []key.Binding{m.keys.Edit}
	}

	return [][]key.Binding{global, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// reload reads the history back from the store into the list.
func (m *Model) reload() {
	entries, err := m.history.List()
	if err != nil {
		m.err = err
		return
	}
	m.historyList.SetEntries(entries, m.now())
}
