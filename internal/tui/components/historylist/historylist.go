package historylist

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/mixcheck/internal/constants"
	"github.com/julianstephens/mixcheck/internal/datefilter"
	"github.com/julianstephens/mixcheck/internal/history"
	"github.com/julianstephens/mixcheck/internal/models"
	"github.com/julianstephens/mixcheck/internal/units"
)

type DeleteEntryMsg struct {
	ID string
}

type Item struct {
	Entry   models.HistoryEntry
	Section string
	Units   models.Units
}

func (i Item) Title() string {
	return fmt.Sprintf("%s · %s  %s",
		i.Section,
		time.UnixMilli(i.Entry.CreatedAtMs).Format(constants.TimeFormat),
		history.MixTitle(i.Entry),
	)
}

func (i Item) Description() string {
	var parts []string
	if i.Entry.PPO2 != nil {
		parts = append(parts, fmt.Sprintf("ppO₂ %.2f", *i.Entry.PPO2))
	}
	if i.Entry.ModMeters != nil {
		parts = append(parts, "MOD "+units.FormatDepth(*i.Entry.ModMeters, i.Units).Primary)
	}
	if i.Entry.EndMeters != nil {
		parts = append(parts, "END "+units.FormatDepth(*i.Entry.EndMeters, i.Units).Primary)
	}
	if i.Entry.DiverName != "" {
		parts = append(parts, i.Entry.DiverName)
	}
	if i.Entry.Notes != "" {
		parts = append(parts, i.Entry.Notes)
	}
	return strings.Join(parts, " · ")
}

func (i Item) FilterValue() string { return history.MixTitle(i.Entry) }

type KeyMap struct {
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

// Model lists history entries newest first, narrowed by a mix filter and a
// date filter.
type Model struct {
	list    list.Model
	keys    KeyMap
	entries []models.HistoryEntry
	mix     history.MixFilter
	dates   datefilter.DateFilter
	units   models.Units
	now     time.Time
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	// d deletes and f opens the date picker, so paging keeps only the arrows
	l.KeyMap.PrevPage = key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←/h/pgup", "prev page"))
	l.KeyMap.NextPage = key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→/l/pgdn", "next page"))

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Delete}
	}

	return Model{list: l, keys: keys, mix: history.MixAll, units: models.UnitsMetric}
}

// SetEntries replaces the full collection; now anchors the Today/Yesterday
// section titles.
func (m *Model) SetEntries(entries []models.HistoryEntry, now time.Time) {
	m.entries = entries
	m.now = now
	m.refresh()
}

func (m *Model) SetMix(f history.MixFilter) {
	m.mix = f
	m.refresh()
}

func (m *Model) SetDateFilter(f datefilter.DateFilter) {
	m.dates = f
	m.refresh()
}

func (m *Model) SetUnits(u models.Units) {
	m.units = u
	m.refresh()
}

func (m Model) Mix() history.MixFilter { return m.mix }

func (m Model) DateFilter() datefilter.DateFilter { return m.dates }

// Visible returns the entries that pass both filters, in display order.
func (m Model) Visible() []models.HistoryEntry {
	out := make([]models.HistoryEntry, 0, len(m.list.Items()))
	for _, it := range m.list.Items() {
		out = append(out, it.(Item).Entry)
	}
	return out
}

func (m *Model) refresh() {
	filtered := history.FilterByDate(history.FilterByMix(m.entries, m.mix), m.dates)

	var items []list.Item
	for _, section := range history.GroupByDay(filtered, m.now) {
		for _, e := range section.Entries {
			items = append(items, Item{Entry: e, Section: section.Title, Units: m.units})
		}
	}
	m.list.SetItems(items)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Delete) {
		if i, ok := m.list.SelectedItem().(Item); ok {
			return m, func() tea.Msg { return DeleteEntryMsg{ID: i.Entry.ID} }
		}
		return m, nil
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		msg := m.mix.EmptyMessage()
		if m.dates.StartDate != "" {
			msg = "No entries in the selected dates."
		}
		return "\n  " + msg + "\n  Press 'c' to run a calculation."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
