package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mixcheck/internal/datefilter"
	"github.com/julianstephens/mixcheck/internal/history"
	"github.com/julianstephens/mixcheck/internal/tui/components/calendar"
	"github.com/julianstephens/mixcheck/internal/tui/components/historylist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.historyList.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case historylist.DeleteEntryMsg:
		m.entryToDeleteID = msg.ID
		m.state = StateConfirmDelete
		return m, nil

	case calendar.ApplyMsg:
		m.historyList.SetDateFilter(msg.Filter)
		m.state = StateHistory
		return m, nil

	case calendar.CancelMsg:
		m.state = StateHistory
		return m, nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	switch m.state {
	case StateCalendar:
		var cmd tea.Cmd
		m.calendar, cmd = m.calendar.Update(msg)
		return m, cmd
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.err = nil
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(keyMsg, m.keys.Tab):
		m.state = (m.state + 1) % tabCount
		return m, nil
	case key.Matches(keyMsg, m.keys.ShiftTab):
		m.state = (m.state - 1 + tabCount) % tabCount
		return m, nil
	case key.Matches(keyMsg, m.keys.Calculate):
		return m, m.openCalcForm()
	}

	switch m.state {
	case StateCalc:
		if key.Matches(keyMsg, m.keys.Save) {
			m.saveResult()
		}
	case StateHistory:
		return m.updateHistory(keyMsg)
	case StateSettings:
		if key.Matches(keyMsg, m.keys.Edit) {
			return m, m.openSettingsForm()
		}
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if m.state == StateEditSettings {
			m.completeSettings()
		} else {
			m.completeCalc()
		}
		m.closeForm()
	case huh.StateAborted:
		m.closeForm()
	}
	return m, cmd
}

func (m *Model) closeForm() {
	m.form = nil
	if m.state == StateEditSettings {
		m.state = StateSettings
	}
}

func (m Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Mix):
		m.historyList.SetMix(nextMix(m.historyList.Mix()))
		return m, nil
	case key.Matches(msg, m.keys.DateFilter):
		m.calendar = calendar.New(m.historyList.DateFilter(), m.now())
		m.state = StateCalendar
		return m, nil
	case key.Matches(msg, m.keys.ClearFilter):
		m.historyList.SetDateFilter(datefilter.DateFilter{Mode: m.historyList.DateFilter().Mode})
		return m, nil
	}

	var cmd tea.Cmd
	m.historyList, cmd = m.historyList.Update(msg)
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		if m.entryToDeleteID != "" {
			if err := m.history.Delete(m.entryToDeleteID); err != nil {
				m.err = err
			} else {
				m.status = "Entry deleted"
				m.reload()
			}
			m.entryToDeleteID = ""
		}
		m.state = StateHistory
	case key.Matches(keyMsg, m.keys.Cancel):
		m.entryToDeleteID = ""
		m.state = StateHistory
	}
	return m, nil
}

// saveResult appends the last calculation to the history.
func (m *Model) saveResult() {
	switch {
	case m.result == nil:
		return
	case m.saved:
		m.status = "Already saved"
		return
	case !m.result.Valid():
		m.status = "Fix the mix before saving"
		return
	}

	entry := history.NewEntry(*m.result, m.settings.Get().UserName, m.notes, m.now())
	if err := m.history.Add(entry); err != nil {
		m.err = err
		return
	}
	m.saved = true
	m.status = "Saved to history"
	m.reload()
}

func nextMix(current history.MixFilter) history.MixFilter {
	for i, f := range history.MixFilters {
		if f == current {
			return history.MixFilters[(i+1)%len(history.MixFilters)]
		}
	}
	return history.MixAll
}
