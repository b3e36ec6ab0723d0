package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/mixcheck/internal/calculator"
	"github.com/julianstephens/mixcheck/internal/datefilter"
	"github.com/julianstephens/mixcheck/internal/history"
	"github.com/julianstephens/mixcheck/internal/label"
	"github.com/julianstephens/mixcheck/internal/units"
	"github.com/julianstephens/mixcheck/internal/validation"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch {
	case m.form != nil:
		content = docStyle.Render(m.form.View())
	case m.state == StateCalc:
		content = m.viewCalc()
	case m.state == StateHistory:
		content = m.viewHistory()
	case m.state == StateSettings:
		content = m.viewSettings()
	case m.state == StateCalendar:
		content = docStyle.Render(m.calendar.View())
	case m.state == StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) activeTab() SessionState {
	switch m.state {
	case StateCalendar, StateConfirmDelete:
		return StateHistory
	case StateEditSettings:
		return StateSettings
	default:
		return m.state
	}
}

func (m Model) viewTabs() string {
	var tabs []string
	active := m.activeTab()
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return dangerStyle.Render("Error: " + m.err.Error())
	}
	return statusStyle.Render(m.status)
}

func row(name, value string) string {
	return labelStyle.Render(name) + valueStyle.Render(value)
}

func (m Model) viewCalc() string {
	if m.result == nil {
		return docStyle.Render("Press 'c' to start a calculation.")
	}

	res := *m.result
	u := m.settings.Get().Units
	lines := []string{
		row("Mix", label.MixDisplay(res.Mix)),
		row("Nitrogen", history.FormatPercent(res.Mix.N2())+"%"),
		row("ppO₂", fmt.Sprintf("%.2f", res.PPO2)),
	}

	if !res.Valid() {
		lines = append(lines, "", dangerStyle.Render(strings.TrimRight(validation.FormatReport(res.Warnings), "\n")))
		return docStyle.Render(strings.Join(lines, "\n"))
	}

	depth := func(meters float64) string {
		d := units.FormatDepth(meters, u)
		return fmt.Sprintf("%s (%s)", d.Primary, d.Secondary)
	}
	lines = append(lines, row("MOD", depth(res.ModMeters)))
	if res.EndMeters != nil {
		lines = append(lines, row("END at MOD", depth(*res.EndMeters)))
	}
	if res.EadMeters != nil {
		lines = append(lines, row("EAD at MOD", depth(*res.EadMeters)))
	}
	if calculator.IsContingencyPPO2(res.PPO2) {
		lines = append(lines, "", noticeStyle.Render("ppO₂ 1.6 is normally reserved for deco or contingency gas."))
	}
	if m.notes != "" {
		lines = append(lines, row("Notes", m.notes))
	}
	if !m.saved {
		lines = append(lines, "", statusStyle.Render("Press 's' to save to history."))
	}
	return docStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) viewHistory() string {
	var header []string
	for _, f := range history.MixFilters {
		if f == m.historyList.Mix() {
			header = append(header, activeTabStyle.Render(f.Title()))
		} else {
			header = append(header, inactiveTabStyle.Render(f.Title()))
		}
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top, header...)
	if lbl, ok := datefilter.FormatDateFilterLabel(m.historyList.DateFilter()); ok {
		top += "  " + statusStyle.Render(lbl)
	}

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, top, m.historyList.View()))
}

func (m Model) viewSettings() string {
	current := m.settings.Get()
	name := current.UserName
	if name == "" {
		name = label.PlaceholderName + " (not set)"
	}
	return docStyle.Render(strings.Join([]string{
		row("Units", string(current.Units)),
		row("Label name", name),
	}, "\n"))
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Are you sure you want to delete this entry?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
