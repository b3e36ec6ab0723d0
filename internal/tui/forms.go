package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/mixcheck/internal/calculator"
	"github.com/julianstephens/mixcheck/internal/constants"
	"github.com/julianstephens/mixcheck/internal/models"
	"github.com/julianstephens/mixcheck/internal/settings"
)

var ppO2Options = []string{"1.2", "1.3", "1.4", "1.5", "1.6"}

func validateNumber(s string) error {
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return fmt.Errorf("enter a number")
	}
	return nil
}

func parseNumber(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

// openCalcForm starts a calculation, prefilled with the previous mix.
func (m *Model) openCalcForm() tea.Cmd {
	if m.calcForm.O2 == "" {
		m.calcForm.O2 = strconv.FormatFloat(constants.DefaultO2, 'f', -1, 64)
		m.calcForm.He = strconv.FormatFloat(constants.DefaultHe, 'f', -1, 64)
		m.calcForm.PPO2 = strconv.FormatFloat(constants.DefaultPPO2, 'f', 1, 64)
	}
	m.calcForm.Notes = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("O₂ %").
				Value(&m.calcForm.O2).
				Validate(validateNumber),
			huh.NewInput().
				Title("He %").
				Value(&m.calcForm.He).
				Validate(validateNumber),
			huh.NewSelect[string]().
				Title("Target ppO₂").
				Options(huh.NewOptions(ppO2Options...)...).
				Value(&m.calcForm.PPO2),
			huh.NewInput().
				Title("Notes").
				Placeholder("optional").
				CharLimit(200).
				Value(&m.calcForm.Notes),
		),
	).WithShowHelp(true)

	m.state = StateCalc
	m.status = ""
	return m.form.Init()
}

// completeCalc runs the calculator on the submitted form.
func (m *Model) completeCalc() {
	res := calculator.Calculate(calculator.Inputs{
		Mix: models.GasMix{
			O2: parseNumber(m.calcForm.O2),
			He: parseNumber(m.calcForm.He),
		},
		PPO2: parseNumber(m.calcForm.PPO2),
	})
	m.result = &res
	m.notes = strings.TrimSpace(m.calcForm.Notes)
	m.saved = false
}

func (m *Model) openSettingsForm() tea.Cmd {
	current := m.settings.Get()
	m.settingsForm = &SettingsFormModel{
		Units:    string(current.Units),
		UserName: current.UserName,
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Units").
				Options(
					huh.NewOption("Metric (m)", string(models.UnitsMetric)),
					huh.NewOption("Imperial (ft)", string(models.UnitsImperial)),
				).
				Value(&m.settingsForm.Units),
			huh.NewInput().
				Title("Name on tank labels").
				Placeholder("Your Name").
				Value(&m.settingsForm.UserName).
				Validate(func(s string) error {
					return settings.Validate(models.Settings{Units: current.Units, UserName: strings.TrimSpace(s)})
				}),
		),
	).WithShowHelp(true)

	m.state = StateEditSettings
	return m.form.Init()
}

func (m *Model) completeSettings() {
	next := models.Settings{
		Units:    models.Units(m.settingsForm.Units),
		UserName: m.settingsForm.UserName,
	}
	if err := m.settings.Update(next); err != nil {
		m.err = err
		return
	}
	m.historyList.SetUnits(next.Units)
	m.status = "Settings saved"
}
