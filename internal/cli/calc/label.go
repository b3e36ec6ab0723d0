package calc

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/mixcheck/internal/calculator"
	"github.com/julianstephens/mixcheck/internal/cli"
	"github.com/julianstephens/mixcheck/internal/label"
	"github.com/julianstephens/mixcheck/internal/units"
)

type LabelCmd struct {
	MixFlags `embed:""`

	Units string `help:"Label units (metric or imperial). Defaults to the saved setting."`
	Save  bool   `help:"Save the labelled mix to history."`
	Notes string `help:"Notes saved with the entry."`
}

func (c *LabelCmd) Run(ctx *cli.Context) error {
	in, err := c.Inputs()
	if err != nil {
		return err
	}

	if err := ctx.Settings.Load(); err != nil {
		return err
	}
	st := ctx.Settings.Get()
	if c.Units != "" {
		if st.Units, err = units.Parse(c.Units); err != nil {
			return err
		}
	}

	res := calculator.Calculate(in)
	if !res.Valid() {
		ctx.Println(cli.FormatWarnings(res.Warnings))
		return ErrInvalidMix
	}

	l := label.Build(res, st, ctx.Now())
	ctx.Println(Render(l))

	if c.Save {
		entry := l.HistoryEntry(c.Notes)
		if err := ctx.WithWriteLock(func() error { return ctx.History.Add(entry) }); err != nil {
			return fmt.Errorf("failed to save entry: %w", err)
		}
		ctx.Println(cli.SuccessStyle.Render("✓ Saved to history as " + entry.ID))
	}

	return nil
}

// Render draws the label as a bordered card.
func Render(l label.Label) string {
	row := func(k, v string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, cli.MutedStyle.Width(6).Render(k), v)
	}

	rows := []string{
		row("NAME", l.Name),
		row("DATE", l.Date),
		row("MIX", cli.TitleStyle.Render(l.Mix)),
	}
	if l.MOD != nil {
		rows = append(rows, row("MOD", fmt.Sprintf("%s (%s)", l.MOD.Primary, l.MOD.Secondary)))
	}
	if l.END != nil {
		rows = append(rows, row("END", fmt.Sprintf("%s (%s)", l.END.Primary, l.END.Secondary)))
	}

	card := cli.LabelStyle.Render(strings.Join(rows, "\n"))
	return card + "\n" + cli.WarningStyle.Render("! "+label.Reminder)
}
