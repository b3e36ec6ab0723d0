package system

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/mixcheck/internal/cli"
	"github.com/julianstephens/mixcheck/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.Settings.Load(); err != nil {
		return err
	}

	// The TUI can delete entries, so it holds the write lock for the session
	return ctx.WithWriteLock(func() error {
		ctx.PerformAutomaticBackup()

		p := tea.NewProgram(tui.NewModel(ctx.History, ctx.Settings, ctx.Now), tea.WithAltScreen())
		_, err := p.Run()
		return err
	})
}
