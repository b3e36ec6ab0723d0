package settings

import (
	"fmt"

	"github.com/julianstephens/mixcheck/internal/cli"
	"github.com/julianstephens/mixcheck/internal/label"
	"github.com/julianstephens/mixcheck/internal/units"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Units *string `help:"Display units: metric or imperial."`
	Name  *string `help:"Name printed on tank labels. Pass an empty string to clear it."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	if err := ctx.Settings.Load(); err != nil {
		return err
	}
	current := ctx.Settings.Get()

	if c.List {
		name := current.UserName
		if name == "" {
			name = cli.MutedStyle.Render(label.PlaceholderName + " (not set)")
		}
		ctx.Println("Current Settings:")
		ctx.Printf("  Units:      %s\n", current.Units)
		ctx.Printf("  Label Name: %s\n", name)
		return nil
	}

	updated := false
	if c.Units != nil {
		u, err := units.Parse(*c.Units)
		if err != nil {
			return err
		}
		current.Units = u
		updated = true
	}
	if c.Name != nil {
		current.UserName = *c.Name
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if err := ctx.WithWriteLock(func() error { return ctx.Settings.Update(current) }); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println(cli.SuccessStyle.Render("✓ Settings updated"))
	return nil
}
