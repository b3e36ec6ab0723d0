package entries

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/julianstephens/mixcheck/internal/cli"
	"github.com/julianstephens/mixcheck/internal/datefilter"
	"github.com/julianstephens/mixcheck/internal/history"
	"github.com/julianstephens/mixcheck/internal/models"
)

type ListCmd struct {
	Mix  string `help:"Filter by gas family: all, nitrox or trimix." default:"all"`
	Date string `help:"Show a single day (YYYY-MM-DD)."`
	From string `help:"Start of a date range (YYYY-MM-DD)."`
	To   string `help:"End of a date range (YYYY-MM-DD)."`
	JSON bool   `help:"Print entries as JSON." name:"json"`
}

// Filter builds the date filter described by the flags.
func (c *ListCmd) Filter() (datefilter.DateFilter, error) {
	if c.Date != "" && (c.From != "" || c.To != "") {
		return datefilter.DateFilter{}, fmt.Errorf("--date cannot be combined with --from/--to")
	}
	if c.To != "" && c.From == "" {
		return datefilter.DateFilter{}, fmt.Errorf("--to requires --from")
	}

	var f datefilter.DateFilter
	if c.Date != "" {
		f = datefilter.DateFilter{Mode: datefilter.ModeSingle, StartDate: c.Date}
	} else {
		f = datefilter.DateFilter{Mode: datefilter.ModeRange, StartDate: c.From, EndDate: c.To}
	}

	for _, key := range []string{f.StartDate, f.EndDate} {
		if key == "" {
			continue
		}
		if _, ok := datefilter.FormatDateFilterLabel(datefilter.DateFilter{Mode: datefilter.ModeSingle, StartDate: key}); !ok {
			return datefilter.DateFilter{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", key)
		}
	}
	return f, nil
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	mix, err := history.ParseMixFilter(c.Mix)
	if err != nil {
		return err
	}
	filter, err := c.Filter()
	if err != nil {
		return err
	}

	if err := ctx.Settings.Load(); err != nil {
		return err
	}

	var all []models.HistoryEntry
	// List may rewrite legacy records
	if err := ctx.WithWriteLock(func() error {
		all, err = ctx.History.List()
		return err
	}); err != nil {
		return err
	}

	entries := history.FilterByDate(history.FilterByMix(all, mix), filter)

	if c.JSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		ctx.Println(string(data))
		return nil
	}

	if label, ok := datefilter.FormatDateFilterLabel(filter); ok {
		ctx.Println(cli.MutedStyle.Render("Showing " + label))
	}

	if len(entries) == 0 {
		ctx.Println(mix.EmptyMessage())
		return nil
	}

	u := ctx.Settings.Get().Units
	for i, section := range history.GroupByDay(entries, ctx.Now()) {
		if i > 0 {
			ctx.Println()
		}
		ctx.Println(cli.TitleStyle.Render(section.Title))
		for _, e := range section.Entries {
			ctx.Println("  " + cli.FormatEntry(e, u))
		}
	}
	return nil
}

type DeleteCmd struct {
	ID  string `arg:"" help:"ID of the entry to delete."`
	Yes bool   `help:"Do not ask for confirmation." short:"y"`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete entry %s from history?", c.ID))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}

	if err := ctx.WithWriteLock(func() error { return ctx.History.Delete(c.ID) }); err != nil {
		return err
	}

	ctx.Println(cli.SuccessStyle.Render("✓ Entry deleted"))
	return nil
}

type ClearCmd struct {
	Yes bool `help:"Do not ask for confirmation." short:"y"`
}

func (c *ClearCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		ok, err := ctx.Confirm("Delete the entire history? This cannot be undone.")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Clear cancelled.")
			return nil
		}
	}

	err := ctx.WithWriteLock(func() error {
		ctx.PerformAutomaticBackup()
		return ctx.History.Clear()
	})
	if err != nil {
		return err
	}

	ctx.Println(cli.SuccessStyle.Render("✓ History cleared"))
	return nil
}
