package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/mixcheck/internal/backup"
	"github.com/julianstephens/mixcheck/internal/cli"
	"github.com/julianstephens/mixcheck/internal/storage"
	"github.com/julianstephens/mixcheck/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name string
	// warnOnly checks never fail the command
	warnOnly   bool
	needsStore bool
	// gatesStore checks decide whether needsStore checks run
	gatesStore bool
	run        func(ctx *cli.Context) error
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	storeOK := true
	hasError := false

	checks := []check{
		{name: "Store reachable", gatesStore: true, run: checkStoreReachable},
		{name: "Schema version", needsStore: true, run: checkSchemaVersion},
		{name: "History readable", needsStore: true, run: checkHistory},
		{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
		{name: "Clock/timezone", run: func(*cli.Context) error { return checkClockTimezone() }},
	}

	for _, c := range checks {
		if c.needsStore && !storeOK {
			ctx.Printf("⊘ %s: SKIPPED (store not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ %s: OK", c.name)))
		case c.warnOnly:
			ctx.Println(cli.WarningStyle.Render(fmt.Sprintf("⚠ %s: WARNING", c.name)))
			ctx.Printf("   %v\n", err)
		default:
			ctx.Println(cli.ErrorStyle.Render(fmt.Sprintf("✗ %s: FAIL", c.name)))
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			if c.gatesStore {
				storeOK = false
			}
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	s, ok := ctx.Store.(storage.SchemaStore)
	if !ok {
		return nil
	}

	current, latest, err := s.SchemaVersions()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkHistory(ctx *cli.Context) error {
	entries, err := ctx.History.List()
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.ID] {
			return fmt.Errorf("duplicate entry id %q", e.ID)
		}
		seen[e.ID] = true

		if validation.HasErrors(validation.ValidateMix(e.Mix())) {
			return fmt.Errorf("entry %s has an invalid gas mix (%v/%v)", e.ID, e.O2, e.He)
		}
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !ctx.IsFileStore() {
		return fmt.Errorf("backups are only kept for local store files")
	}

	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found, consider creating one with 'mixcheck backup create'")
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	if now.Location() == nil {
		return fmt.Errorf("no local time zone")
	}
	return nil
}
