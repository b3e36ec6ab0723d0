package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/mixcheck/internal/cli"
	"github.com/julianstephens/mixcheck/internal/cli/backups"
	"github.com/julianstephens/mixcheck/internal/cli/calc"
	"github.com/julianstephens/mixcheck/internal/cli/entries"
	"github.com/julianstephens/mixcheck/internal/cli/settings"
	"github.com/julianstephens/mixcheck/internal/cli/system"
	"github.com/julianstephens/mixcheck/internal/config"
	"github.com/julianstephens/mixcheck/internal/constants"
	"github.com/julianstephens/mixcheck/internal/errors"
	"github.com/julianstephens/mixcheck/internal/logger"
	"github.com/julianstephens/mixcheck/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Store   string `help:"Store location: SQLite path, .json path, PostgreSQL URL without password, 'keyring' or ':memory:'. Overrides the config file." placeholder:"LOCATION"`
	Config  string `help:"Config file path." type:"path" default:"${config_path}"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init     system.InitCmd       `cmd:"" help:"Initialize mixcheck storage."`
	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Calc     calc.CalcCmd         `cmd:"" help:"Compute MOD and END for a gas mix."`
	Label    calc.LabelCmd        `cmd:"" help:"Render a tank label for a gas mix."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	History  struct {
		List   entries.ListCmd   `cmd:"" help:"List saved calculations." default:"1"`
		Delete entries.DeleteCmd `cmd:"" help:"Delete one entry."`
		Clear  entries.ClearCmd  `cmd:"" help:"Delete every entry."`
	} `cmd:"" help:"Browse and prune the calculation history."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage store backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Show keyring status."`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Gas mix MOD/END calculator and dive gas log"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": config.DefaultPath(),
		},
	)

	conf, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Format(err))
		os.Exit(1)
	}
	if CLI.Store != "" {
		conf.Store = CLI.Store
	}
	if CLI.Debug {
		conf.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: conf.Debug, Level: conf.Log.Level, ConfigDir: conf.Dir()}); err != nil {
		fmt.Fprintln(os.Stderr, errors.Formatf("failed to initialize logger: %v", err))
		os.Exit(1)
	}

	command := strings.Fields(ctx.Command())[0]

	// Keyring commands manage the credentials a store would need, so they run
	// without one.
	var store storage.Provider
	if command != "keyring" {
		store, err = cli.OpenStore(conf.StorePath())
		errors.Fatal(err)

		// init creates the store and doctor reports load failures itself
		if command != "init" && command != "doctor" {
			errors.Fatal(store.Load())
		}
	}

	logger.Debug("Running command", "command", ctx.Command())
	err = ctx.Run(cli.NewContext(store, conf))
	if store != nil {
		if cerr := store.Close(); cerr != nil {
			logger.Warn("Failed to close store", "error", cerr)
		}
	}
	errors.Fatal(err)
}
