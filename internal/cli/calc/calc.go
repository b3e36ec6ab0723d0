package calc

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/julianstephens/mixcheck/internal/calculator"
	"github.com/julianstephens/mixcheck/internal/cli"
	"github.com/julianstephens/mixcheck/internal/constants"
	mixerrors "github.com/julianstephens/mixcheck/internal/errors"
	"github.com/julianstephens/mixcheck/internal/history"
	"github.com/julianstephens/mixcheck/internal/models"
	"github.com/julianstephens/mixcheck/internal/units"
)

// ErrInvalidMix makes the process exit with errors.ExitInvalidMix.
var ErrInvalidMix = mixerrors.ErrInvalidMix

// MixFlags are the gas inputs shared by calc and label.
type MixFlags struct {
	Preset string   `help:"Preset mix, e.g. EAN32 or 21/35." short:"p"`
	O2     *float64 `help:"Oxygen percentage (default 21)." name:"o2"`
	He     *float64 `help:"Helium percentage (default 0)." name:"he"`
	PPO2   float64  `help:"Target ppO2 in ATA." name:"ppo2" default:"1.4"`
}

// Inputs resolves the flags into calculator inputs. Explicit --o2/--he
// override the preset.
func (f MixFlags) Inputs() (calculator.Inputs, error) {
	mix := models.GasMix{O2: constants.DefaultO2, He: constants.DefaultHe}

	if f.Preset != "" {
		p, ok := calculator.FindPreset(f.Preset)
		if !ok {
			return calculator.Inputs{}, fmt.Errorf("unknown preset %q (available: %s)", f.Preset, presetNames())
		}
		mix = p.Mix
	}
	if f.O2 != nil {
		mix.O2 = *f.O2
	}
	if f.He != nil {
		mix.He = *f.He
	}

	return calculator.Inputs{Mix: mix, PPO2: f.PPO2}, nil
}

func presetNames() string {
	var names []string
	for _, p := range calculator.NitroxPresets {
		names = append(names, p.Label)
	}
	for _, p := range calculator.TrimixPresets {
		names = append(names, p.Label)
	}
	return strings.Join(names, ", ")
}

type CalcCmd struct {
	MixFlags `embed:""`

	Units string `help:"Display units (metric or imperial). Defaults to the saved setting."`
	Save  bool   `help:"Save the result to history."`
	Name  string `help:"Diver name saved with the entry. Defaults to the saved setting."`
	Notes string `help:"Notes saved with the entry."`
	JSON  bool   `help:"Print the result as JSON." name:"json"`
}

// resultView is the JSON shape printed by --json
type resultView struct {
	O2        float64          `json:"o2"`
	He        float64          `json:"he"`
	PPO2      float64          `json:"ppO2"`
	ModMeters *float64         `json:"modMeters,omitempty"`
	ModFeet   *float64         `json:"modFeet,omitempty"`
	EadMeters *float64         `json:"eadMeters,omitempty"`
	EndMeters *float64         `json:"endMeters,omitempty"`
	Warnings  []models.Warning `json:"warnings"`
}

func (c *CalcCmd) Run(ctx *cli.Context) error {
	in, err := c.Inputs()
	if err != nil {
		return err
	}

	if err := ctx.Settings.Load(); err != nil {
		return err
	}
	st := ctx.Settings.Get()
	u := st.Units
	if c.Units != "" {
		if u, err = units.Parse(c.Units); err != nil {
			return err
		}
	}

	res := calculator.Calculate(in)

	if c.JSON {
		if err := printJSON(ctx, res); err != nil {
			return err
		}
	} else {
		printResult(ctx, res, u)
	}

	if !res.Valid() {
		return ErrInvalidMix
	}

	if c.Save {
		name := c.Name
		if name == "" {
			name = st.UserName
		}
		entry := history.NewEntry(res, name, c.Notes, ctx.Now())
		if err := ctx.WithWriteLock(func() error { return ctx.History.Add(entry) }); err != nil {
			return fmt.Errorf("failed to save entry: %w", err)
		}
		if !c.JSON {
			ctx.Println(cli.SuccessStyle.Render("✓ Saved to history as " + entry.ID))
		}
	}

	return nil
}

func printJSON(ctx *cli.Context, res calculator.Result) error {
	view := resultView{
		O2:        res.Mix.O2,
		He:        res.Mix.He,
		PPO2:      res.PPO2,
		EadMeters: res.EadMeters,
		EndMeters: res.EndMeters,
		Warnings:  res.Warnings,
	}
	if res.Valid() {
		view.ModMeters = models.Float(res.ModMeters)
		view.ModFeet = models.Float(res.ModFeet)
	}

	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return err
	}
	ctx.Println(string(data))
	return nil
}

func printResult(ctx *cli.Context, res calculator.Result, u models.Units) {
	entry := models.HistoryEntry{O2: res.Mix.O2, He: res.Mix.He}
	ctx.Println(cli.TitleStyle.Render(history.MixTitle(entry)) + cli.MutedStyle.Render(fmt.Sprintf("  (N₂ %s%%)", history.FormatPercent(res.Mix.N2()))))

	if !res.Valid() {
		ctx.Println(cli.FormatWarnings(res.Warnings))
		return
	}

	ctx.Printf("  MOD @ ppO₂ %.2f  %s\n", res.PPO2, cli.FormatDepth(res.ModMeters, u))
	if res.EndMeters != nil {
		ctx.Printf("  END @ MOD        %s\n", cli.FormatDepth(*res.EndMeters, u))
	}
	if res.EadMeters != nil {
		ctx.Printf("  EAD @ MOD        %s\n", cli.FormatDepth(*res.EadMeters, u))
	}

	if calculator.IsContingencyPPO2(res.PPO2) {
		ctx.Println(cli.WarningStyle.Render("  ppO₂ 1.6 and above is normally reserved for contingency and decompression gas"))
	}
	if len(res.Warnings) > 0 {
		ctx.Println(cli.FormatWarnings(res.Warnings))
	}
}
