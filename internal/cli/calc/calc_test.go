package calc

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/mixcheck/internal/cli/clitest"
	"github.com/julianstephens/mixcheck/internal/models"
)

func ptr(v float64) *float64 { return &v }

func TestMixFlags_Inputs(t *testing.T) {
	tests := []struct {
		name  string
		flags MixFlags
		want  models.GasMix
	}{
		{"defaults to air", MixFlags{PPO2: 1.4}, models.GasMix{O2: 21}},
		{"preset", MixFlags{Preset: "ean32", PPO2: 1.4}, models.GasMix{O2: 32}},
		{"trimix preset", MixFlags{Preset: "21/35", PPO2: 1.4}, models.GasMix{O2: 21, He: 35}},
		{"explicit", MixFlags{O2: ptr(28), He: ptr(10), PPO2: 1.4}, models.GasMix{O2: 28, He: 10}},
		{"override preset helium", MixFlags{Preset: "21/35", He: ptr(30), PPO2: 1.4}, models.GasMix{O2: 21, He: 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := tt.flags.Inputs()
			require.NoError(t, err)
			assert.Equal(t, tt.want, in.Mix)
			assert.Equal(t, 1.4, in.PPO2)
		})
	}
}

func TestMixFlags_UnknownPreset(t *testing.T) {
	_, err := MixFlags{Preset: "EAN99"}.Inputs()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EAN32")
}

func TestCalcCmd_Nitrox(t *testing.T) {
	h := clitest.New(t, "")
	cmd := &CalcCmd{MixFlags: MixFlags{O2: ptr(32), PPO2: 1.4}}

	require.NoError(t, cmd.Run(h.Ctx))
	out := h.Out.String()
	assert.Contains(t, out, "Nitrox 32")
	assert.Contains(t, out, "33.8 m")
	assert.Contains(t, out, "EAD @ MOD")
	assert.NotContains(t, out, "END @ MOD")

	entries, err := h.Ctx.History.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCalcCmd_TrimixImperial(t *testing.T) {
	h := clitest.New(t, "")
	cmd := &CalcCmd{MixFlags: MixFlags{Preset: "21/35", PPO2: 1.4}, Units: "imperial"}

	require.NoError(t, cmd.Run(h.Ctx))
	out := h.Out.String()
	assert.Contains(t, out, "Trimix 21/35")
	assert.Contains(t, out, "END @ MOD")
	assert.Contains(t, out, " ft (")
}

func TestCalcCmd_ContingencyNotice(t *testing.T) {
	h := clitest.New(t, "")
	cmd := &CalcCmd{MixFlags: MixFlags{O2: ptr(50), PPO2: 1.6}}

	require.NoError(t, cmd.Run(h.Ctx))
	assert.Contains(t, h.Out.String(), "contingency")
}

func TestCalcCmd_InvalidMix(t *testing.T) {
	h := clitest.New(t, "")
	cmd := &CalcCmd{MixFlags: MixFlags{O2: ptr(80), He: ptr(30), PPO2: 1.4}, Save: true}

	err := cmd.Run(h.Ctx)
	assert.ErrorIs(t, err, ErrInvalidMix)
	assert.Contains(t, h.Out.String(), "cannot exceed 100%")

	entries, err := h.Ctx.History.List()
	require.NoError(t, err)
	assert.Empty(t, entries, "invalid results are never saved")
}

func TestCalcCmd_Save(t *testing.T) {
	h := clitest.New(t, "")
	require.NoError(t, h.Ctx.Settings.Update(models.Settings{Units: models.UnitsMetric, UserName: "Ada"}))

	cmd := &CalcCmd{MixFlags: MixFlags{Preset: "EAN36", PPO2: 1.4}, Save: true, Notes: "wreck"}
	require.NoError(t, cmd.Run(h.Ctx))

	entries, err := h.Ctx.History.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 36.0, entries[0].O2)
	assert.Equal(t, "Ada", entries[0].DiverName)
	assert.Equal(t, "wreck", entries[0].Notes)
	assert.Equal(t, clitest.Now.UnixMilli(), entries[0].CreatedAtMs)
	assert.Contains(t, h.Out.String(), "Saved to history as "+entries[0].ID)
}

func TestCalcCmd_SaveWithNameFlag(t *testing.T) {
	h := clitest.NewSQLite(t, "")

	cmd := &CalcCmd{MixFlags: MixFlags{PPO2: 1.4}, Save: true, Name: "Grace"}
	require.NoError(t, cmd.Run(h.Ctx))

	entries, err := h.Ctx.History.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Grace", entries[0].DiverName)
}

func TestCalcCmd_JSON(t *testing.T) {
	h := clitest.New(t, "")
	cmd := &CalcCmd{MixFlags: MixFlags{O2: ptr(32), PPO2: 1.4}, JSON: true}

	require.NoError(t, cmd.Run(h.Ctx))

	var got resultView
	require.NoError(t, json.Unmarshal(h.Out.Bytes(), &got))
	assert.Equal(t, 32.0, got.O2)
	require.NotNil(t, got.ModMeters)
	assert.InDelta(t, 33.75, *got.ModMeters, 1e-9)
	assert.NotNil(t, got.EadMeters)
	assert.Nil(t, got.EndMeters)
	assert.Empty(t, got.Warnings)
}

func TestCalcCmd_JSONInvalidOmitsDepths(t *testing.T) {
	h := clitest.New(t, "")
	cmd := &CalcCmd{MixFlags: MixFlags{O2: ptr(-5), PPO2: 1.4}, JSON: true}

	assert.ErrorIs(t, cmd.Run(h.Ctx), ErrInvalidMix)

	var got resultView
	require.NoError(t, json.Unmarshal(h.Out.Bytes(), &got))
	assert.Nil(t, got.ModMeters)
	require.Len(t, got.Warnings, 1)
	assert.Equal(t, models.WarningError, got.Warnings[0].Kind)
}

func TestCalcCmd_BadUnits(t *testing.T) {
	h := clitest.New(t, "")
	cmd := &CalcCmd{MixFlags: MixFlags{PPO2: 1.4}, Units: "furlongs"}

	assert.Error(t, cmd.Run(h.Ctx))
}
