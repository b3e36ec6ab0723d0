package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/mixcheck/internal/cli/clitest"
	"github.com/julianstephens/mixcheck/internal/label"
	"github.com/julianstephens/mixcheck/internal/models"
)

func TestLabelCmd_Placeholder(t *testing.T) {
	h := clitest.New(t, "")
	cmd := &LabelCmd{MixFlags: MixFlags{Preset: "EAN32", PPO2: 1.4}}

	require.NoError(t, cmd.Run(h.Ctx))
	out := h.Out.String()
	assert.Contains(t, out, label.PlaceholderName)
	assert.Contains(t, out, "32%")
	assert.Contains(t, out, "20/02/26")
	assert.Contains(t, out, label.Reminder)
}

func TestLabelCmd_SaveUsesConfiguredName(t *testing.T) {
	h := clitest.New(t, "")
	cmd := &LabelCmd{MixFlags: MixFlags{Preset: "18/45", PPO2: 1.3}, Save: true}

	require.NoError(t, cmd.Run(h.Ctx))
	assert.Contains(t, h.Out.String(), "Tx18/45")

	entries, err := h.Ctx.History.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].DiverName, "the placeholder is never saved")
	assert.NotNil(t, entries[0].EndMeters)

	require.NoError(t, h.Ctx.Settings.Update(models.Settings{Units: models.UnitsImperial, UserName: "Ada"}))
	h.Out.Reset()
	require.NoError(t, cmd.Run(h.Ctx))
	assert.Contains(t, h.Out.String(), "Ada")
	assert.Contains(t, h.Out.String(), " ft (")

	entries, err = h.Ctx.History.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Ada", entries[0].DiverName)
}

func TestLabelCmd_InvalidMix(t *testing.T) {
	h := clitest.New(t, "")
	cmd := &LabelCmd{MixFlags: MixFlags{O2: ptr(60), He: ptr(60), PPO2: 1.4}}

	assert.ErrorIs(t, cmd.Run(h.Ctx), ErrInvalidMix)
	assert.NotContains(t, h.Out.String(), label.Reminder)
}
