package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/mixcheck/internal/cli/clitest"
	"github.com/julianstephens/mixcheck/internal/label"
	"github.com/julianstephens/mixcheck/internal/models"
)

func str(s string) *string { return &s }

func TestSettingsCmd_List(t *testing.T) {
	h := clitest.New(t, "")

	require.NoError(t, (&SettingsCmd{List: true}).Run(h.Ctx))
	out := h.Out.String()
	assert.Contains(t, out, "Units:      metric")
	assert.Contains(t, out, label.PlaceholderName+" (not set)")
}

func TestSettingsCmd_NoChanges(t *testing.T) {
	h := clitest.New(t, "")

	require.NoError(t, (&SettingsCmd{}).Run(h.Ctx))
	assert.Contains(t, h.Out.String(), "No changes specified.")
}

func TestSettingsCmd_Update(t *testing.T) {
	h := clitest.New(t, "")

	require.NoError(t, (&SettingsCmd{Units: str("ft"), Name: str("  Ada  ")}).Run(h.Ctx))
	assert.Contains(t, h.Out.String(), "Settings updated")
	assert.Equal(t, models.Settings{Units: models.UnitsImperial, UserName: "Ada"}, h.Ctx.Settings.Get())

	require.NoError(t, h.Ctx.Settings.Refresh())
	assert.Equal(t, models.Settings{Units: models.UnitsImperial, UserName: "Ada"}, h.Ctx.Settings.Get())

	require.NoError(t, (&SettingsCmd{Name: str("")}).Run(h.Ctx))
	assert.Equal(t, models.Settings{Units: models.UnitsImperial}, h.Ctx.Settings.Get())
}

func TestSettingsCmd_InvalidUnits(t *testing.T) {
	h := clitest.New(t, "")

	assert.Error(t, (&SettingsCmd{Units: str("fathoms")}).Run(h.Ctx))
	assert.Equal(t, models.DefaultSettings(), h.Ctx.Settings.Get())
}

func TestSettingsCmd_NameTooLong(t *testing.T) {
	h := clitest.New(t, "")
	long := make([]byte, 65)
	for i := range long {
		long[i] = 'a'
	}

	assert.Error(t, (&SettingsCmd{Name: str(string(long))}).Run(h.Ctx))
}
