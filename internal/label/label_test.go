package label

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/mixcheck/internal/calculator"
	"github.com/julianstephens/mixcheck/internal/models"
)

var labelDay = time.Date(2026, time.February, 5, 10, 30, 0, 0, time.Local)

func TestBuild_Nitrox(t *testing.T) {
	res := calculator.Calculate(calculator.Inputs{Mix: models.GasMix{O2: 32}, PPO2: 1.4})
	l := Build(res, models.Settings{Units: models.UnitsMetric, UserName: "Ana"}, labelDay)

	assert.Equal(t, "Ana", l.Name)
	assert.Equal(t, "05/02/26", l.Date)
	assert.Equal(t, "32%", l.Mix)
	require.NotNil(t, l.MOD)
	assert.Equal(t, "33.8 m", l.MOD.Primary)
	assert.Equal(t, "111 ft", l.MOD.Secondary)
	assert.Nil(t, l.END)
}

func TestBuild_TrimixImperial(t *testing.T) {
	res := calculator.Calculate(calculator.Inputs{Mix: models.GasMix{O2: 21, He: 35}, PPO2: 1.4})
	l := Build(res, models.Settings{Units: models.UnitsImperial}, labelDay)

	assert.Equal(t, PlaceholderName, l.Name)
	assert.Equal(t, "Tx21/35", l.Mix)
	require.NotNil(t, l.MOD)
	require.NotNil(t, l.END)
	assert.Contains(t, l.MOD.Primary, "ft")
	assert.Contains(t, l.END.Secondary, "m")
}

func TestBuild_InvalidMixHasNoDepths(t *testing.T) {
	res := calculator.Calculate(calculator.Inputs{Mix: models.GasMix{O2: 90, He: 20}, PPO2: 1.4})
	l := Build(res, models.DefaultSettings(), labelDay)

	assert.Nil(t, l.MOD)
	assert.Nil(t, l.END)
}

func TestLabel_HistoryEntry(t *testing.T) {
	res := calculator.Calculate(calculator.Inputs{Mix: models.GasMix{O2: 36}, PPO2: 1.4})

	e := Build(res, models.DefaultSettings(), labelDay).HistoryEntry("wreck dive")
	assert.Empty(t, e.DiverName)
	assert.Equal(t, "wreck dive", e.Notes)
	assert.Equal(t, labelDay.UnixMilli(), e.CreatedAtMs)
	assert.Equal(t, 36.0, e.O2)
	require.NotNil(t, e.ModMeters)
	assert.InDelta(t, 28.89, *e.ModMeters, 0.01)
}
