package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/mixcheck/internal/models"
)

func TestFormatDepth(t *testing.T) {
	tests := []struct {
		name   string
		meters float64
		units  models.Units
		want   Depth
	}{
		{name: "metric", meters: 10, units: models.UnitsMetric, want: Depth{Primary: "10.0 m", Secondary: "33 ft"}},
		{name: "imperial", meters: 10, units: models.UnitsImperial, want: Depth{Primary: "33 ft", Secondary: "10.0 m"}},
		{name: "EAN32 MOD metric", meters: 33.75, units: models.UnitsMetric, want: Depth{Primary: "33.8 m", Secondary: "111 ft"}},
		{name: "surface", meters: 0, units: models.UnitsImperial, want: Depth{Primary: "0 ft", Secondary: "0.0 m"}},
		{name: "unknown units fall back to metric", meters: 10, units: models.Units("fathoms"), want: Depth{Primary: "10.0 m", Secondary: "33 ft"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDepth(tt.meters, tt.units))
		})
	}
}

func TestParse(t *testing.T) {
	u, err := Parse("Imperial")
	require.NoError(t, err)
	assert.Equal(t, models.UnitsImperial, u)

	u, err = Parse(" metric ")
	require.NoError(t, err)
	assert.Equal(t, models.UnitsMetric, u)

	_, err = Parse("cubits")
	assert.Error(t, err)
}
