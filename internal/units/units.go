package units

import (
	"fmt"
	"strings"

	"github.com/julianstephens/mixcheck/internal/calculator"
	"github.com/julianstephens/mixcheck/internal/models"
)

// Depth is a depth rendered for display in the preferred unit system
// (Primary) and the other one (Secondary).
type Depth struct {
	Primary   string
	Secondary string
}

// FormatDepth renders meters as primary/secondary display strings.
// Feet are rounded to whole numbers, meters to one decimal.
func FormatDepth(meters float64, units models.Units) Depth {
	feet := fmt.Sprintf("%.0f ft", calculator.MetersToFeet(meters))
	metric := fmt.Sprintf("%.1f m", meters)

	if units == models.UnitsImperial {
		return Depth{Primary: feet, Secondary: metric}
	}

	return Depth{Primary: metric, Secondary: feet}
}

// Parse converts user input into a unit system
func Parse(s string) (models.Units, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "metric", "m", "meters":
		return models.UnitsMetric, nil
	case "imperial", "ft", "feet":
		return models.UnitsImperial, nil
	default:
		return "", fmt.Errorf("invalid units %q (expected metric or imperial)", s)
	}
}
