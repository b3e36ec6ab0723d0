package calculator

import (
	"strings"

	"github.com/julianstephens/mixcheck/internal/models"
)

// Preset is a named gas mix offered as a shortcut
type Preset struct {
	Label string
	Mix   models.GasMix
}

var (
	NitroxPresets = []Preset{
		{Label: "Air", Mix: models.GasMix{O2: 21}},
		{Label: "EAN32", Mix: models.GasMix{O2: 32}},
		{Label: "EAN36", Mix: models.GasMix{O2: 36}},
		{Label: "EAN40", Mix: models.GasMix{O2: 40}},
		{Label: "O2", Mix: models.GasMix{O2: 100}},
	}

	TrimixPresets = []Preset{
		{Label: "21/35", Mix: models.GasMix{O2: 21, He: 35}},
		{Label: "18/45", Mix: models.GasMix{O2: 18, He: 45}},
		{Label: "15/55", Mix: models.GasMix{O2: 15, He: 55}},
		{Label: "10/70", Mix: models.GasMix{O2: 10, He: 70}},
	}
)

// FindPreset looks a preset up by label across both families, ignoring case
func FindPreset(label string) (Preset, bool) {
	for _, p := range NitroxPresets {
		if strings.EqualFold(p.Label, label) {
			return p, true
		}
	}
	for _, p := range TrimixPresets {
		if strings.EqualFold(p.Label, label) {
			return p, true
		}
	}
	return Preset{}, false
}
