package validation

import (
	"strings"

	"github.com/julianstephens/mixcheck/internal/models"
)

const (
	MsgNegativePercent = "Gas percentages cannot be negative."
	MsgExceedsHundred  = "O₂ + He cannot exceed 100%."
)

// ValidateMix checks a gas mix for physical validity. Invalid input is
// reported as warnings, never as an error; the two checks are independent so
// a mix can yield zero, one or two warnings.
func ValidateMix(mix models.GasMix) []models.Warning {
	warnings := []models.Warning{}

	if mix.O2 < 0 || mix.He < 0 {
		warnings = append(warnings, models.Warning{
			Kind:    models.WarningError,
			Message: MsgNegativePercent,
		})
	}

	if mix.O2+mix.He > 100 {
		warnings = append(warnings, models.Warning{
			Kind:    models.WarningError,
			Message: MsgExceedsHundred,
		})
	}

	return warnings
}

// HasErrors returns true if any warning is error-kind
func HasErrors(warnings []models.Warning) bool {
	for _, w := range warnings {
		if w.IsError() {
			return true
		}
	}
	return false
}

// FormatReport returns a human-readable report of the warnings
func FormatReport(warnings []models.Warning) string {
	if len(warnings) == 0 {
		return "Mix is valid."
	}

	var b strings.Builder
	for _, w := range warnings {
		b.WriteString("- [")
		b.WriteString(string(w.Kind))
		b.WriteString("] ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}
	return b.String()
}
