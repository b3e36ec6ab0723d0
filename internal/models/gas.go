package models

// GasMix is a breathing gas given as O2 and He percentages. Nitrogen is the
// remainder (100 - O2 - He).
type GasMix struct {
	O2 float64 `json:"o2"`
	He float64 `json:"he"`
}

// N2 returns the implied nitrogen percentage.
func (m GasMix) N2() float64 {
	return 100 - m.O2 - m.He
}

// IsTrimix reports whether the mix carries any helium.
func (m GasMix) IsTrimix() bool {
	return m.He > 0
}

// WarningKind classifies a Warning
type WarningKind string

const (
	WarningError WarningKind = "error"
	WarningInfo  WarningKind = "info"
)

// Warning is a validation outcome reported to the caller as data.
// Errors block saving and depth display, info warnings are advisory.
type Warning struct {
	Kind    WarningKind `json:"type"`
	Message string      `json:"message"`
}

func (w Warning) IsError() bool {
	return w.Kind == WarningError
}
