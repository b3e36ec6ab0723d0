package models

// HistoryEntry is a saved calculation. CreatedAtMs (epoch milliseconds) is
// the time authority for ordering and date filtering. CreatedAt is the
// dd/mm/yy date carried by records written before CreatedAtMs existed.
type HistoryEntry struct {
	ID          string   `json:"id"`
	CreatedAtMs int64    `json:"createdAtMs"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	DiverName   string   `json:"diverName,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	O2          float64  `json:"o2"`
	He          float64  `json:"he"`
	PPO2        *float64 `json:"ppO2,omitempty"`
	ModMeters   *float64 `json:"modMeters,omitempty"`
	EndMeters   *float64 `json:"endMeters,omitempty"`
}

// Mix returns the gas mix recorded by the entry.
func (e HistoryEntry) Mix() GasMix {
	return GasMix{O2: e.O2, He: e.He}
}

// Float returns a pointer to v, for the optional numeric fields.
func Float(v float64) *float64 {
	return &v
}
