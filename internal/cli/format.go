package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/mixcheck/internal/constants"
	"github.com/julianstephens/mixcheck/internal/history"
	"github.com/julianstephens/mixcheck/internal/models"
	"github.com/julianstephens/mixcheck/internal/units"
)

// FormatWarnings renders one styled line per warning.
func FormatWarnings(warnings []models.Warning) string {
	lines := make([]string, 0, len(warnings))
	for _, w := range warnings {
		if w.IsError() {
			lines = append(lines, ErrorStyle.Render("✗ "+w.Message))
		} else {
			lines = append(lines, WarningStyle.Render("ℹ "+w.Message))
		}
	}
	return strings.Join(lines, "\n")
}

// FormatDepth renders a depth as "33.8 m (111 ft)".
func FormatDepth(meters float64, u models.Units) string {
	d := units.FormatDepth(meters, u)
	return fmt.Sprintf("%s (%s)", d.Primary, d.Secondary)
}

// FormatEntry renders a history entry on one line.
func FormatEntry(e models.HistoryEntry, u models.Units) string {
	title := history.MixTitle(e)
	if e.He > 0 {
		title = TrimixStyle.Render(title)
	} else {
		title = NitroxStyle.Render(title)
	}

	parts := []string{
		time.UnixMilli(e.CreatedAtMs).Format(constants.TimeFormat),
		title,
	}
	if e.PPO2 != nil {
		parts = append(parts, fmt.Sprintf("ppO₂ %.2f", *e.PPO2))
	}
	if e.ModMeters != nil {
		parts = append(parts, "MOD "+FormatDepth(*e.ModMeters, u))
	}
	if e.EndMeters != nil {
		parts = append(parts, "END "+FormatDepth(*e.EndMeters, u))
	}
	if e.DiverName != "" {
		parts = append(parts, e.DiverName)
	}

	line := strings.Join(parts, "  ")
	line += "  " + MutedStyle.Render(e.ID)
	if e.Notes != "" {
		line += "\n        " + MutedStyle.Render(e.Notes)
	}
	return line
}
