// Package label composes the text printed on a tank label.
package label

import (
	"time"

	"github.com/julianstephens/mixcheck/internal/calculator"
	"github.com/julianstephens/mixcheck/internal/constants"
	"github.com/julianstephens/mixcheck/internal/history"
	"github.com/julianstephens/mixcheck/internal/models"
	"github.com/julianstephens/mixcheck/internal/units"
)

const PlaceholderName = "Your Name"

// Analyzer warning printed under every label
const Reminder = "Always verify your gas content with an analyzer before diving"

type Label struct {
	Name string
	Date string // dd/mm/yy
	Mix  string
	MOD  *units.Depth
	END  *units.Depth

	result   calculator.Result
	userName string
	created  time.Time
}

func Build(res calculator.Result, st models.Settings, now time.Time) Label {
	l := Label{
		Name:     st.UserName,
		Date:     now.Format(constants.LegacyDateFormat),
		Mix:      MixDisplay(res.Mix),
		result:   res,
		userName: st.UserName,
		created:  now,
	}
	if l.Name == "" {
		l.Name = PlaceholderName
	}

	if res.Valid() {
		mod := units.FormatDepth(res.ModMeters, st.Units)
		l.MOD = &mod
		if res.EndMeters != nil {
			end := units.FormatDepth(*res.EndMeters, st.Units)
			l.END = &end
		}
	}

	return l
}

// MixDisplay is "32%" for nitrox and "Tx21/35" for trimix.
func MixDisplay(mix models.GasMix) string {
	if mix.He > 0 {
		return "Tx" + history.FormatPercent(mix.O2) + "/" + history.FormatPercent(mix.He)
	}
	return history.FormatPercent(mix.O2) + "%"
}

// HistoryEntry is the record saved when the label is committed. The diver
// name is the configured one, never the placeholder.
func (l Label) HistoryEntry(notes string) models.HistoryEntry {
	return history.NewEntry(l.result, l.userName, notes, l.created)
}
