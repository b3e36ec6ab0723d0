package calculator

import (
	"math"

	"github.com/julianstephens/mixcheck/internal/constants"
	"github.com/julianstephens/mixcheck/internal/models"
	"github.com/julianstephens/mixcheck/internal/validation"
)

// CalculateMOD returns the Maximum Operating Depth in meters for the mix at the
// given ppO2 limit. A mix without oxygen yields 0, and a limit below the
// mix's surface partial pressure yields surface depth rather than a negative.
func CalculateMOD(mix models.GasMix, ppO2 float64) float64 {
	if mix.O2 <= 0 {
		return 0
	}

	fo2 := mix.O2 / 100
	depth := (ppO2/fo2 - 1) * constants.MetersPerATA

	return math.Max(0, depth)
}

// CalculateEND returns the Equivalent Narcotic Depth in meters for the mix at
// depthMeters. It returns 0 when the nitrogen fraction is negative; that only
// happens for mixes the validator already rejects.
func CalculateEND(mix models.GasMix, depthMeters float64) float64 {
	fn2, ok := nitrogenFraction(mix)
	if !ok {
		return 0
	}

	pressure := depthMeters/constants.MetersPerATA + 1 // ATA
	narcotic := (fn2 / constants.AirN2Fraction) * pressure

	return math.Max(0, (narcotic-1)*constants.MetersPerATA)
}

// CalculateEAD returns the Equivalent Air Depth in meters: the depth at which
// air carries the same nitrogen partial pressure as the mix at depthMeters.
func CalculateEAD(mix models.GasMix, depthMeters float64) float64 {
	fn2, ok := nitrogenFraction(mix)
	if !ok {
		return 0
	}

	ead := (fn2/constants.AirN2Fraction)*(depthMeters+constants.MetersPerATA) - constants.MetersPerATA
	return math.Max(0, ead)
}

// MetersToFeet converts meters to feet, clamped to a minimum of 0.
func MetersToFeet(meters float64) float64 {
	return math.Max(0, meters*constants.FeetPerMeter)
}

func nitrogenFraction(mix models.GasMix) (float64, bool) {
	fn2 := 1 - mix.O2/100 - mix.He/100
	if fn2 < 0 {
		return 0, false
	}
	return fn2, true
}

// Inputs are the values collected from the diver
type Inputs struct {
	Mix  models.GasMix
	PPO2 float64
}

// Result is the assembled outcome of a calculation. Depths are only set when
// the mix passed validation.
type Result struct {
	Mix       models.GasMix
	PPO2      float64
	ModMeters float64
	ModFeet   float64
	EadMeters *float64
	EndMeters *float64
	Warnings  []models.Warning
}

// Valid reports whether the result carries no error warnings.
func (r Result) Valid() bool {
	return !validation.HasErrors(r.Warnings)
}

// Calculate validates the mix and computes MOD. END at MOD is added for mixes
// with helium, EAD at MOD for nitrox.
func Calculate(in Inputs) Result {
	res := Result{
		Mix:      in.Mix,
		PPO2:     in.PPO2,
		Warnings: validation.ValidateMix(in.Mix),
	}
	if !res.Valid() {
		return res
	}

	res.ModMeters = CalculateMOD(in.Mix, in.PPO2)
	res.ModFeet = MetersToFeet(res.ModMeters)

	if in.Mix.IsTrimix() {
		end := CalculateEND(in.Mix, res.ModMeters)
		res.EndMeters = &end
	} else {
		ead := CalculateEAD(in.Mix, res.ModMeters)
		res.EadMeters = &ead
	}

	return res
}

// IsContingencyPPO2 reports whether ppO2 is at the level normally reserved for
// contingency or decompression gas, so callers can show a notice.
func IsContingencyPPO2(ppO2 float64) bool {
	return ppO2 >= constants.ContingencyPPO2
}
