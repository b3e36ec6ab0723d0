package constants

const (
	// DefaultO2 represents air or an unanalysed tank.
	DefaultO2 = 21.0
	DefaultHe = 0.0
	// DefaultTrimixHe pre-selects the first trimix preset.
	DefaultTrimixHe = 35.0
	DefaultPPO2     = 1.4
	// ContingencyPPO2 is the limit typically reserved for deco or contingency gas.
	ContingencyPPO2 = 1.6

	// AirN2Fraction is the reference nitrogen fraction of air used for END/EAD.
	AirN2Fraction = 0.79
	// MetersPerATA is the depth of sea water adding one atmosphere of pressure.
	MetersPerATA = 10.0
	FeetPerMeter = 3.28084
)
