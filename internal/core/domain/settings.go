package domain

// Default filter tolerances applied until the owner saves their own.
const (
	DefaultToleranceDifficulty = 10
	DefaultToleranceRank       = 20
)

// Settings are the user-tunable numeric knobs. CostPerInstall has no
// sensible default and stays nil until set; cost stays uncomputable
// until then. The tolerances define the +/- window used when a clicked
// numeric value is turned into a range filter.
type Settings struct {
	CostPerInstall      *float64
	ToleranceDifficulty float64
	ToleranceRank       float64
}

// DefaultSettings returns the settings used before the owner has saved any.
func DefaultSettings() Settings {
	return Settings{
		ToleranceDifficulty: DefaultToleranceDifficulty,
		ToleranceRank:       DefaultToleranceRank,
	}
}
