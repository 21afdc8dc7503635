package models

// Tier is one band of the quality scale. Lower scores are better.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierAverage   Tier = "average"
	TierPoor      Tier = "poor"
	TierBad       Tier = "bad"
	TierTerrible  Tier = "terrible"
	TierHorrible  Tier = "horrible"
	TierDisaster  Tier = "disaster"
	TierNuclear   Tier = "nuclear"
	TierLegendary Tier = "legendary"
	TierUltimate  Tier = "ultimate"
)

type tierBand struct {
	Min  float64
	Max  float64
	Tier Tier
}

// tierTable maps half-open score bands [Min, Max) to tiers. Scores at or
// above the last boundary fall through to TierUltimate.
var tierTable = []tierBand{
	{0, 5, TierExcellent},
	{5, 15, TierGood},
	{15, 25, TierAverage},
	{25, 40, TierPoor},
	{40, 55, TierBad},
	{55, 65, TierTerrible},
	{65, 75, TierHorrible},
	{75, 85, TierDisaster},
	{85, 95, TierNuclear},
	{95, 100, TierLegendary},
}

// TierForScore maps a 0-100 composite score to its tier.
func TierForScore(score float64) Tier {
	for _, band := range tierTable {
		if score >= band.Min && score < band.Max {
			return band.Tier
		}
	}
	return TierUltimate
}

var tierLabels = map[Tier]string{
	TierExcellent: "Fresh and clean",
	TierGood:      "Faint whiff",
	TierAverage:   "Mildly musty",
	TierPoor:      "Pungent",
	TierBad:       "Rank",
	TierTerrible:  "Festering",
	TierHorrible:  "Putrid",
	TierDisaster:  "Code charnel house",
	TierNuclear:   "Biohazard",
	TierLegendary: "Ancestral rot",
	TierUltimate:  "Terminal",
}

// Label returns the human-readable description of the tier.
func (t Tier) Label() string {
	if l, ok := tierLabels[t]; ok {
		return l
	}
	return string(t)
}
