package utils

// BonusTier maps a goal attainment range [MinAttainment, MaxAttainment) to the
// multiplier applied over a member's variable target.
type BonusTier struct {
	Label         string  `json:"label" bson:"label" yaml:"label"`
	MinAttainment float64 `json:"min_attainment" bson:"min_attainment" yaml:"min_attainment"`
	MaxAttainment float64 `json:"max_attainment" bson:"max_attainment" yaml:"max_attainment"`
	Multiplier    float64 `json:"multiplier" bson:"multiplier" yaml:"multiplier"`
}

// MaxAttainment of 0 means unbounded.
var DefaultBonusTiers = []BonusTier{
	{Label: "abaixo", MinAttainment: 0, MaxAttainment: 0.7, Multiplier: 0},
	{Label: "parcial", MinAttainment: 0.7, MaxAttainment: 1.0, Multiplier: 0.5},
	{Label: "meta", MinAttainment: 1.0, MaxAttainment: 1.2, Multiplier: 1.0},
	{Label: "supermeta", MinAttainment: 1.2, MaxAttainment: 1.5, Multiplier: 1.5},
	{Label: "hipermeta", MinAttainment: 1.5, MaxAttainment: 0, Multiplier: 2.0},
}

func CalculateBonusTier(attainment float64, tiers []BonusTier) (BonusTier, bool) {
	for _, tier := range tiers {
		if attainment < tier.MinAttainment {
			continue
		}
		if tier.MaxAttainment != 0 && attainment >= tier.MaxAttainment {
			continue
		}
		return tier, true
	}
	return BonusTier{}, false
}
