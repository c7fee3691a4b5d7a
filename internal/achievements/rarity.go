package achievements

// Rarity buckets a global unlock percentage into a coarse tier.
type Rarity string

const (
	RarityMythic    Rarity = "mythic"
	RarityLegendary Rarity = "legendary"
	RarityEpic      Rarity = "epic"
	RarityRare      Rarity = "rare"
	RarityUncommon  Rarity = "uncommon"
	RarityCommon    Rarity = "common"
)

// Classify maps a global unlock percentage to its rarity tier. The table is
// fixed: <5 mythic, <10 legendary, <20 epic, <40 rare, <70 uncommon, else
// common. A missing percentage defaults to common.
func Classify(percent *float64) Rarity {
	if percent == nil {
		return RarityCommon
	}
	switch p := *percent; {
	case p < 5:
		return RarityMythic
	case p < 10:
		return RarityLegendary
	case p < 20:
		return RarityEpic
	case p < 40:
		return RarityRare
	case p < 70:
		return RarityUncommon
	default:
		return RarityCommon
	}
}
