package achievements

import (
	"time"

	"github.com/trophyroom/backend/pkg/steam"
)

// Descriptor is the merged, client-facing view of one achievement: schema
// details joined with global rarity and, when a player is known, that
// player's completion record. The vendor-reported Achieved flag is distinct
// from any manual completion state the browser keeps locally; the two are
// never merged.
type Descriptor struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	IconGray    string     `json:"iconGray"`
	Hidden      bool       `json:"hidden"`
	Percentage  *float64   `json:"percentage,omitempty"`
	Rarity      Rarity     `json:"rarity"`
	Achieved    bool       `json:"achieved"`
	UnlockTime  *time.Time `json:"unlockTime,omitempty"`
}

const missingDescription = "No description available."

// Merge left-joins the schema with the player's completion records by
// api-name. Every schema entry appears exactly once; entries with no player
// record default to achieved=false with no unlock time.
func Merge(schema []steam.SchemaAchievement, percentages map[string]float64, player []steam.PlayerAchievement) []Descriptor {
	byName := make(map[string]steam.PlayerAchievement, len(player))
	for _, record := range player {
		byName[record.APIName] = record
	}

	merged := make([]Descriptor, 0, len(schema))
	for _, ach := range schema {
		var percent *float64
		if p, ok := percentages[ach.APIName]; ok {
			percent = &p
		}

		descriptor := Descriptor{
			ID:          ach.APIName,
			Name:        ach.DisplayName,
			Description: ach.Description,
			Icon:        ach.Icon,
			IconGray:    ach.IconGray,
			Hidden:      ach.Hidden,
			Percentage:  percent,
			Rarity:      Classify(percent),
		}
		if descriptor.Description == "" {
			descriptor.Description = missingDescription
		}
		if record, ok := byName[ach.APIName]; ok {
			descriptor.Achieved = record.Achieved
			descriptor.UnlockTime = record.UnlockTime
		}
		merged = append(merged, descriptor)
	}
	return merged
}
