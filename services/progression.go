package services

import (
	"unsan-academy/models"
)

// tierThreshold pairs a tier label with the minimum XP required to hold it.
type tierThreshold struct {
	Tier  string
	MinXP int
}

// TierThresholds is the fixed progression table, lowest tier first.
var TierThresholds = []tierThreshold{
	{models.TierUnranked, 0},
	{models.TierBronze, 100},
	{models.TierSilver, 300},
	{models.TierGold, 600},
	{models.TierPlatinum, 1000},
	{models.TierDiamond, 1500},
}

// TierForXP returns the highest tier whose minimum is <= xp. Pure and
// deterministic; callers recompute the tier after every XP change instead of
// mutating it independently.
func TierForXP(xp int) string {
	tier := TierThresholds[0].Tier
	for _, t := range TierThresholds {
		if xp >= t.MinXP {
			tier = t.Tier
		}
	}
	return tier
}
