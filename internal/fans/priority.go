package fans

import "fanpulse/internal/core"

const (
	priorityBase    = 10
	tierBonusWeight = 20
)

// PriorityScore combines a comment's base score with the commenter's fan tier
// bonus and subscription boost. A fan with no status yet gets no tier bonus at
// all; the bonus starts once the first interaction creates their record.
func PriorityScore(tierName string, hasTier bool, level core.SubscriptionLevel) float64 {
	score := float64(priorityBase)

	if hasTier {
		if tier, ok := TierByName(tierName); ok {
			score += tier.PriorityMultiplier * tierBonusWeight
		}
	}

	return score + level.PriorityBoost()
}
