package fans

// Tier is one step of the fan loyalty ladder. Tiers are ordered by
// MinInteractions; a fan's tier is the highest one whose threshold their
// total interaction count has reached.
type Tier struct {
	Name               string
	MinInteractions    int64
	PriorityMultiplier float64
}

// Tiers is the ladder, lowest first. The top tier saturates: once reached it
// is kept forever.
var Tiers = []Tier{
	{Name: "new", MinInteractions: 0, PriorityMultiplier: 1},
	{Name: "active", MinInteractions: 10, PriorityMultiplier: 1.5},
	{Name: "loyal", MinInteractions: 50, PriorityMultiplier: 2},
	{Name: "superfan", MinInteractions: 200, PriorityMultiplier: 3},
	{Name: "diehard", MinInteractions: 500, PriorityMultiplier: 4},
}

// Lowest is the tier every fan starts at.
func Lowest() Tier {
	return Tiers[0]
}

// TierFor returns the highest tier whose threshold is at or below total.
func TierFor(total int64) Tier {
	current := Tiers[0]
	for _, t := range Tiers {
		if total >= t.MinInteractions {
			current = t
		}
	}
	return current
}

// TierByName looks a tier up by name; ok is false for unknown names.
func TierByName(name string) (Tier, bool) {
	for _, t := range Tiers {
		if t.Name == name {
			return t, true
		}
	}
	return Tier{}, false
}

// NextThreshold returns the interaction count needed for the next tier after
// total, or 0 if the fan has saturated the ladder.
func NextThreshold(total int64) int64 {
	for _, t := range Tiers {
		if t.MinInteractions > total {
			return t.MinInteractions
		}
	}
	return 0
}
