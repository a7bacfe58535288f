package registry

import "strings"

// Tier is a CoinMarketCap subscription plan. Higher tiers unlock strictly
// more tools.
type Tier int

// Subscription plans in order of increasing access.
const (
	Basic Tier = iota
	Hobbyist
	Startup
	Standard
	Professional
	Enterprise
)

var tierNames = [...]string{
	Basic:        "Basic",
	Hobbyist:     "Hobbyist",
	Startup:      "Startup",
	Standard:     "Standard",
	Professional: "Professional",
	Enterprise:   "Enterprise",
}

// String returns the plan name as CoinMarketCap spells it.
func (t Tier) String() string {
	if !t.Valid() {
		return "Unknown"
	}
	return tierNames[t]
}

// Valid reports whether t is one of the known plans.
func (t Tier) Valid() bool {
	return t >= Basic && t <= Enterprise
}

// Allows reports whether a process configured at t may expose a tool that
// requires the given plan.
func (t Tier) Allows(required Tier) bool {
	return required <= t
}

// ParseTier matches a plan name case-insensitively. Unknown or empty names
// resolve to Basic with ok=false so callers fail closed to minimal access.
func ParseTier(name string) (Tier, bool) {
	name = strings.TrimSpace(name)
	for i, n := range tierNames {
		if strings.EqualFold(n, name) {
			return Tier(i), true
		}
	}
	return Basic, false
}

// Tiers returns every plan in ascending order.
func Tiers() []Tier {
	return []Tier{Basic, Hobbyist, Startup, Standard, Professional, Enterprise}
}
