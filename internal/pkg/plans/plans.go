package plans

import "strings"

type Plan string

const (
	PlanFree            Plan = "free"
	PlanEssential       Plan = "essential"
	PlanEssentialYearly Plan = "essential_yearly"
	PlanPro             Plan = "pro"
	PlanProYearly       Plan = "pro_yearly"
	PlanElite           Plan = "elite"
)

// Quota is the plan-derived resource limit set. It is computed per request,
// never stored.
type Quota struct {
	MaxDomains int
	MaxPages   int
}

// quotaByTier is keyed by base tier; yearly variants share their base tier
// limits. Kept as a table so limits stay testable as data.
var quotaByTier = map[Plan]Quota{
	PlanFree:      {MaxDomains: 0, MaxPages: 1},
	PlanEssential: {MaxDomains: 0, MaxPages: 3},
	PlanPro:       {MaxDomains: 3, MaxPages: 20},
	PlanElite:     {MaxDomains: 10, MaxPages: 100},
}

// QuotaFor returns the quota for a plan. Unknown plans fall back to the free
// tier limits.
func QuotaFor(plan string) Quota {
	if q, ok := quotaByTier[BaseTier(plan)]; ok {
		return q
	}
	return quotaByTier[PlanFree]
}

// BaseTier strips a yearly suffix and normalizes the plan name.
func BaseTier(plan string) Plan {
	p := strings.ToLower(strings.TrimSpace(plan))
	p = strings.TrimSuffix(p, "_yearly")
	switch Plan(p) {
	case PlanEssential, PlanPro, PlanElite:
		return Plan(p)
	default:
		return PlanFree
	}
}

// DomainEntitled reports whether a plan may attach custom domains. Only the
// top two tiers are entitled.
func DomainEntitled(plan string) bool {
	switch BaseTier(plan) {
	case PlanPro, PlanElite:
		return true
	default:
		return false
	}
}

// WithInterval combines a base tier with a billing interval into the final
// plan tag. Yearly billing appends the yearly suffix where a yearly variant
// exists; elite has a single tag regardless of interval.
func WithInterval(tier string, interval string) string {
	base := BaseTier(tier)
	if strings.ToLower(strings.TrimSpace(interval)) != "year" {
		return string(base)
	}
	switch base {
	case PlanEssential:
		return string(PlanEssentialYearly)
	case PlanPro:
		return string(PlanProYearly)
	default:
		return string(base)
	}
}

// Valid reports whether the plan tag is one of the known tiers.
func Valid(plan string) bool {
	switch Plan(strings.ToLower(strings.TrimSpace(plan))) {
	case PlanFree, PlanEssential, PlanEssentialYearly, PlanPro, PlanProYearly, PlanElite:
		return true
	default:
		return false
	}
}
