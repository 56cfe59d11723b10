package domain

const gib = 1024 * 1024 * 1024

// PlanID enumerates subscription tiers.
type PlanID string

const (
	PlanFree     PlanID = "free"
	PlanBasic    PlanID = "basic"
	PlanPro      PlanID = "pro"
	PlanUltraPro PlanID = "ultraPro"
)

// Limit is a resource ceiling. Unbounded means no ceiling applies.
type Limit int64

// Unbounded marks a limit that never denies.
const Unbounded Limit = -1

// Bounded reports whether the limit carries a finite ceiling.
func (l Limit) Bounded() bool {
	return l != Unbounded
}

// Allows reports whether a total of n stays within the limit.
func (l Limit) Allows(n int64) bool {
	return !l.Bounded() || n <= int64(l)
}

// Limits holds the entitlement ceilings attached to a plan.
type Limits struct {
	MaxDocuments         Limit
	MaxStorageBytes      Limit
	MaxAIRecommendations Limit
	CanDeleteDocuments   bool
}

// Plan is a subscription tier. The catalog is fixed at process start and
// shared read-only; plans are referenced by id, never copied onto users.
type Plan struct {
	ID           PlanID
	DisplayName  string
	PriceIDR     int64
	PriceUSDCent int64
	Features     []string
	Limits       Limits
}

var planCatalog = []Plan{
	{
		ID:          PlanFree,
		DisplayName: "Free",
		Features: []string{
			"Upload up to 3 documents",
			"Basic reading tracking",
			"Limited progress analytics",
			"1GB storage",
		},
		Limits: Limits{
			MaxDocuments:         3,
			MaxStorageBytes:      1 * gib,
			MaxAIRecommendations: 0,
			CanDeleteDocuments:   false,
		},
	},
	{
		ID:           PlanBasic,
		DisplayName:  "Basic",
		PriceIDR:     500,
		PriceUSDCent: 385,
		Features: []string{
			"Upload up to 15 documents",
			"Basic reading analytics",
			"Standard book recommendations",
			"Basic progress tracking",
			"5GB storage",
			"Email support",
		},
		Limits: Limits{
			MaxDocuments:         15,
			MaxStorageBytes:      5 * gib,
			MaxAIRecommendations: 5,
			CanDeleteDocuments:   false,
		},
	},
	{
		ID:           PlanPro,
		DisplayName:  "Pro",
		PriceIDR:     850,
		PriceUSDCent: 655,
		Features: []string{
			"Upload up to 50 documents",
			"Advanced AI analytics",
			"Premium book recommendations",
			"Ambient music suggestions",
			"Advanced progress tracking",
			"Document deletion",
			"Priority support",
			"25GB storage",
		},
		Limits: Limits{
			MaxDocuments:         50,
			MaxStorageBytes:      25 * gib,
			MaxAIRecommendations: 25,
			CanDeleteDocuments:   true,
		},
	},
	{
		ID:           PlanUltraPro,
		DisplayName:  "Ultra Pro",
		PriceIDR:     1200,
		PriceUSDCent: 925,
		Features: []string{
			"Unlimited document uploads",
			"Advanced AI insights & predictions",
			"Personalized learning paths",
			"Premium music library",
			"Real-time collaboration",
			"Document deletion & management",
			"API access",
			"Unlimited storage",
			"24/7 priority support",
		},
		Limits: Limits{
			MaxDocuments:         Unbounded,
			MaxStorageBytes:      Unbounded,
			MaxAIRecommendations: Unbounded,
			CanDeleteDocuments:   true,
		},
	},
}

// Plans returns the catalog ordered from the cheapest tier upward.
func Plans() []Plan {
	out := make([]Plan, len(planCatalog))
	copy(out, planCatalog)
	return out
}

// PlanByID resolves a plan from the catalog.
func PlanByID(id PlanID) (Plan, error) {
	for _, p := range planCatalog {
		if p.ID == id {
			return p, nil
		}
	}
	return Plan{}, ErrUnknownPlan
}
