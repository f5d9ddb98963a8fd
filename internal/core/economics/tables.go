package economics

// Maxout is the cap a role may accrue relative to its invested amount. When
// Unlimited is set the factor is ignored and no cap applies.
type Maxout struct {
	Factor    float64
	Unlimited bool
}

// Tables is the versioned configuration driving every table-driven function
// in this package. The tables are data, not code: role vocabularies have
// drifted before, and new roles must be deployable without touching the
// engine. Roles missing from a table fall back to the neutral 1.0.
type Tables struct {
	Version     string
	Multipliers map[string]float64
	Maxouts     map[string]Maxout
}

// DefaultTables is the currently shipped table set. It consolidates the
// previously divergent role vocabularies into one version.
var DefaultTables = Tables{
	Version: "2026-02",
	Multipliers: map[string]float64{
		"founder":     3.0,
		"angel":       2.5,
		"vip":         2.0,
		"shareholder": 1.5,
		"staff":       1.2,
		"customer":    1.0,
	},
	Maxouts: map[string]Maxout{
		"founder":     {Unlimited: true},
		"angel":       {Factor: 3.0},
		"vip":         {Factor: 2.5},
		"shareholder": {Factor: 2.0},
		"customer":    {Factor: 1.0},
	},
}

// Multiplier returns the share multiplier for a role, 1.0 when unknown.
// Unknown roles are never rejected at this layer.
func (t Tables) Multiplier(role string) float64 {
	if m, ok := t.Multipliers[role]; ok {
		return m
	}
	return 1.0
}

// MaxoutLimit returns the maxout limit for a role, factor 1.0 when unknown.
func (t Tables) MaxoutLimit(role string) Maxout {
	if m, ok := t.Maxouts[role]; ok {
		return m
	}
	return Maxout{Factor: 1.0}
}
