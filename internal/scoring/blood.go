package scoring

// BloodSlot identifies which of the first three solves a team holds.
type BloodSlot int

const (
	BloodNone BloodSlot = iota
	BloodFirst
	BloodSecond
	BloodThird
)

func (s BloodSlot) String() string {
	switch s {
	case BloodFirst:
		return "first"
	case BloodSecond:
		return "second"
	case BloodThird:
		return "third"
	default:
		return "none"
	}
}

// BloodFactors are the multipliers applied to the first three eligible
// solves of a challenge. Each factor is at least 1.0.
type BloodFactors struct {
	First  float64
	Second float64
	Third  float64
}

// DefaultBloodFactors mirror the platform configuration defaults.
var DefaultBloodFactors = BloodFactors{First: 2.0, Second: 1.5, Third: 1.25}

func (f BloodFactors) multiplier(slot BloodSlot) float64 {
	switch slot {
	case BloodFirst:
		return f.First
	case BloodSecond:
		return f.Second
	case BloodThird:
		return f.Third
	default:
		return 1.0
	}
}

// BloodBonus is the slot and multiplier a team earned on one challenge.
type BloodBonus struct {
	Slot       BloodSlot
	Multiplier float64
}

// AssignBlood walks a challenge's solves in chronological order and hands out
// at most three slots. A team whose effective permissions lack GetBlood or
// GetScore cannot occupy a slot; the slot goes to the next eligible team
// instead. Solves must already be deduplicated per team and stably sorted.
// The result maps team id to its bonus; teams without a slot are absent.
func AssignBlood(c *Challenge, solves []Submission, resolver *Resolver, factors BloodFactors) map[string]BloodBonus {
	bonuses := make(map[string]BloodBonus)
	if c.DisableBloodBonus {
		return bonuses
	}

	slot := BloodFirst
	for i := range solves {
		if slot > BloodThird {
			break
		}
		perm := resolver.Resolve(solves[i].TeamID, c.ID)
		if !perm.Has(PermGetBlood) || !perm.Has(PermGetScore) {
			continue
		}
		bonuses[solves[i].TeamID] = BloodBonus{
			Slot:       slot,
			Multiplier: factors.multiplier(slot),
		}
		slot++
	}
	return bonuses
}
