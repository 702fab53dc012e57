package bandit

import (
	"fmt"

	"github.com/samuelfneumann/pomdpsearch/rng"
)

// Params bundles every per-variant hyperparameter a Bandit
// constructor might need. Unused fields for a given Type are ignored,
// mirroring envconfig.Config's switch-based construction in the
// teacher's environment configuration package.
type Params struct {
	K           int     // number of arms
	ArmCapacity int     // Arm convergence-window length
	Epsilon     float64 // EGreedy only
	C           float64 // UCB1 only
	UpdateDelay int     // Thompson only
	Beta0       float64 // Thompson only: Normal-Gamma prior rate
}

// Create constructs a Bandit of the given Type from Params, seeded
// from src.
func Create(t Type, p Params, src rng.Source) Bandit {
	switch t {
	case Random:
		return NewRandom(p.K, p.ArmCapacity, src)
	case EGreedy:
		return NewEGreedy(p.K, p.ArmCapacity, p.Epsilon, src)
	case UCB1:
		return NewUCB1(p.K, p.ArmCapacity, p.C, src)
	case Thompson:
		return NewThompson(p.K, p.ArmCapacity, p.UpdateDelay, p.Beta0, src)
	default:
		panic(fmt.Sprintf("bandit: unknown type %q", t))
	}
}
