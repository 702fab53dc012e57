// Package spec declares a Config/Type registry for the three search
// planners, mirroring the teacher's agent.Config/agent.RegisteredTypes
// pattern: a planner can be constructed purely from a declarative
// Config plus a Type tag, without the caller importing posts/poolts/
// symbol directly.
package spec

import (
	"fmt"

	"github.com/samuelfneumann/pomdpsearch/bandit"
	"github.com/samuelfneumann/pomdpsearch/mctsbase"
	"github.com/samuelfneumann/pomdpsearch/rng"
	"github.com/samuelfneumann/pomdpsearch/search"
	"github.com/samuelfneumann/pomdpsearch/search/poolts"
	"github.com/samuelfneumann/pomdpsearch/search/posts"
	"github.com/samuelfneumann/pomdpsearch/search/symbol"
)

// Type names a planner variant.
type Type string

const (
	POSTS  Type = "POSTS"
	POOLTS Type = "POOLTS"
	SYMBOL Type = "SYMBOL"
)

// Config is the planner-visible parameter set shared across all three
// variants (spec.md §6), plus the Type tag selecting which one to
// build. Fields not relevant to a given Type are ignored.
type Config struct {
	Type Type

	MaxDepth       int
	NumSimulations int

	// BanditBetaPrior is Thompson Sampling's Normal-Gamma rate prior
	// β0, used by all three variants: POSTS and SYMBOL's per-depth
	// bandits, and POOLTS's per-node bandit.
	BanditBetaPrior float64

	// BanditArmCapacity is the Arm convergence-window length. Only
	// SYMBOL's per-depth bandits consult HasConverged, so this only
	// affects SYMBOL.
	BanditArmCapacity int

	// BanditConvergenceEpsilon gates SYMBOL's credit propagation.
	BanditConvergenceEpsilon float64
}

// Validate reports whether c is a well-formed Config for its Type.
func (c Config) Validate() error {
	if c.MaxDepth <= 0 {
		return &search.ConfigError{Field: "MaxDepth", Err: search.ErrNotPositive}
	}
	if c.NumSimulations <= 0 {
		return &search.ConfigError{Field: "NumSimulations", Err: search.ErrNotPositive}
	}

	switch c.Type {
	case POSTS, SYMBOL, POOLTS:
		if c.BanditBetaPrior <= 0 {
			return &search.ConfigError{Field: "BanditBetaPrior", Err: search.ErrNotPositive}
		}
	default:
		return &search.ConfigError{Field: "Type", Err: fmt.Errorf("unknown type %q", c.Type)}
	}

	if c.Type == SYMBOL && c.BanditArmCapacity <= 0 {
		return &search.ConfigError{Field: "BanditArmCapacity", Err: search.ErrNotPositive}
	}

	return nil
}

// CreateSearch builds the planner named by c.Type, wiring it to sim
// and base, mirroring agent.Config.CreateAgent in the teacher.
func (c Config) CreateSearch(sim mctsbase.Simulator, base mctsbase.Base, src rng.Source) (search.Planner, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	switch c.Type {
	case POSTS:
		return posts.New(sim, base, posts.Config{
			MaxDepth:       c.MaxDepth,
			NumSimulations: c.NumSimulations,
			BetaPrior:      c.BanditBetaPrior,
		}, src), nil

	case SYMBOL:
		return symbol.New(sim, base, symbol.Config{
			MaxDepth:           c.MaxDepth,
			NumSimulations:     c.NumSimulations,
			BetaPrior:          c.BanditBetaPrior,
			ArmCapacity:        c.BanditArmCapacity,
			ConvergenceEpsilon: c.BanditConvergenceEpsilon,
		}, src), nil

	case POOLTS:
		factory := c.nodeBanditFactory(sim.NumActions(), src)
		return poolts.New(sim, base, poolts.Config{
			MaxDepth:       c.MaxDepth,
			NumSimulations: c.NumSimulations,
		}, factory), nil

	default:
		return nil, &search.ConfigError{Field: "Type", Err: fmt.Errorf("unknown type %q", c.Type)}
	}
}

// nodeBanditFactory returns the per-node bandit constructor POOLTS
// uses to populate newly expanded nodes. The reference design's
// POOLTSNode constructor hardcodes its bandit to Thompson Sampling
// (planner.h's POOLTSNode(...): bandit(new ThompsonSampling(numberOfActions,
// 0, 1, params.BanditBetaPrior))) -- this is not a pluggable
// planner-configuration choice, so this factory does the same.
func (c Config) nodeBanditFactory(k int, src rng.Source) func() bandit.Bandit {
	return func() bandit.Bandit {
		return bandit.NewThompson(k, 0, 1, c.BanditBetaPrior, src)
	}
}
