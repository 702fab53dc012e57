// Package symbol implements SYMBOL: a POSTS-shaped planner with a
// convergence-gated update schedule. Deeper depth bandits only
// receive credit once every shallower bandit in the chain has
// empirically converged, so the effective planning horizon grows on
// its own as the shallow bandits settle.
package symbol

import (
	"github.com/samuelfneumann/pomdpsearch/bandit"
	"github.com/samuelfneumann/pomdpsearch/mctsbase"
	"github.com/samuelfneumann/pomdpsearch/rng"
)

// Config is SYMBOL's planner-visible parameter set (spec.md §6).
type Config struct {
	MaxDepth           int
	NumSimulations     int
	BetaPrior          float64 // Thompson Sampling's Normal-Gamma rate prior β0
	ArmCapacity        int     // Arm convergence-window length
	ConvergenceEpsilon float64
}

// Symbol is the SYMBOL planner.
type Symbol struct {
	cfg Config
	sim mctsbase.Simulator
	mb  mctsbase.Base

	bandits []*bandit.ThompsonBandit
	rewards []float64

	// maxNumberOfBandits is the high-water mark, across every
	// simulation within the current SelectAction call, of how many
	// depth bandits received credit in a single trajectory.
	maxNumberOfBandits int

	legalBuf []int
}

// New constructs a SYMBOL planner driving sim through mb.
func New(sim mctsbase.Simulator, mb mctsbase.Base, cfg Config, src rng.Source) *Symbol {
	k := sim.NumActions()
	bandits := make([]*bandit.ThompsonBandit, cfg.MaxDepth)
	for i := range bandits {
		bandits[i] = bandit.NewThompson(k, cfg.ArmCapacity, 1, cfg.BetaPrior, src)
	}
	return &Symbol{
		cfg:      cfg,
		sim:      sim,
		mb:       mb,
		bandits:  bandits,
		rewards:  make([]float64, cfg.MaxDepth),
		legalBuf: make([]int, 0, k),
	}
}

// MaxNumberOfBandits returns the high-water mark of bandits credited
// in a single trajectory, as of the most recent SelectAction call.
func (s *Symbol) MaxNumberOfBandits() int {
	return s.maxNumberOfBandits
}

// SelectAction implements search.Planner.
func (s *Symbol) SelectAction() int {
	for _, b := range s.bandits {
		b.Reset()
	}
	s.maxNumberOfBandits = 0

	for i := 0; i < s.cfg.NumSimulations; i++ {
		s.simulateOnce()
	}

	return s.mb.GreedyUCB(s.mb.Root(), false)
}

func (s *Symbol) simulateOnce() {
	hist := s.mb.History()
	historyDepth := hist.Size()

	state := s.mb.Root().Beliefs().CreateSample()
	status := *s.mb.Status()

	s.legalBuf = s.sim.GenerateActionSpace(state, hist, s.legalBuf, status, false)
	rootAction := s.bandits[0].SampleFrom(s.legalBuf)

	obs, reward, terminal := s.sim.Step(state, rootAction)
	s.rewards[0] = reward
	stepCount := 1

	if !terminal {
		root := s.mb.Root()
		actionNode := root.Child(rootAction)
		if actionNode.Child(obs) == nil {
			child := s.mb.ExpandNode(state)
			s.mb.AddSample(child, state)
			actionNode.SetChild(obs, child)
		}
		hist.Append(rootAction, obs)

		for t := 1; t < s.cfg.MaxDepth && !terminal; t++ {
			s.legalBuf = s.sim.GenerateActionSpace(state, hist, s.legalBuf, status, true)
			action := s.bandits[t].SampleFrom(s.legalBuf)

			_, stepReward, stepTerminal := s.sim.Step(state, action)
			s.rewards[stepCount] = stepReward
			stepCount++
			terminal = stepTerminal
		}
	}

	discount := s.sim.Discount()
	for t := stepCount - 2; t >= 0; t-- {
		s.rewards[t] += discount * s.rewards[t+1]
	}

	s.mb.Root().Child(rootAction).Update(s.rewards[0])
	s.bandits[0].Update(s.rewards[0])
	credited := 1

	for t := 1; t < stepCount; t++ {
		if !s.bandits[t-1].HasConverged(s.cfg.ConvergenceEpsilon) {
			break
		}
		s.bandits[t].Update(s.rewards[t])
		credited++
	}
	if credited > s.maxNumberOfBandits {
		s.maxNumberOfBandits = credited
	}

	s.sim.FreeState(state)
	hist.TruncateTo(historyDepth)
}
