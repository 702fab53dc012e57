// Package posts implements POSTS (Partially Observable Sampling Tree
// Search): one Thompson Sampling bandit per search-horizon depth,
// shared across every simulated trajectory in a SelectAction call,
// with a flat (non-tree) rollout.
package posts

import (
	"github.com/samuelfneumann/pomdpsearch/bandit"
	"github.com/samuelfneumann/pomdpsearch/mctsbase"
	"github.com/samuelfneumann/pomdpsearch/rng"
)

// Config is POSTS's planner-visible parameter set (spec.md §6).
type Config struct {
	MaxDepth       int
	NumSimulations int
	BetaPrior      float64 // Thompson Sampling's Normal-Gamma rate prior β0
}

// Posts is the POSTS planner.
type Posts struct {
	cfg Config
	sim mctsbase.Simulator
	mb  mctsbase.Base

	bandits []*bandit.ThompsonBandit

	// currentIndex rotates which depth-0 bandit is used across real
	// environment steps. Per spec.md §9, this field is never advanced
	// by SelectAction itself -- the caller (the experiment harness, one
	// real environment step at a time) owns incrementing it, the same
	// way experiment.Online owns step counting rather than the agent.
	currentIndex int

	legalBuf []int
}

// New constructs a POSTS planner driving sim through mb.
func New(sim mctsbase.Simulator, mb mctsbase.Base, cfg Config, src rng.Source) *Posts {
	k := sim.NumActions()
	bandits := make([]*bandit.ThompsonBandit, cfg.MaxDepth)
	for i := range bandits {
		// rewardBufferSize=0, updateDelay=1 per spec.md §4.F.
		bandits[i] = bandit.NewThompson(k, 0, 1, cfg.BetaPrior, src)
	}
	return &Posts{
		cfg:      cfg,
		sim:      sim,
		mb:       mb,
		bandits:  bandits,
		legalBuf: make([]int, 0, k),
	}
}

// CurrentIndex returns the depth-rotation index. Exposed so the
// calling experiment harness can read and advance it between real
// environment steps.
func (p *Posts) CurrentIndex() int {
	return p.currentIndex
}

// SetCurrentIndex sets the depth-rotation index. The planner never
// calls this itself (spec.md §9).
func (p *Posts) SetCurrentIndex(i int) {
	p.currentIndex = i
}

// SelectAction implements search.Planner.
func (p *Posts) SelectAction() int {
	for _, b := range p.bandits {
		b.Reset()
	}
	p.rollout()
	return p.mb.GreedyUCB(p.mb.Root(), false)
}

func (p *Posts) rollout() {
	for i := 0; i < p.cfg.NumSimulations; i++ {
		p.simulateOnce()
	}
}

func (p *Posts) simulateOnce() {
	hist := p.mb.History()
	historyDepth := hist.Size()

	state := p.mb.Root().Beliefs().CreateSample()
	status := *p.mb.Status()

	p.legalBuf = p.sim.GenerateActionSpace(state, hist, p.legalBuf, status, false)
	banditIdx := p.currentIndex % p.cfg.MaxDepth
	action := p.bandits[banditIdx].SampleFrom(p.legalBuf)

	obs, reward, terminal := p.sim.Step(state, action)

	// The vnode child lattice is only grown past a non-terminal
	// transition, but -- matching planner.cpp's POSTS::Rollout, which
	// recurses into the depth-1 Rollout unconditionally regardless of
	// the depth-0 terminal flag -- history is appended and the inner
	// rollout runs either way.
	if !terminal {
		root := p.mb.Root()
		actionNode := root.Child(action)
		if actionNode.Child(obs) == nil {
			child := p.mb.ExpandNode(state)
			p.mb.AddSample(child, state)
			actionNode.SetChild(obs, child)
		}
	}
	hist.Append(action, obs)
	delayed := p.innerRollout(state, status, 1)

	total := reward + p.sim.Discount()*delayed
	p.mb.Root().Child(action).Update(total)
	p.bandits[banditIdx].Update(total)

	p.sim.FreeState(state)
	hist.TruncateTo(historyDepth)
}

func (p *Posts) innerRollout(state mctsbase.State, status mctsbase.Status, t int) float64 {
	if t >= p.cfg.MaxDepth {
		return 0
	}

	hist := p.mb.History()
	p.legalBuf = p.sim.GenerateActionSpace(state, hist, p.legalBuf, status, true)
	banditIdx := (p.currentIndex + t) % p.cfg.MaxDepth
	action := p.bandits[banditIdx].SampleFrom(p.legalBuf)

	_, reward, terminal := p.sim.Step(state, action)
	if terminal {
		p.bandits[banditIdx].Update(reward)
		return reward
	}

	successor := p.innerRollout(state, status, t+1)
	ret := reward + p.sim.Discount()*successor
	p.bandits[banditIdx].Update(ret)
	return ret
}
