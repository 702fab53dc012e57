// Package poolts implements POOLTS: a search tree in which every node
// owns its own bandit, with nodes recycled through a free-list pool
// to avoid allocation churn across planning calls.
package poolts

import (
	"github.com/samuelfneumann/pomdpsearch/bandit"
	"github.com/samuelfneumann/pomdpsearch/mctsbase"
)

// Config is POOLTS's planner-visible parameter set (spec.md §6).
type Config struct {
	MaxDepth       int
	NumSimulations int
}

// Poolts is the POOLTS planner.
type Poolts struct {
	cfg     Config
	sim     mctsbase.Simulator
	mb      mctsbase.Base
	pool    *Pool
	factory func() bandit.Bandit

	rootNode *node

	treeDepth, peakTreeDepth int
	legalBuf                 []int
}

// New constructs a POOLTS planner driving sim through mb. factory
// constructs the per-node bandit; the reference design hardcodes this
// to Thompson Sampling (planner.h's POOLTSNode constructor), so
// callers are expected to pass a factory returning bandit.NewThompson
// rather than a pluggable variant.
func New(sim mctsbase.Simulator, mb mctsbase.Base, cfg Config, factory func() bandit.Bandit) *Poolts {
	return &Poolts{
		cfg:      cfg,
		sim:      sim,
		mb:       mb,
		pool:     NewPool(),
		factory:  factory,
		rootNode: newNode(factory),
		legalBuf: make([]int, 0, sim.NumActions()),
	}
}

// Pool exposes the node free-list, mainly so tests can assert its
// closure invariants (spec.md §8 Testable Property #7).
func (p *Poolts) Pool() *Pool {
	return p.pool
}

// PeakTreeDepth returns the deepest TreeDepth reached across every
// simulation run so far.
func (p *Poolts) PeakTreeDepth() int {
	return p.peakTreeDepth
}

// SelectAction implements search.Planner.
func (p *Poolts) SelectAction() int {
	p.treeSearch()

	action := p.rootNode.bandit.Play()
	p.rootNode.saveToPool(p.pool)
	p.rootNode = p.pool.pop(p.factory)

	return action
}

func (p *Poolts) treeSearch() {
	for i := 0; i < p.cfg.NumSimulations; i++ {
		hist := p.mb.History()
		historyDepth := hist.Size()

		state := p.mb.Root().Beliefs().CreateSample()
		status := p.mb.Status()
		status.Phase = mctsbase.PhaseTree

		p.treeDepth = 0
		p.simulate(state, p.rootNode, 0)

		p.sim.FreeState(state)
		hist.TruncateTo(historyDepth)
	}
}

// simulate runs one simulated step at depth t from node, returning
// the discounted return accumulated from this point on.
func (p *Poolts) simulate(state mctsbase.State, n *node, t int) float64 {
	hist := p.mb.History()
	p.legalBuf = p.sim.GenerateActionSpace(state, hist, p.legalBuf, *p.mb.Status(), t > 0)
	action := n.bandit.SampleFrom(p.legalBuf)

	if t >= p.cfg.MaxDepth {
		return 0
	}

	wasLeaf := n.isLeaf
	if wasLeaf {
		n.expand(p.sim.NumActions())
	}

	obs, reward, terminal := p.sim.Step(state, action)

	if t == 0 {
		p.mirrorRootExpansion(action, obs, state)
	}

	if terminal {
		n.bandit.Update(reward)
		return reward
	}

	hist.Append(action, obs)
	p.treeDepth++
	if p.treeDepth > p.peakTreeDepth {
		p.peakTreeDepth = p.treeDepth
	}

	var delayed float64
	if wasLeaf {
		delayed = p.mb.Rollout(state)
	} else {
		delayed = p.simulate(state, n.getNext(action, p.pool, p.factory), t+1)
	}
	p.treeDepth--

	total := reward + p.sim.Discount()*delayed
	n.bandit.Update(total)
	return total
}

// mirrorRootExpansion keeps the root VNode's (action, observation)
// child lattice in sync with the POOLTS tree's own root-level
// expansion, exactly at t==0 as spec.md §4.G requires.
func (p *Poolts) mirrorRootExpansion(action, obs int, state mctsbase.State) {
	root := p.mb.Root()
	actionNode := root.Child(action)
	if actionNode.Child(obs) == nil {
		v := p.mb.ExpandNode(state)
		p.mb.AddSample(v, state)
		actionNode.SetChild(obs, v)
	}
}
