// Package refimpl implements a small, deterministic reference
// mctsbase.Base and mctsbase.Simulator used by this module's tests and
// by cmd/pomdpbench. It stands in for the belief-particle/root bookkeeping and
// POMDP domain simulators that spec.md §1 and §4.E name as external
// collaborators out of scope for the search core.
package refimpl

import (
	"bytes"
	"encoding/gob"
	"math"

	"github.com/samuelfneumann/pomdpsearch/bandit/arm"
	"github.com/samuelfneumann/pomdpsearch/mctsbase"
	"github.com/samuelfneumann/pomdpsearch/rng"
)

// actionStats accumulates the mean-return estimate for one action at
// one VNode, reusing the Arm aggregator the bandit package shares.
type actionStats struct {
	a        *arm.Arm
	children map[int]mctsbase.VNode
}

func newActionStats() *actionStats {
	return &actionStats{a: arm.New(0), children: map[int]mctsbase.VNode{}}
}

func (s *actionStats) Child(obs int) mctsbase.VNode {
	return s.children[obs]
}

func (s *actionStats) SetChild(obs int, v mctsbase.VNode) {
	s.children[obs] = v
}

func (s *actionStats) Update(value float64) {
	s.a.Update(value)
}

func (s *actionStats) Mean() float64 {
	return s.a.Mean()
}

func (s *actionStats) Count() int {
	return s.a.Count()
}

// node is a VNode backed by a fixed-size action-child lattice and a
// belief that resamples fresh particles from a Simulator each time.
type node struct {
	actions []*actionStats
	belief  mctsbase.Beliefs
	leaf    bool
}

func newNode(numActions int, belief mctsbase.Beliefs) *node {
	actions := make([]*actionStats, numActions)
	for i := range actions {
		actions[i] = newActionStats()
	}
	return &node{actions: actions, belief: belief, leaf: true}
}

func (n *node) Beliefs() mctsbase.Beliefs {
	return n.belief
}

func (n *node) Child(action int) mctsbase.ActionNode {
	return n.actions[action]
}

func (n *node) IsLeaf() bool {
	return n.leaf
}

// freshBelief resamples directly from the Simulator's start-state
// distribution. It stands in for the particle-filter belief a real
// baseline MCTS would maintain.
type freshBelief struct {
	sim mctsbase.Simulator
}

func (f freshBelief) CreateSample() mctsbase.State {
	return f.sim.CreateStartState()
}

// history is a scoped append-only (action, observation) log.
type history struct {
	pairs [][2]int
}

func (h *history) Append(action, obs int) {
	h.pairs = append(h.pairs, [2]int{action, obs})
}

func (h *history) Size() int {
	return len(h.pairs)
}

func (h *history) TruncateTo(n int) {
	h.pairs = h.pairs[:n]
}

// GobEncode implements gob.GobEncoder, letting a history be handed to
// a checkpointer.NewNStep the same way bandit/arm.Arm is.
func (h *history) GobEncode() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := gob.NewEncoder(buf).Encode(h.pairs); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (h *history) GobDecode(data []byte) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(&h.pairs)
}

// Base is a minimal mctsbase.Base: a single root VNode reused across
// calls, a scoped History, and a rollout/greedy-UCB policy driven
// directly off the Simulator.
type Base struct {
	sim                 mctsbase.Simulator
	root                *node
	hist                *history
	status              mctsbase.Status
	explorationConstant float64
	src                 rng.Source
	maxDepth            int
}

// NewBase returns a Base wired to sim, with a fresh root VNode.
func NewBase(sim mctsbase.Simulator, explorationConstant float64, maxDepth int, src rng.Source) *Base {
	b := &Base{
		sim:                 sim,
		hist:                &history{},
		explorationConstant: explorationConstant,
		src:                 src,
		maxDepth:            maxDepth,
	}
	b.root = newNode(sim.NumActions(), freshBelief{sim})
	b.root.leaf = false
	return b
}

func (b *Base) Root() mctsbase.VNode {
	return b.root
}

func (b *Base) History() mctsbase.History {
	return b.hist
}

func (b *Base) Status() *mctsbase.Status {
	return &b.status
}

func (b *Base) ExpandNode(state mctsbase.State) mctsbase.VNode {
	n := newNode(b.sim.NumActions(), freshBelief{b.sim})
	n.leaf = false
	return n
}

func (b *Base) AddSample(v mctsbase.VNode, state mctsbase.State) {
	// The reference belief resamples directly from the Simulator, so
	// particles need no bookkeeping here.
}

// Rollout runs the Simulator's default random policy to the horizon
// and returns the discounted return, following the same recursive
// shape as the search planners' inner rollouts.
func (b *Base) Rollout(state mctsbase.State) float64 {
	return b.rollout(state, 0)
}

func (b *Base) rollout(state mctsbase.State, depth int) float64 {
	if depth >= b.maxDepth {
		return 0
	}
	action := b.sim.SelectRandom(state, b.hist, b.status)
	_, reward, terminal := b.sim.Step(state, action)
	if terminal {
		return reward
	}
	return reward + b.sim.Discount()*b.rollout(state, depth+1)
}

// GreedyUCB returns the action at node with the highest UCB1 score.
// useExploration=false (the only mode the planners' final
// SelectAction call uses) reduces this to a pure greedy argmax over
// mean return.
func (b *Base) GreedyUCB(v mctsbase.VNode, useExploration bool) int {
	n := v.(*node)
	total := 0
	for _, a := range n.actions {
		total += a.Count()
	}

	best := 0
	bestScore := math.Inf(-1)
	for i, a := range n.actions {
		score := a.Mean()
		if useExploration {
			if a.Count() == 0 {
				score = math.Inf(1)
			} else {
				score += b.explorationConstant * math.Sqrt(2*math.Log(float64(total))/float64(a.Count()))
			}
		}
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	return best
}
