// Package mctsbase declares the external interfaces the three search
// planners (POSTS, POOLTS, SYMBOL) consume but do not implement: the
// POMDP domain simulator, and the belief-particle/history/VNODE
// scaffolding inherited from a baseline MCTS implementation
// (spec.md §4.E, §6). Both are out of scope for this module; only a
// narrow reference implementation for tests lives under
// mctsbase/refimpl.
package mctsbase

// State is an opaque, simulator-owned representation of one concrete
// world state sampled from a belief. Planners never inspect a State's
// contents; they only pass it back into the Simulator and Base that
// produced it.
type State any

// Phase tags which part of a simulated trajectory is executing: the
// in-tree portion (POOLTS) or the random-policy rollout fallback.
type Phase int

const (
	PhaseTree Phase = iota
	PhaseRollout
)

// Status carries the current search phase, consulted by
// GenerateActionSpace to decide whether follow-on action-space rules
// apply.
type Status struct {
	Phase Phase
}

// Beliefs samples concrete particles from a node's belief.
type Beliefs interface {
	// CreateSample draws one State from the belief. The caller owns
	// the returned State and must free it via Simulator.FreeState.
	CreateSample() State
}

// ActionNode is the per-action child of a VNode, indexed further by
// observation.
type ActionNode interface {
	// Child returns the VNode reached after observing obs from this
	// action, or nil if it has not been expanded yet.
	Child(obs int) VNode

	// SetChild attaches v as the child reached after observing obs.
	SetChild(obs int, v VNode)

	// Update credits value to this action's statistics.
	Update(value float64)

	// Mean returns the action's current mean return estimate.
	Mean() float64

	// Count returns the number of returns credited to this action.
	Count() int
}

// VNode is a value node in the search tree, owned by the MCTS base
// and indexed by (action, observation) pairs.
type VNode interface {
	// Beliefs returns this node's belief-particle sampler.
	Beliefs() Beliefs

	// Child returns the ActionNode for the given action, creating an
	// empty one on first access.
	Child(action int) ActionNode

	// IsLeaf reports whether this node has not yet been expanded.
	IsLeaf() bool
}

// History is a scoped append-only record of (action, observation)
// pairs seen so far in the current real episode plus the in-progress
// simulation.
type History interface {
	// Append records one more (action, observation) pair.
	Append(action, obs int)

	// Size returns the number of pairs currently recorded.
	Size() int

	// TruncateTo discards every pair recorded after index n. Every
	// simulation must call TruncateTo(historyDepth) on every exit path
	// (spec.md §5).
	TruncateTo(n int)
}

// Simulator is the POMDP domain contract consumed by every planner
// (spec.md §6). Implementations are out of scope for this module; see
// mctsbase/refimpl for a small deterministic reference used in tests.
type Simulator interface {
	NumActions() int
	NumObservations() int

	// Discount returns the problem's discount factor γ ∈ (0, 1].
	Discount() float64

	// GenerateActionSpace writes the legal action set for state into
	// out and returns the (possibly reallocated) slice.
	// isFollowOn distinguishes the root call (false) from calls made
	// while already inside a simulated trajectory (true).
	GenerateActionSpace(state State, h History, out []int, status Status, isFollowOn bool) []int

	// Step advances state by taking action, mutating state in place
	// and returning the resulting observation, immediate reward, and
	// whether state is now terminal.
	Step(state State, action int) (obs int, reward float64, terminal bool)

	// Validate reports whether state is a well-formed state for this
	// Simulator.
	Validate(state State) bool

	// FreeState releases a State allocated by CreateStartState or a
	// Beliefs.CreateSample call.
	FreeState(state State)

	// CreateStartState returns a fresh initial state.
	CreateStartState() State

	// SelectRandom returns a uniformly random legal action in state,
	// used by the default rollout policy.
	SelectRandom(state State, h History, status Status) int

	// RewardRange returns the [min, max] immediate reward bounds,
	// used to auto-set ExplorationConstant.
	RewardRange() (float64, float64)

	// Horizon returns the effective planning horizon for the given
	// discount-accuracy target, capped at horizonCap.
	Horizon(accuracy float64, horizonCap int) int
}

// Base is the baseline-MCTS scaffolding every planner drives: root
// belief access, history tracking, node expansion, the random-policy
// rollout fallback, and greedy root-action selection (spec.md §6).
type Base interface {
	// Root returns the search tree's root VNode.
	Root() VNode

	// History returns the shared, scoped History.
	History() History

	// Status returns the mutable current search Status.
	Status() *Status

	// ExpandNode allocates and returns a new VNode seeded from state.
	ExpandNode(state State) VNode

	// AddSample adds state as one more belief particle of v.
	AddSample(v VNode, state State)

	// Rollout runs the random-policy fallback from state to the
	// horizon and returns the discounted return.
	Rollout(state State) float64

	// GreedyUCB returns the UCB-greedy action at node. useExploration
	// controls whether the exploration bonus is applied; the final
	// SelectAction() call always passes false.
	GreedyUCB(node VNode, useExploration bool) int
}
