package bandit

import "github.com/samuelfneumann/pomdpsearch/rng"

// EGreedyBandit picks a uniformly random arm with probability epsilon,
// and the greedy arm otherwise.
type EGreedyBandit struct {
	base
	epsilon float64
}

// NewEGreedy returns a new EGreedyBandit over k arms with exploration
// probability epsilon in [0, 1].
func NewEGreedy(k, armCapacity int, epsilon float64, src rng.Source) *EGreedyBandit {
	return &EGreedyBandit{base: newBase(k, armCapacity, src), epsilon: epsilon}
}

// Sample implements Bandit.
func (e *EGreedyBandit) Sample() int {
	return e.SampleFrom(e.actions)
}

// SampleFrom implements Bandit.
func (e *EGreedyBandit) SampleFrom(legal []int) int {
	var idx int
	if e.rng.Float64() < e.epsilon {
		idx = legal[e.rng.Intn(len(legal))]
	} else {
		idx = e.PlayLegal(legal)
	}
	return e.commit(idx)
}
