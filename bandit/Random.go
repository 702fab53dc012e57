package bandit

import "github.com/samuelfneumann/pomdpsearch/rng"

// RandomBandit samples an arm uniformly at random from the legal set,
// ignoring all statistics.
type RandomBandit struct {
	base
}

// NewRandom returns a new RandomBandit over k arms.
func NewRandom(k, armCapacity int, src rng.Source) *RandomBandit {
	return &RandomBandit{base: newBase(k, armCapacity, src)}
}

// Sample implements Bandit.
func (r *RandomBandit) Sample() int {
	return r.SampleFrom(r.actions)
}

// SampleFrom implements Bandit.
func (r *RandomBandit) SampleFrom(legal []int) int {
	idx := legal[r.rng.Intn(len(legal))]
	return r.commit(idx)
}
