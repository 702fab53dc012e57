// Package bandit implements the common multi-armed bandit abstraction
// shared by the POSTS, POOLTS, and SYMBOL planners: a fixed-arm-set
// play/sample/update/reset protocol, and four variants (Random,
// ε-Greedy, UCB1, Thompson Sampling) that differ only in how they
// choose an arm to sample.
package bandit

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/pomdpsearch/bandit/arm"
	"github.com/samuelfneumann/pomdpsearch/rng"
)

// Unset is the sentinel playIndex value meaning "sample() has not
// been called since the last reset()".
const Unset = -1

// Type names a bandit variant, mirroring the search/spec.Type tag
// used elsewhere in this module for planner Configs.
type Type string

const (
	Random   Type = "Random"
	EGreedy  Type = "EGreedy"
	UCB1     Type = "UCB1"
	Thompson Type = "Thompson"
)

// Bandit is the common trait implemented by every variant.
type Bandit interface {
	// Play picks greedily (exploit-only) over every arm that has data.
	Play() int

	// PlayLegal picks greedily over the supplied index subset.
	PlayLegal(legal []int) int

	// Sample chooses an arm from the full action set via the
	// variant-specific policy, commits it as playIndex, and returns it.
	Sample() int

	// SampleFrom is Sample restricted to a legal action subset.
	SampleFrom(legal []int) int

	// Update feeds reward to the arm at the current playIndex, if any.
	Update(reward float64)

	// Reset clears all arm statistics and the current playIndex.
	Reset()

	// HasConverged tests convergence on the arm at the current
	// playIndex.
	HasConverged(eps float64) bool

	// Arms returns the bandit's owned per-action statistics.
	Arms() []*arm.Arm
}

// base implements the play/update/reset/argmax machinery shared by
// every variant. Each variant embeds base and only needs to implement
// Sample/SampleFrom (and, for Thompson, a custom Reset/Update).
type base struct {
	arms      []*arm.Arm
	actions   []int
	playIndex int
	rng       rng.Source

	// scratch buffers, owned by this Bandit and cleared at the start
	// of each call -- never shared across Bandit instances.
	scoreBuf []float64
	candBuf  []int
	tieBuf   []int
}

func newBase(k, armCapacity int, src rng.Source) base {
	if k <= 0 {
		panic(fmt.Sprintf("bandit: invalid arm count %d", k))
	}
	arms := make([]*arm.Arm, k)
	for i := range arms {
		arms[i] = arm.New(armCapacity)
	}
	actions := make([]int, k)
	for i := range actions {
		actions[i] = i
	}
	return base{
		arms:      arms,
		actions:   actions,
		playIndex: Unset,
		rng:       src,
		scoreBuf:  make([]float64, 0, k),
		candBuf:   make([]int, 0, k),
		tieBuf:    make([]int, 0, k),
	}
}

// Arms implements Bandit.
func (b *base) Arms() []*arm.Arm {
	return b.arms
}

// Reset implements Bandit.
func (b *base) Reset() {
	for _, a := range b.arms {
		a.Reset()
	}
	b.playIndex = Unset
}

// Update implements Bandit.
func (b *base) Update(reward float64) {
	if b.playIndex == Unset {
		return
	}
	if b.playIndex < 0 || b.playIndex >= len(b.arms) {
		panic(fmt.Sprintf("bandit: invalid playIndex %d", b.playIndex))
	}
	b.arms[b.playIndex].Update(reward)
}

// HasConverged implements Bandit.
func (b *base) HasConverged(eps float64) bool {
	if b.playIndex == Unset {
		return false
	}
	return b.arms[b.playIndex].HasConverged(eps)
}

// Play implements Bandit. Unlike PlayLegal, Play first narrows the
// action set to arms with at least one sample, mirroring the two-step
// Bandit::play()/play(legalArms) split in the reference design:
// play() builds the narrowed candidate list, then delegates to the
// legal-subset overload.
func (b *base) Play() int {
	b.candBuf = b.candBuf[:0]
	for _, a := range b.actions {
		if b.arms[a].Count() > 0 {
			b.candBuf = append(b.candBuf, a)
		}
	}
	if len(b.candBuf) == 0 {
		return b.PlayLegal(b.actions)
	}
	return b.PlayLegal(b.candBuf)
}

// PlayLegal implements Bandit: the greedy argmax of arms[i].Mean()
// over exactly the given legal set, with uniform random tie-breaking.
// It does not filter out unvisited arms -- an arm with no samples
// reports a mean of 0, which competes on equal footing with sampled
// means, matching the reference design's legal-subset play(legalArms)
// (only the no-arg Play() narrows to visited arms first).
func (b *base) PlayLegal(legal []int) int {
	b.scoreBuf = b.scoreBuf[:0]
	for _, a := range legal {
		b.scoreBuf = append(b.scoreBuf, b.arms[a].Mean())
	}
	return legal[b.argmax(b.scoreBuf)]
}

// commit records idx as the arm most recently chosen by sample() and
// returns it.
func (b *base) commit(idx int) int {
	b.playIndex = idx
	return idx
}

// argmax returns the index of the maximum score in scores, breaking
// ties uniformly at random. This randomized tie-break is essential for
// exploration when many arms tie at +Inf.
func (b *base) argmax(scores []float64) int {
	if len(scores) == 0 {
		panic("bandit: argmax called on empty candidate set")
	}

	b.tieBuf = b.tieBuf[:0]
	max := math.Inf(-1)
	for i, s := range scores {
		switch {
		case s > max:
			max = s
			b.tieBuf = b.tieBuf[:0]
			b.tieBuf = append(b.tieBuf, i)
		case s == max:
			b.tieBuf = append(b.tieBuf, i)
		}
	}
	if len(b.tieBuf) == 1 {
		return b.tieBuf[0]
	}
	return b.tieBuf[b.rng.Intn(len(b.tieBuf))]
}
