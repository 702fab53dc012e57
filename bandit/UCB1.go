package bandit

import (
	"math"

	"github.com/samuelfneumann/pomdpsearch/rng"
)

// UCB1Bandit implements the UCB1 exploration bonus. Following this
// module's required deviation from textbook UCB1 (spec.md §4.D), the
// square-root denominator uses the size of the legal-action set, not
// the count of the arm being scored.
type UCB1Bandit struct {
	base
	c float64
}

// NewUCB1 returns a new UCB1Bandit over k arms with exploration
// constant c.
func NewUCB1(k, armCapacity int, c float64, src rng.Source) *UCB1Bandit {
	return &UCB1Bandit{base: newBase(k, armCapacity, src), c: c}
}

// Sample implements Bandit.
func (u *UCB1Bandit) Sample() int {
	return u.SampleFrom(u.actions)
}

// SampleFrom implements Bandit.
func (u *UCB1Bandit) SampleFrom(legal []int) int {
	return u.commit(u.sampleArmFrom(legal))
}

func (u *UCB1Bandit) sampleArmFrom(legal []int) int {
	total := 0
	for _, a := range legal {
		total += u.arms[a].Count()
	}

	u.scoreBuf = u.scoreBuf[:0]
	for _, a := range legal {
		if u.arms[a].Count() == 0 {
			// An unvisited arm always wins; this also structurally
			// guards against the ln(0) path below, since at least one
			// arm is selected before total ever exceeds 0 with every
			// arm visited.
			u.scoreBuf = append(u.scoreBuf, math.Inf(1))
			continue
		}
		bonus := u.c * math.Sqrt(2*math.Log(float64(total))/float64(len(legal)))
		u.scoreBuf = append(u.scoreBuf, u.arms[a].Mean()+bonus)
	}
	return legal[u.argmax(u.scoreBuf)]
}
