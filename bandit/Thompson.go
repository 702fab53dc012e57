package bandit

import (
	"math"

	"github.com/samuelfneumann/pomdpsearch/rng"
)

// Fixed Normal-Gamma prior hyperparameters, shared by every
// ThompsonBandit (spec.md §4.D).
const (
	priorMu0     = 0.0
	priorLambda0 = 0.01
	priorAlpha0  = 1.0
)

// ThompsonBandit implements Thompson Sampling with a Normal-Gamma
// conjugate prior over each arm's unknown mean reward. Sufficient
// statistics (means, vars, counts) are cached per arm and refreshed
// only every updateDelay-th reward, rather than recomputed from the
// Arm on every sample.
type ThompsonBandit struct {
	base
	updateDelay int
	beta0       float64

	means  []float64
	vars   []float64
	counts []int
}

// NewThompson returns a new ThompsonBandit over k arms. beta0 is the
// Normal-Gamma prior's rate hyperparameter; mu0, lambda0, and alpha0
// are fixed at 0, 0.01, and 1 respectively per spec.md §4.D.
func NewThompson(k, armCapacity, updateDelay int, beta0 float64, src rng.Source) *ThompsonBandit {
	if updateDelay <= 0 {
		updateDelay = 1
	}
	return &ThompsonBandit{
		base:        newBase(k, armCapacity, src),
		updateDelay: updateDelay,
		beta0:       beta0,
		means:       make([]float64, k),
		vars:        make([]float64, k),
		counts:      make([]int, k),
	}
}

// Reset implements Bandit, additionally zeroing the cached posterior
// sufficient statistics.
func (th *ThompsonBandit) Reset() {
	th.base.Reset()
	for i := range th.means {
		th.means[i] = 0
		th.vars[i] = 0
		th.counts[i] = 0
	}
}

// Update implements Bandit. The base update routes the reward to the
// played arm; if the arm's post-update count is a multiple of
// updateDelay, the cached sufficient statistics for that arm are
// refreshed from the Arm's running mean/variance.
func (th *ThompsonBandit) Update(reward float64) {
	idx := th.playIndex
	th.base.Update(reward)
	if idx == Unset {
		return
	}

	a := th.arms[idx]
	if a.Count()%th.updateDelay == 0 {
		th.counts[idx]++
		th.means[idx] = a.Mean()
		std := a.Std()
		th.vars[idx] = std * std
	}
}

// Sample implements Bandit.
func (th *ThompsonBandit) Sample() int {
	return th.SampleFrom(th.actions)
}

// SampleFrom implements Bandit.
func (th *ThompsonBandit) SampleFrom(legal []int) int {
	return th.commit(th.sampleArmFrom(legal))
}

func (th *ThompsonBandit) sampleArmFrom(legal []int) int {
	th.scoreBuf = th.scoreBuf[:0]
	for _, a := range legal {
		n := float64(th.counts[a])
		if th.counts[a] == 0 {
			th.scoreBuf = append(th.scoreBuf, math.Inf(1))
			continue
		}

		m := th.means[a]
		v := th.vars[a]

		lambda1 := priorLambda0 + n
		mu1 := (priorLambda0*priorMu0 + n*m) / lambda1
		alpha1 := priorAlpha0 + n/2
		beta1 := th.beta0 + 0.5*(n*v+priorLambda0*n*(m-priorMu0)*(m-priorMu0)/lambda1)

		tau := th.rng.Gamma(alpha1, beta1)
		if tau <= 0 {
			tau = 1e-9 // guards the otherwise-undefined infinite-variance draw
		}
		theta := th.rng.Normal(mu1, math.Sqrt(1/(lambda1*tau)))
		th.scoreBuf = append(th.scoreBuf, theta)
	}
	return legal[th.argmax(th.scoreBuf)]
}

// Flush is a retained no-op hook, mirroring the empty
// ThompsonSampling::flush() in the reference design (spec.md §9).
func (th *ThompsonBandit) Flush() {}
