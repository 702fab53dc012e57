// Package arm implements Arm, the per-action running-statistics
// aggregator shared by every Bandit variant.
package arm

import (
	"bytes"
	"encoding/gob"
	"math"

	"github.com/samuelfneumann/pomdpsearch/utils/floatutils"
	"gonum.org/v1/gonum/floats"
)

// Arm represents one action's empirical return distribution: a
// running count, sum, and sum-of-squares of observed rewards, plus a
// sliding window of recent mean estimates used to detect convergence.
//
// sumReward and sumSquaredReward hold +Inf before the first Update --
// a sentinel for "no samples yet" -- and are reset to 0 on the first
// Update call. mean() and std() always special-case count == 0 so the
// sentinel never leaks into a reported statistic.
type Arm struct {
	count            int
	sumReward        float64
	sumSquaredReward float64
	capacity         int
	window           []float64
}

// New returns an Arm with the given convergence-window capacity. A
// window of capacity+1 mean estimates is kept once count exceeds
// capacity.
func New(capacity int) *Arm {
	a := &Arm{capacity: capacity}
	a.Reset()
	return a
}

// Reset restores the Arm to its just-constructed state: count == 0,
// mean()/std() report 0, and the convergence window is cleared.
func (a *Arm) Reset() {
	a.count = 0
	a.sumReward = math.Inf(1)
	a.sumSquaredReward = math.Inf(1)
	a.window = a.window[:0]
}

// Update feeds one more observed reward r to the Arm.
func (a *Arm) Update(r float64) {
	if a.count == 0 {
		a.sumReward = 0
		a.sumSquaredReward = 0
	}
	a.count++
	a.sumReward += r
	a.sumSquaredReward += r * r

	if a.count > a.capacity {
		a.window = append(a.window, a.Mean())
		if len(a.window) > a.capacity+1 {
			a.window = a.window[1:]
		}
	}
}

// Count returns the number of rewards observed so far.
func (a *Arm) Count() int {
	return a.count
}

// Mean returns the running mean reward, or 0 if no rewards have been
// observed.
func (a *Arm) Mean() float64 {
	if a.count == 0 {
		return 0
	}
	return a.sumReward / float64(a.count)
}

// Std returns the running standard deviation of observed rewards, or
// 0 if no rewards have been observed. The raw variance is clamped to
// 0 before the square root -- floating-point cancellation can drive it
// slightly negative.
func (a *Arm) Std() float64 {
	if a.count == 0 {
		return 0
	}
	m := a.Mean()
	variance := a.sumSquaredReward/float64(a.count) - m*m
	variance = floatutils.Clip(variance, 0, math.Inf(1))
	return math.Sqrt(variance)
}

// HasConverged reports whether the Arm's mean estimate has settled:
// at least capacity+1 means must have been recorded in the window,
// and the mean absolute first-difference across the window must be
// below eps.
func (a *Arm) HasConverged(eps float64) bool {
	if len(a.window) < a.capacity+1 {
		return false
	}

	diffs := make([]float64, len(a.window)-1)
	for i := 1; i < len(a.window); i++ {
		diffs[i-1] = math.Abs(a.window[i] - a.window[i-1])
	}
	return floats.Sum(diffs)/float64(a.capacity) < eps
}

// armGob is the exact on-the-wire representation of an Arm's
// sufficient statistics -- count, sumReward, sumSquaredReward -- used
// by GobEncode/GobDecode. The convergence window is not part of the
// round-trip contract.
type armGob struct {
	Count            int
	SumReward        float64
	SumSquaredReward float64
}

// GobEncode implements gob.GobEncoder, mirroring the
// checkpointer.Serializable contract used elsewhere in this module.
func (a *Arm) GobEncode() ([]byte, error) {
	buf := new(bytes.Buffer)
	g := armGob{Count: a.count}
	if a.count == 0 {
		g.SumReward = math.Inf(1)
		g.SumSquaredReward = math.Inf(1)
	} else {
		g.SumReward = a.sumReward
		g.SumSquaredReward = a.sumSquaredReward
	}
	if err := gob.NewEncoder(buf).Encode(g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (a *Arm) GobDecode(data []byte) error {
	var g armGob
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&g); err != nil {
		return err
	}
	a.count = g.Count
	a.sumReward = g.SumReward
	a.sumSquaredReward = g.SumSquaredReward
	return nil
}
