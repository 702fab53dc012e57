package arm

import (
	"math"
	"testing"
)

func TestMeanAndStd(t *testing.T) {
	rewards := []float64{1, 2, 3, 4, 5}
	a := New(3)
	for _, r := range rewards {
		a.Update(r)
	}

	var sum, sumSq float64
	for _, r := range rewards {
		sum += r
		sumSq += r * r
	}
	n := float64(len(rewards))
	wantMean := sum / n
	wantStd := math.Sqrt(math.Max(0, sumSq/n-wantMean*wantMean))

	if got := a.Mean(); math.Abs(got-wantMean) > 1e-9 {
		t.Errorf("Mean() = %v, want %v", got, wantMean)
	}
	if got := a.Std(); math.Abs(got-wantStd) > 1e-9 {
		t.Errorf("Std() = %v, want %v", got, wantStd)
	}
}

func TestResetRestoresZeroState(t *testing.T) {
	a := New(2)
	a.Update(10)
	a.Update(-4)
	a.Reset()

	if a.Count() != 0 {
		t.Errorf("Count() after Reset() = %v, want 0", a.Count())
	}
	if a.Mean() != 0 {
		t.Errorf("Mean() after Reset() = %v, want 0", a.Mean())
	}
	if a.Std() != 0 {
		t.Errorf("Std() after Reset() = %v, want 0", a.Std())
	}
}

func TestEmptyArmReportsZero(t *testing.T) {
	a := New(5)
	if a.Mean() != 0 || a.Std() != 0 {
		t.Errorf("new Arm should report mean=0, std=0; got mean=%v std=%v",
			a.Mean(), a.Std())
	}
}

// TestConvergenceConstantWindow checks that a constant mean window
// converges for any eps > 0 and fails to converge for eps == 0.
func TestConvergenceConstantWindow(t *testing.T) {
	a := New(3)
	for i := 0; i < 10; i++ {
		a.Update(5.0)
	}

	if !a.HasConverged(0.01) {
		t.Errorf("expected convergence with eps=0.01 on a constant reward stream")
	}
	if a.HasConverged(0) {
		t.Errorf("expected no convergence with eps=0 on a constant reward stream")
	}
}

// TestConvergenceInsufficientWindow checks that an Arm never reports
// convergence before capacity+1 means have been recorded.
func TestConvergenceInsufficientWindow(t *testing.T) {
	a := New(5)
	for i := 0; i < 3; i++ {
		a.Update(1.0)
	}
	if a.HasConverged(1000) {
		t.Errorf("HasConverged should be false before capacity+1 means recorded")
	}
}

// TestConvergenceOscillatingWindow checks the amplitude-threshold
// behaviour: an oscillating window converges iff the amplitude is
// below eps.
func TestConvergenceOscillatingWindow(t *testing.T) {
	a := New(2)
	rewards := []float64{0, 10, 0, 10, 0, 10, 0, 10}
	for _, r := range rewards {
		a.Update(r)
	}

	if a.HasConverged(0.01) {
		t.Errorf("large-amplitude oscillation should not converge with a tight eps")
	}
}

func TestGobRoundTrip(t *testing.T) {
	a := New(4)
	for _, r := range []float64{1.5, -2.25, 3.75} {
		a.Update(r)
	}

	data, err := a.GobEncode()
	if err != nil {
		t.Fatalf("GobEncode: %v", err)
	}

	b := New(4)
	if err := b.GobDecode(data); err != nil {
		t.Fatalf("GobDecode: %v", err)
	}

	if b.count != a.count {
		t.Errorf("count = %v, want %v", b.count, a.count)
	}
	if b.sumReward != a.sumReward {
		t.Errorf("sumReward = %v, want %v", b.sumReward, a.sumReward)
	}
	if b.sumSquaredReward != a.sumSquaredReward {
		t.Errorf("sumSquaredReward = %v, want %v", b.sumSquaredReward, a.sumSquaredReward)
	}
}

func TestGobRoundTripEmptyArm(t *testing.T) {
	a := New(4)

	data, err := a.GobEncode()
	if err != nil {
		t.Fatalf("GobEncode: %v", err)
	}

	b := New(4)
	b.Update(100) // dirty the arm so the decode must actually restore zero state
	if err := b.GobDecode(data); err != nil {
		t.Fatalf("GobDecode: %v", err)
	}

	if b.Count() != 0 || b.Mean() != 0 || b.Std() != 0 {
		t.Errorf("round-tripped empty Arm should report count=0 mean=0 std=0")
	}
}
