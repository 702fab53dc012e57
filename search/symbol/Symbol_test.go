package symbol

import (
	"testing"

	"github.com/samuelfneumann/pomdpsearch/mctsbase/refimpl"
	"github.com/samuelfneumann/pomdpsearch/rng"
)

func newTestPlanner(seed uint64, maxDepth, numSims int) (*Symbol, *refimpl.Base) {
	src := rng.New(seed)
	sim := refimpl.NewToySimulator(4, maxDepth, 0.95, src)
	base := refimpl.NewBase(sim, 1.0, maxDepth, src)
	cfg := Config{
		MaxDepth:           maxDepth,
		NumSimulations:     numSims,
		BetaPrior:          1.0,
		ArmCapacity:        4,
		ConvergenceEpsilon: 0.05,
	}
	s := New(sim, base, cfg, src)
	return s, base
}

func TestSelectActionInRange(t *testing.T) {
	s, _ := newTestPlanner(1, 5, 64)
	action := s.SelectAction()
	if action < 0 || action >= 4 {
		t.Fatalf("SelectAction() = %d, want in [0, 4)", action)
	}
}

// TestGatedUpdateStopsAtFirstUnconverged replays simulateOnce's
// credit-propagation loop: bandits[0] driven to convergence, bandits[1]
// left without updates so it cannot have converged. bandits[2] must not
// be touched by the credit pass even though it has its own reward slot.
func TestGatedUpdateStopsAtFirstUnconverged(t *testing.T) {
	s, _ := newTestPlanner(7, 3, 1)

	// Drive bandits[0] to convergence: repeatedly play-then-update the
	// same arm with the same reward until its window fills and
	// HasConverged reports true. Means enter the window only once the
	// count exceeds ArmCapacity, so filling its ArmCapacity+1 slots takes
	// 2*ArmCapacity+1 updates.
	legal := []int{0}
	for i := 0; i < 2*s.cfg.ArmCapacity+1; i++ {
		s.bandits[0].SampleFrom(legal)
		s.bandits[0].Update(5.0)
	}
	if !s.bandits[0].HasConverged(s.cfg.ConvergenceEpsilon) {
		t.Fatalf("bandits[0] should have converged on a constant reward stream")
	}

	// bandits[1] has seen nothing, so it cannot have converged.
	if s.bandits[1].HasConverged(s.cfg.ConvergenceEpsilon) {
		t.Fatalf("bandits[1] should not be considered converged with no updates")
	}

	before2 := s.bandits[2].Arms()[0].Count()

	s.rewards[0] = 1
	s.rewards[1] = 2
	s.rewards[2] = 3

	credited := 1
	for t := 1; t < 3; t++ {
		if !s.bandits[t-1].HasConverged(s.cfg.ConvergenceEpsilon) {
			break
		}
		s.bandits[t].Update(s.rewards[t])
		credited++
	}

	if credited != 2 {
		t.Errorf("credited = %d, want 2 (bandits[0] converged, bandits[1] did not)", credited)
	}
	after2 := s.bandits[2].Arms()[0].Count()
	if after2 != before2 {
		t.Errorf("bandits[2] was updated despite bandits[1] not having converged")
	}
}

// TestMaxNumberOfBanditsMonotoneWithinSelectAction checks that
// maxNumberOfBandits never decreases across the simulations run
// inside one SelectAction call.
func TestMaxNumberOfBanditsMonotoneWithinSelectAction(t *testing.T) {
	s, _ := newTestPlanner(11, 4, 200)
	s.SelectAction()

	if s.MaxNumberOfBandits() < 1 {
		t.Errorf("MaxNumberOfBandits() = %d, want >= 1 after any simulation ran", s.MaxNumberOfBandits())
	}
	if s.MaxNumberOfBandits() > s.cfg.MaxDepth {
		t.Errorf("MaxNumberOfBandits() = %d exceeds MaxDepth = %d", s.MaxNumberOfBandits(), s.cfg.MaxDepth)
	}

	// Replay one planning call's simulation loop, checking the
	// high-water mark after every simulation.
	for _, b := range s.bandits {
		b.Reset()
	}
	s.maxNumberOfBandits = 0
	prev := 0
	for i := 0; i < s.cfg.NumSimulations; i++ {
		s.simulateOnce()
		if got := s.MaxNumberOfBandits(); got < prev {
			t.Errorf("MaxNumberOfBandits() fell from %d to %d at simulation %d", prev, got, i)
		}
		prev = s.MaxNumberOfBandits()
	}
}

func TestHistoryRestoredAfterSelectAction(t *testing.T) {
	s, base := newTestPlanner(3, 5, 32)
	before := base.History().Size()
	s.SelectAction()
	after := base.History().Size()

	if before != after {
		t.Errorf("History.Size() changed from %d to %d across SelectAction", before, after)
	}
}
