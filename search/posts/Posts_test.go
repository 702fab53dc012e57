package posts

import (
	"testing"

	"github.com/samuelfneumann/pomdpsearch/mctsbase/refimpl"
	"github.com/samuelfneumann/pomdpsearch/rng"
)

func newTestPlanner(seed uint64) (*Posts, *refimpl.Base) {
	src := rng.New(seed)
	sim := refimpl.NewToySimulator(4, 5, 0.95, src)
	base := refimpl.NewBase(sim, 1.0, 5, src)
	p := New(sim, base, Config{MaxDepth: 5, NumSimulations: 64, BetaPrior: 1.0}, src)
	return p, base
}

func TestSelectActionInRange(t *testing.T) {
	p, _ := newTestPlanner(1)
	action := p.SelectAction()
	if action < 0 || action >= 4 {
		t.Fatalf("SelectAction() = %d, want in [0, 4)", action)
	}
}

func TestSelectActionDeterministicForFixedSeed(t *testing.T) {
	p1, _ := newTestPlanner(42)
	a1 := p1.SelectAction()

	p2, _ := newTestPlanner(42)
	a2 := p2.SelectAction()

	if a1 != a2 {
		t.Errorf("two planners built from the same seed chose different actions: %d vs %d", a1, a2)
	}
}

// TestHistoryRestoredAfterSimulation checks that a simulation's
// scoped History push/pop leaves History.Size() unchanged across a
// SelectAction call.
func TestHistoryRestoredAfterSimulation(t *testing.T) {
	p, base := newTestPlanner(3)
	before := base.History().Size()
	p.SelectAction()
	after := base.History().Size()

	if before != after {
		t.Errorf("History.Size() changed from %d to %d across SelectAction", before, after)
	}
}

// TestCurrentIndexUnchangedBySelectAction checks that SelectAction
// never mutates currentIndex itself (spec.md §9 / Testable Property
// #6): only an external caller advances it.
func TestCurrentIndexUnchangedBySelectAction(t *testing.T) {
	p, _ := newTestPlanner(5)
	p.SetCurrentIndex(2)
	p.SelectAction()

	if p.CurrentIndex() != 2 {
		t.Errorf("currentIndex = %d after SelectAction, want unchanged at 2", p.CurrentIndex())
	}
}
