package poolts

import (
	"testing"

	"github.com/samuelfneumann/pomdpsearch/bandit"
	"github.com/samuelfneumann/pomdpsearch/mctsbase/refimpl"
	"github.com/samuelfneumann/pomdpsearch/rng"
)

func newTestPlanner(seed uint64) (*Poolts, *refimpl.Base) {
	src := rng.New(seed)
	sim := refimpl.NewToySimulator(4, 5, 0.95, src)
	base := refimpl.NewBase(sim, 1.0, 5, src)
	factory := func() bandit.Bandit {
		return bandit.NewThompson(sim.NumActions(), 0, 1, 1.0, src)
	}
	p := New(sim, base, Config{MaxDepth: 5, NumSimulations: 64}, factory)
	return p, base
}

func TestSelectActionInRange(t *testing.T) {
	p, _ := newTestPlanner(1)
	action := p.SelectAction()
	if action < 0 || action >= 4 {
		t.Fatalf("SelectAction() = %d, want in [0, 4)", action)
	}
}

// TestLiveTreeIsOneResetNodeAfterSelectAction checks that after
// SelectAction, the live tree is exactly one reset node (spec.md
// §4.G pool invariant).
func TestLiveTreeIsOneResetNodeAfterSelectAction(t *testing.T) {
	p, _ := newTestPlanner(2)
	p.SelectAction()

	if !p.rootNode.isLeaf {
		t.Errorf("root node should be a fresh leaf after SelectAction")
	}
	if len(p.rootNode.children) != 0 {
		t.Errorf("root node should have no children after SelectAction")
	}
	for _, a := range p.rootNode.bandit.Arms() {
		if a.Count() != 0 {
			t.Errorf("root node's bandit should be fully reset after SelectAction")
		}
	}
}

// TestPoolClosureAcrossCalls checks that every pooled node is a reset
// leaf and that repeated SelectAction calls never leak nodes: the
// pool's size only grows (nodes are appended, never discarded).
func TestPoolClosureAcrossCalls(t *testing.T) {
	p, _ := newTestPlanner(9)

	var lastSize int
	for i := 0; i < 5; i++ {
		p.SelectAction()
		size := p.Pool().Size()
		if size < lastSize {
			t.Errorf("pool size shrank from %d to %d across SelectAction calls", lastSize, size)
		}
		lastSize = size

		for _, n := range p.Pool().free {
			if !n.isLeaf {
				t.Errorf("pooled node is not a leaf")
			}
			if len(n.children) != 0 {
				t.Errorf("pooled node has children")
			}
			for _, a := range n.bandit.Arms() {
				if a.Count() != 0 {
					t.Errorf("pooled node's bandit is not fully reset")
				}
			}
		}
	}
}

func TestHistoryRestoredAfterSelectAction(t *testing.T) {
	p, base := newTestPlanner(3)
	before := base.History().Size()
	p.SelectAction()
	after := base.History().Size()

	if before != after {
		t.Errorf("History.Size() changed from %d to %d across SelectAction", before, after)
	}
}
