package experiment

import (
	"testing"

	"github.com/samuelfneumann/pomdpsearch/experiment/tracker"
	"github.com/samuelfneumann/pomdpsearch/mctsbase/refimpl"
	"github.com/samuelfneumann/pomdpsearch/rng"
	"github.com/samuelfneumann/pomdpsearch/search/spec"
)

func TestOnlineRunStepsUntilMaxSteps(t *testing.T) {
	src := rng.New(1)
	sim := refimpl.NewToySimulator(3, 5, 0.9, src)
	base := refimpl.NewBase(sim, 1.0, 5, src)

	cfg := Config{
		Type:     OnlineExp,
		MaxSteps: 12,
		Search: spec.Config{
			Type:                     spec.SYMBOL,
			MaxDepth:                 5,
			NumSimulations:           8,
			BanditBetaPrior:          1.0,
			BanditArmCapacity:        4,
			BanditConvergenceEpsilon: 0.05,
		},
	}

	exp, err := cfg.CreateExp(sim, base, src, nil, nil)
	if err != nil {
		t.Fatalf("CreateExp() error = %v", err)
	}

	if err := exp.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	online := exp.(*Online)
	if online.currentSteps != online.maxSteps {
		t.Errorf("currentSteps = %d, want %d", online.currentSteps, online.maxSteps)
	}
}

func TestOnlineRegisterAndSave(t *testing.T) {
	src := rng.New(2)
	sim := refimpl.NewToySimulator(3, 5, 0.9, src)
	base := refimpl.NewBase(sim, 1.0, 5, src)

	cfg := Config{
		Type:     OnlineExp,
		MaxSteps: 6,
		Search: spec.Config{
			Type:            spec.POOLTS,
			MaxDepth:        5,
			NumSimulations:  8,
			BanditBetaPrior: 1.0,
		},
	}

	exp, err := cfg.CreateExp(sim, base, src, nil, nil)
	if err != nil {
		t.Fatalf("CreateExp() error = %v", err)
	}

	saver := tracker.NewEpisodeLength(t.TempDir() + "/lengths.bin")
	exp.Register(saver)

	if err := exp.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	exp.Save()
}
