// Command pomdpbench runs one of the POSTS, POOLTS, or SYMBOL
// planners online against the package's toy reference simulator and
// saves the episodic returns observed.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/samuelfneumann/pomdpsearch/experiment"
	"github.com/samuelfneumann/pomdpsearch/experiment/checkpointer"
	"github.com/samuelfneumann/pomdpsearch/experiment/tracker"
	"github.com/samuelfneumann/pomdpsearch/mctsbase/refimpl"
	"github.com/samuelfneumann/pomdpsearch/rng"
	"github.com/samuelfneumann/pomdpsearch/search/spec"
	"gonum.org/v1/gonum/spatial/r1"
)

func main() {
	var (
		plannerType          = flag.String("planner", "POOLTS", "POSTS, POOLTS, or SYMBOL")
		maxSteps             = flag.Uint("steps", 20_000, "number of real environment steps to run")
		maxDepth             = flag.Int("depth", 10, "search horizon")
		numSimulations       = flag.Int("simulations", 256, "simulations per SelectAction call")
		numActions           = flag.Int("actions", 4, "number of simulator actions")
		horizon              = flag.Int("horizon", 20, "toy simulator episode horizon")
		discount             = flag.Float64("discount", 0.95, "discount factor")
		betaPrior            = flag.Float64("beta-prior", 1.0, "Thompson Sampling rate prior beta0")
		armCapacity          = flag.Int("arm-capacity", 4, "arm convergence-window length (SYMBOL)")
		convergenceEpsilon   = flag.Float64("convergence-epsilon", 0.05, "SYMBOL convergence gate")
		seed                 = flag.Uint64("seed", 1, "rng seed")
		out                  = flag.String("out", "./returns.bin", "file to save episodic returns to")
		checkpointEvery      = flag.Int("checkpoint-every", 1000, "steps between history checkpoints, 0 disables")
		checkpointDir        = flag.String("checkpoint-dir", "./checkpoints/history", "checkpoint filename prefix")
		explorationConstant  = flag.Float64("exploration-constant", 0,
			"root tree-policy's UCB1 exploration constant; 0 auto-sets it from the simulator's reward range")
	)
	flag.Parse()

	src := rng.New(*seed)
	sim := refimpl.NewToySimulator(*numActions, *horizon, *discount, src)

	// Mirrors the reference design's EXPERIMENT constructor, which
	// auto-sets ExplorationConstant from the simulator's reward range
	// whenever AutoExploration is on (experiment.cpp).
	ec := *explorationConstant
	if ec == 0 {
		lo, hi := sim.RewardRange()
		ec = r1.Interval{Min: lo, Max: hi}.Length()
	}
	base := refimpl.NewBase(sim, ec, *maxDepth, src)

	cfg := experiment.Config{
		Type:     experiment.OnlineExp,
		MaxSteps: *maxSteps,
		Search: spec.Config{
			Type:                     spec.Type(*plannerType),
			MaxDepth:                 *maxDepth,
			NumSimulations:           *numSimulations,
			BanditBetaPrior:          *betaPrior,
			BanditArmCapacity:        *armCapacity,
			BanditConvergenceEpsilon: *convergenceEpsilon,
		},
	}

	var saver tracker.Tracker = tracker.NewReturn(*out)

	var checkpointers []checkpointer.Checkpointer
	if *checkpointEvery > 0 {
		hist, ok := base.History().(checkpointer.Serializable)
		if !ok {
			panic("pomdpbench: refimpl history does not implement checkpointer.Serializable")
		}
		enumerate := checkpointer.FilenameEnumerator(0, *checkpointDir, ".bin")
		checkpointers = []checkpointer.Checkpointer{
			checkpointer.NewNStep(*checkpointEvery, hist, enumerate),
		}
	}

	exp, err := cfg.CreateExp(sim, base, src, []tracker.Tracker{saver}, checkpointers)
	if err != nil {
		panic(err)
	}

	start := time.Now()
	if err := exp.Run(); err != nil {
		panic(err)
	}
	fmt.Println("elapsed:", time.Since(start))
	exp.Save()
}
