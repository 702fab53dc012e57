package experiment

import (
	"fmt"
	"time"

	"github.com/samuelfneumann/pomdpsearch/experiment/checkpointer"
	"github.com/samuelfneumann/pomdpsearch/experiment/tracker"
	"github.com/samuelfneumann/pomdpsearch/mctsbase"
	"github.com/samuelfneumann/pomdpsearch/search"
	ts "github.com/samuelfneumann/pomdpsearch/timestep"
	"github.com/samuelfneumann/progressbar"
)

// indexRotator is implemented by planners (POSTS) whose
// depth-bandit rotation is owned by the caller rather than the
// planner itself (spec.md §9): the experiment harness advances it by
// one after every real environment step.
type indexRotator interface {
	CurrentIndex() int
	SetCurrentIndex(int)
}

// Online is an Experiment that runs a search.Planner online against a
// mctsbase.Simulator/mctsbase.Base pair. No offline evaluation is
// performed.
type Online struct {
	sim  mctsbase.Simulator
	base mctsbase.Base
	plan search.Planner

	maxSteps      uint
	currentSteps  uint
	savers        []tracker.Tracker
	checkpointers []checkpointer.Checkpointer
	progBar       *progressbar.ProgressBar

	lastStep ts.TimeStep
}

// NewOnline creates and returns a new online experiment driving plan
// against sim through base. The steps parameter determines how many
// real environment timesteps the experiment is run for, and t/c are
// the trackers and checkpointers notified of every TimeStep.
func NewOnline(sim mctsbase.Simulator, base mctsbase.Base, plan search.Planner,
	steps uint, t []tracker.Tracker, c []checkpointer.Checkpointer) *Online {

	checkpointers := c
	if checkpointers == nil {
		checkpointers = []checkpointer.Checkpointer{}
	}

	trackers := t
	if trackers == nil {
		trackers = []tracker.Tracker{}
	}

	progBar := progressbar.New(50, int(steps), time.Second, true)
	progBar.Display()

	return &Online{
		sim: sim, base: base, plan: plan,
		maxSteps: steps, savers: trackers, checkpointers: checkpointers,
		progBar: progBar,
	}
}

// Register registers a tracker.Tracker with the experiment so that
// data generated during the experiment can be tracked and saved.
func (o *Online) Register(t tracker.Tracker) {
	o.savers = append(o.savers, t)
}

// LastTimeStep returns the most recently produced TimeStep, for use
// by tracker.Register.
func (o *Online) LastTimeStep() ts.TimeStep {
	return o.lastStep
}

// RunEpisode runs a single episode of the experiment and returns
// whether the step limit has been reached, as well as any error that
// occurred during the episode.
func (o *Online) RunEpisode() (bool, error) {
	state := o.sim.CreateStartState()
	if !o.sim.Validate(state) {
		return o.currentSteps >= o.maxSteps, fmt.Errorf(
			"runEpisode: simulator produced an invalid start state")
	}

	number := 0
	firstStep := ts.New(ts.First, 0, o.sim.Discount(), -1, number)
	o.track(firstStep)

	terminal := false
	for !terminal && o.currentSteps < o.maxSteps {
		o.progBar.Increment()
		o.currentSteps++

		action := o.plan.SelectAction()
		obs, reward, isTerminal := o.sim.Step(state, action)
		terminal = isTerminal
		number++

		stepType := ts.Mid
		if terminal {
			stepType = ts.Last
		}
		step := ts.New(stepType, reward, o.sim.Discount(), obs, number)

		o.track(step)
		o.checkpoint(step)
		o.base.History().Append(action, obs)

		if r, ok := o.plan.(indexRotator); ok {
			r.SetCurrentIndex(r.CurrentIndex() + 1)
		}
	}

	o.sim.FreeState(state)
	o.progBar.AddMessage(fmt.Sprintf("Episode Length: %v", number))

	return o.currentSteps >= o.maxSteps, nil
}

// Run runs the entire experiment for all timesteps.
func (o *Online) Run() error {
	ended := false
	var err error

	for !ended {
		ended, err = o.RunEpisode()
		if err != nil {
			return fmt.Errorf("run: %v", err)
		}
	}

	o.progBar.Close()
	if closer, ok := o.sim.(Closer); ok {
		closer.Close()
	}
	return nil
}

// Save saves all the data cached by the trackers to disk.
func (o *Online) Save() {
	for _, saver := range o.savers {
		saver.Save()
	}
}

// track tracks the current timestep by caching its data in each
// tracker.
func (o *Online) track(t ts.TimeStep) {
	o.lastStep = t
	for _, saver := range o.savers {
		saver.Track(t)
	}
}

// checkpoint checkpoints the current state of the experiment.
func (o *Online) checkpoint(t ts.TimeStep) {
	for _, c := range o.checkpointers {
		c.Checkpoint(t)
	}
}

// Simulator returns the Simulator that the experiment is run on.
func (o *Online) Simulator() mctsbase.Simulator {
	return o.sim
}

// Planner returns the search.Planner that the experiment is run with.
func (o *Online) Planner() search.Planner {
	return o.plan
}
