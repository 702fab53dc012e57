// Package experiment implements functionality for running an online
// planning experiment: a search.Planner driven against a
// mctsbase.Simulator/mctsbase.Base pair, one real environment step at
// a time.
package experiment

import (
	"fmt"

	"github.com/samuelfneumann/pomdpsearch/experiment/checkpointer"
	"github.com/samuelfneumann/pomdpsearch/experiment/tracker"
	"github.com/samuelfneumann/pomdpsearch/mctsbase"
	"github.com/samuelfneumann/pomdpsearch/rng"
	"github.com/samuelfneumann/pomdpsearch/search"
	"github.com/samuelfneumann/pomdpsearch/search/spec"
	ts "github.com/samuelfneumann/pomdpsearch/timestep"
)

// Closer is implemented by Simulators that hold resources (files,
// connections) needing an explicit teardown at the end of a run.
type Closer interface {
	Close()
}

// Experiment outlines structs that can run experiments. Experiments
// track real TimeSteps, caching each TimeStep in RAM to later be
// saved to disk by Save(). Run() runs episodes until the maximum
// timestep limit is reached; RunEpisode() runs a single episode.
//
// In order to save data, Experiments use Trackers. Trackers determine
// which data generated during the experiment is saved. Experiments
// send each TimeStep to Trackers using the Tracker's Track() method.
// New Trackers can be registered with an Experiment through the
// constructor or through an Experiment's Register() method.
type Experiment interface {
	Run() error

	// RunEpisode runs a single episode and returns whether the step
	// limit was reached, as well as any error that occurred.
	RunEpisode() (bool, error)

	// track sends the current timestep to every registered Tracker.
	track(ts.TimeStep)

	// Save saves all tracked data to disk.
	Save()

	// Register adds a new tracker.Tracker to the (possibly already
	// running) experiment. Useful for tracking data only after a
	// specified event.
	Register(t tracker.Tracker)

	// checkpoint saves the current state of the experiment.
	checkpoint(ts.TimeStep)

	// Getters
	Simulator() mctsbase.Simulator
	Planner() search.Planner
}

// Type describes a specific experiment type. It is used in Experiment
// configurations to create a specific type of experiment.
type Type string

const (
	OnlineExp Type = "OnlineExperiment"
)

// Config represents a configuration of an experiment: which planner
// variant to build and for how long to run it. The Simulator/Base
// pair is supplied by the caller at CreateExp time, since their
// concrete construction is outside this module's scope (spec.md §1).
type Config struct {
	Type
	MaxSteps uint
	Search   spec.Config
}

// CreateExp creates the experiment determined by c, wiring its
// planner to sim and base.
func (c Config) CreateExp(sim mctsbase.Simulator, base mctsbase.Base, src rng.Source,
	t []tracker.Tracker, check []checkpointer.Checkpointer) (Experiment, error) {

	planner, err := c.Search.CreateSearch(sim, base, src)
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create planner: %v", err)
	}

	switch c.Type {
	case OnlineExp:
		return NewOnline(sim, base, planner, c.MaxSteps, t, check), nil
	}

	return nil, fmt.Errorf("createExp: no such experiment type %v", c.Type)
}
