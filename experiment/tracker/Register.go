package tracker

import (
	ts "github.com/samuelfneumann/pomdpsearch/timestep"
)

// LastStepper exposes the most recently produced TimeStep, satisfied
// by experiment.Online. It lets a Tracker be registered against a
// specific running experiment rather than against whatever TimeStep
// happens to be passed to its Track() call.
type LastStepper interface {
	LastTimeStep() ts.TimeStep
}

// registeredTracker registers a LastStepper with some Tracker so that
// the Tracker tracks data from that LastStepper only. registeredTracker
// itself is a Tracker.
//
// The Track() and Save() methods of a register call those of the
// embedded Tracker. The only difference is that registeredTracker calls
// the Track() method of the embedded Tracker using the LastStepper's
// most recent TimeStep, and the argument to registeredTracker.Track()
// is ignored. The logic of the embedded Tracker's Track() and Save()
// methods remain unmodified.
type registeredTracker struct {
	Tracker
	steps LastStepper
}

// Register registers a new Tracker with a LastStepper, to track data
// from that LastStepper only. Register returns a copy of the argument
// Tracker that is registered with the argument LastStepper.
//
// Note: the underlying concrete type of the registered Tracker is
// lost when registering a LastStepper with a Tracker.
func Register(t Tracker, steps LastStepper) Tracker {
	return &registeredTracker{t, steps}
}

// Track calls Track() on the embedded Tracker using the most recent
// TimeStep from the registered LastStepper.
//
// The TimeStep argument to this function is completely ignored, and is
// only there to ensure Register follows the Tracker interface to track
// and save data during an experiment.
func (r *registeredTracker) Track(ts.TimeStep) {
	step := r.steps.LastTimeStep()
	r.Tracker.Track(step)
}
