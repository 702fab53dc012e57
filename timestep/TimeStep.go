// Package timestep packages together one step of the real
// planner-environment interaction, as reported by a
// mctsbase.Simulator driven through the experiment harness.
package timestep

// StepType denotes the type of step that a TimeStep can be, either the
// first environmental step, a middle step, or a last step.
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

// TimeStep packages together a single timestep in an environment.
type TimeStep struct {
	stepType    StepType
	Reward      float64
	Discount    float64
	Observation int
	Number      int
}

// New returns a new TimeStep.
func New(t StepType, r, d float64, o, number int) TimeStep {
	return TimeStep{t, r, d, o, number}
}

// First returns whether a TimeStep is the first in an environment.
func (t *TimeStep) First() bool {
	return t.stepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment.
func (t *TimeStep) Mid() bool {
	return t.stepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment.
func (t *TimeStep) Last() bool {
	return t.stepType == Last
}

// StepType returns the TimeStep's StepType.
func (t *TimeStep) StepType() StepType {
	return t.stepType
}
