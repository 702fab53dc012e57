package refimpl

import (
	"github.com/samuelfneumann/pomdpsearch/mctsbase"
	"github.com/samuelfneumann/pomdpsearch/rng"
)

// toyState is the opaque State this Simulator hands back: a step
// counter, enough to decide when the episode's horizon is reached.
type toyState struct {
	step int
}

// ToySimulator is a small fixed-mean-reward POMDP used to exercise the
// search planners end to end in tests and in cmd/pomdpbench. Action k's true
// mean reward is k, scaled down, with Gaussian noise added by src;
// arm 0 is intentionally the worst and the top action is the last
// index, so a planner that is actually discriminating between arms
// should prefer it over many simulations.
type ToySimulator struct {
	NumActs    int
	NumObs     int
	Horizon_   int
	DiscountG  float64
	Src        rng.Source
	MeanReward []float64
}

// NewToySimulator returns a ToySimulator with numActs actions, a
// fixed horizon, and discount discount. Mean rewards are evenly
// spaced in [0, 1] so the planners have a clear best action to find.
func NewToySimulator(numActs, horizon int, discount float64, src rng.Source) *ToySimulator {
	means := make([]float64, numActs)
	for i := range means {
		means[i] = float64(i) / float64(numActs-1+1)
	}
	return &ToySimulator{
		NumActs:    numActs,
		NumObs:     1,
		Horizon_:   horizon,
		DiscountG:  discount,
		Src:        src,
		MeanReward: means,
	}
}

func (s *ToySimulator) NumActions() int      { return s.NumActs }
func (s *ToySimulator) NumObservations() int { return s.NumObs }
func (s *ToySimulator) Discount() float64    { return s.DiscountG }

func (s *ToySimulator) GenerateActionSpace(state mctsbase.State, h mctsbase.History,
	out []int, status mctsbase.Status, isFollowOn bool) []int {
	out = out[:0]
	for i := 0; i < s.NumActs; i++ {
		out = append(out, i)
	}
	return out
}

func (s *ToySimulator) Step(state mctsbase.State, action int) (obs int, reward float64, terminal bool) {
	st := state.(*toyState)
	reward = s.MeanReward[action] + 0.1*s.Src.Normal(0, 1)
	st.step++
	terminal = st.step >= s.Horizon_
	return 0, reward, terminal
}

func (s *ToySimulator) Validate(state mctsbase.State) bool {
	_, ok := state.(*toyState)
	return ok
}

func (s *ToySimulator) FreeState(state mctsbase.State) {}

func (s *ToySimulator) CreateStartState() mctsbase.State {
	return &toyState{}
}

func (s *ToySimulator) SelectRandom(state mctsbase.State, h mctsbase.History, status mctsbase.Status) int {
	return s.Src.Intn(s.NumActs)
}

func (s *ToySimulator) RewardRange() (float64, float64) {
	return 0, 1
}

func (s *ToySimulator) Horizon(accuracy float64, horizonCap int) int {
	if s.Horizon_ < horizonCap {
		return s.Horizon_
	}
	return horizonCap
}
