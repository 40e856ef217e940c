package evolve

// Schedule constants.
const (
	InitialTemperature = 0.10
	CoolingStep        = 0.00001
	CoolingInterval    = 10   // generations between temperature steps
	BudgetInterval     = 1000 // generations between active budget checks
	PeriodicInterval   = 100  // generations between checkpoint/export calls
	TrialsPerStep      = 10   // mutate_batch draws per generation
	WorstDiff          = 100.0
)

// State is the engine state persisted alongside the best shape set.
type State struct {
	// Cap is the most shapes a set may ever hold.
	Cap int
	// Budget is the current ceiling on active shapes; it only grows, up to Cap.
	Budget int
	// Temperature never increases and never drops below zero.
	Temperature float64
	// BestDiff is the lowest score ever observed, in [0,100].
	BestDiff   float64
	Generation int64
}

// NewState returns the state of a fresh run.
func NewState(maxShapes, initial int) State {
	return State{
		Cap:         maxShapes,
		Budget:      initial,
		Temperature: InitialTemperature,
		BestDiff:    WorstDiff,
	}
}

// advance moves to the next generation and applies the cooling schedule.
func (s *State) advance() {
	s.Generation++
	if s.Temperature > 0 && s.Generation%CoolingInterval == 0 {
		s.Temperature = max(0, s.Temperature-CoolingStep)
	}
}

// maybeRaiseBudget unlocks one more shape every BudgetInterval generations
// once the current best uses nearly all of its allowance.
func (s *State) maybeRaiseBudget(active int) bool {
	if s.Generation%BudgetInterval != 0 || s.Budget >= s.Cap || active < s.Budget-1 {
		return false
	}
	s.Budget++
	return true
}
