package booking

// Stepper moves through a fixed sequence of steps.
type Stepper interface {
	Next()
	Index() int
}

// LinearStepper advances one step at a time, never backwards, and stays on
// the last step once reached.
type LinearStepper struct {
	steps int
	index int
}

// NewLinearStepper returns a stepper over steps positions, starting at 0.
// Fewer than one step is treated as one.
func NewLinearStepper(steps int) *LinearStepper {
	if steps < 1 {
		steps = 1
	}
	return &LinearStepper{steps: steps}
}

func (s *LinearStepper) Next() {
	if s.index < s.steps-1 {
		s.index++
	}
}

func (s *LinearStepper) Index() int { return s.index }

// Steps reports the number of positions.
func (s *LinearStepper) Steps() int { return s.steps }
