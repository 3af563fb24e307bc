// Package booking holds the state of the lesson booking wizard: pick a
// teacher, then a date, then confirm. Only the teacher step has a
// transition; the selection lives in memory and is never persisted.
package booking

import (
	"context"
	"fmt"
	"time"
)

// NumSteps is the number of wizard positions.
const NumSteps = 4

// CalendarHeader lays out the calendar toolbar.
type CalendarHeader struct {
	Left   string
	Center string
	Right  string
}

// Event is a calendar entry. The flow never binds any.
type Event struct {
	Title string
	Start time.Time
	End   time.Time
}

// CalendarConfig is the configuration handed to the calendar view.
type CalendarConfig struct {
	EventLimit bool
	Header     CalendarHeader
	Events     []Event
}

// Flow is the state of one booking session. It is not safe for concurrent
// use.
type Flow struct {
	Teachers []Teacher

	Step1 bool
	Step2 bool
	Step3 bool
	Step4 bool

	SelectedTeacher *Teacher
	SelectedDate    time.Time

	Calendar CalendarConfig
	Stepper  Stepper

	provider TeacherProvider
}

// NewFlow returns a flow reading teachers from provider. A nil stepper is
// replaced by a LinearStepper over NumSteps.
func NewFlow(provider TeacherProvider, stepper Stepper) *Flow {
	if stepper == nil {
		stepper = NewLinearStepper(NumSteps)
	}
	return &Flow{provider: provider, Stepper: stepper}
}

// Init loads the teacher list and configures the calendar.
func (f *Flow) Init(ctx context.Context) error {
	teachers, err := f.provider.Teachers(ctx)
	if err != nil {
		return fmt.Errorf("load teachers: %w", err)
	}
	f.Teachers = teachers
	f.Calendar = CalendarConfig{
		EventLimit: false,
		Header: CalendarHeader{
			Left:   "prev,next today",
			Center: "title",
			Right:  "month,agendaWeek,agendaDay",
		},
	}
	return nil
}

// ClickTeacher records t as the selected teacher, completes the first step
// and moves the stepper forward by one. A later click replaces the earlier
// selection.
func (f *Flow) ClickTeacher(t Teacher) {
	selected := t
	f.SelectedTeacher = &selected
	f.Step1 = true
	f.Stepper.Next()
}
