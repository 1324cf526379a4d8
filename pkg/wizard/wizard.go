// Package wizard models the three-step quote flow as an explicit state
// machine. States are values: every transition returns a new State and
// leaves the receiver untouched.
package wizard

import (
	"errors"
	"fmt"
	"strings"

	"quote-wizard/pkg/models"
)

var (
	ErrUnknownField      = errors.New("unknown form field")
	ErrIncompleteBasics  = errors.New("birthday, gender and smoker status are required")
	ErrIncompleteContact = errors.New("full name, mobile number and email are required")
	ErrNotEligible       = errors.New("quote is not eligible")
	ErrInvalidTransition = errors.New("invalid wizard transition")
	ErrUnknownStep       = errors.New("unknown wizard step")
)

type Step int

const (
	CollectingBasics Step = iota
	ShowingQuote
	CollectingContact
)

var stepNames = map[Step]string{
	CollectingBasics:  "basics",
	ShowingQuote:      "quote",
	CollectingContact: "contact",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// Progress is the share of the flow completed at this step, in percent.
func (s Step) Progress() int {
	switch s {
	case CollectingBasics:
		return 33
	case ShowingQuote:
		return 66
	default:
		return 100
	}
}

// ParseStep maps a step name back to its Step.
func ParseStep(name string) (Step, error) {
	for step, n := range stepNames {
		if n == name {
			return step, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStep, name)
}

// Quoter produces a quote for a birthday.
type Quoter interface {
	CalculateQuote(birthday string) models.QuoteResult
}

// State is a snapshot of the flow. Quote is nil while collecting basics.
type State struct {
	Step  Step
	Form  models.FormData
	Quote *models.QuoteResult
}

// New returns an empty flow at its first step.
func New() State {
	return State{Step: CollectingBasics}
}

// WithForm returns a copy of s holding form.
func (s State) WithForm(form models.FormData) State {
	s.Form = form
	return s
}

// WithField returns a copy of s with one form field replaced.
func (s State) WithField(name, value string) (State, error) {
	switch name {
	case "birthday":
		s.Form.Birthday = value
	case "gender":
		s.Form.Gender = models.Gender(value)
	case "smoker":
		s.Form.Smoker = models.SmokerStatus(value)
	case "fullName":
		s.Form.FullName = value
	case "mobileNumber":
		s.Form.MobileNumber = value
	case "email":
		s.Form.Email = value
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return s, nil
}

// BasicsComplete reports whether the first step can be submitted.
func (s State) BasicsComplete() bool {
	return notBlank(s.Form.Birthday) && s.Form.Gender.Valid() && s.Form.Smoker.Valid()
}

// ContactComplete reports whether the contact step can be submitted.
func (s State) ContactComplete() bool {
	c := s.Form.ContactInfo
	return notBlank(c.FullName) && notBlank(c.MobileNumber) && notBlank(c.Email)
}

// Calculate quotes the entered birthday and moves to the quote display.
func (s State) Calculate(q Quoter) (State, error) {
	if s.Step != CollectingBasics {
		return s, transitionError(s.Step, ShowingQuote)
	}
	if !s.BasicsComplete() {
		return s, ErrIncompleteBasics
	}

	result := q.CalculateQuote(s.Form.Birthday)
	s.Quote = &result
	s.Step = ShowingQuote
	return s, nil
}

// Proceed moves from an eligible quote to the contact form.
func (s State) Proceed() (State, error) {
	if s.Step != ShowingQuote || s.Quote == nil {
		return s, transitionError(s.Step, CollectingContact)
	}
	if !s.Quote.Eligible {
		return s, ErrNotEligible
	}
	s.Step = CollectingContact
	return s, nil
}

// BackToInput discards the quote and returns to the first step. Entered
// values are kept.
func (s State) BackToInput() State {
	s.Step = CollectingBasics
	s.Quote = nil
	return s
}

// BackToQuote returns from the contact form to the quote display.
func (s State) BackToQuote() (State, error) {
	if s.Step != CollectingContact {
		return s, transitionError(s.Step, ShowingQuote)
	}
	s.Step = ShowingQuote
	return s, nil
}

// ReadyToSubmit checks that s can be handed to the submission collaborator.
func (s State) ReadyToSubmit() error {
	if s.Step != CollectingContact || s.Quote == nil {
		return fmt.Errorf("%w: cannot submit from %s", ErrInvalidTransition, s.Step)
	}
	if !s.ContactComplete() {
		return ErrIncompleteContact
	}
	return nil
}

// Resume rebuilds the state for step by replaying the flow from the start.
// The form travels with each request, so no state is kept between them.
func Resume(form models.FormData, step Step, q Quoter) (State, error) {
	s := New().WithForm(form)
	if step == CollectingBasics {
		return s, nil
	}

	s, err := s.Calculate(q)
	if err != nil || step == ShowingQuote {
		return s, err
	}

	if step != CollectingContact {
		return s, fmt.Errorf("%w: %d", ErrUnknownStep, int(step))
	}
	return s.Proceed()
}

func transitionError(from, to Step) error {
	return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, to)
}

func notBlank(v string) bool {
	return strings.TrimSpace(v) != ""
}
