// Package form models the client-observable state of the sign-up form.
package form

import (
	"errors"
	"fmt"

	"github.com/nfrund/atelier/internal/domain"
)

// State of a sign-up form instance.
type State int

const (
	Editing State = iota
	Submitting
	ErrorShown
	ConfirmationShown
	InvalidLinkShown
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	case ErrorShown:
		return "error_shown"
	case ConfirmationShown:
		return "confirmation_shown"
	case InvalidLinkShown:
		return "invalid_link_shown"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ParseState is the inverse of State.String. Unknown names report false.
func ParseState(name string) (State, bool) {
	for s := Editing; s <= InvalidLinkShown; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return Editing, false
}

// ErrInvalidTransition is returned for events the current state does not accept.
var ErrInvalidTransition = errors.New("invalid form transition")

// Machine is the sign-up form state machine. It is not safe for concurrent
// use; one machine belongs to one request.
type Machine struct {
	state       State
	submitError string
	linkError   string
}

// NewSignup starts a machine. A non-empty linkError (the error_description
// query parameter) puts it into InvalidLinkShown for good.
func NewSignup(linkError string) *Machine {
	if linkError != "" {
		return &Machine{state: InvalidLinkShown, linkError: linkError}
	}
	return &Machine{state: Editing}
}

// Resume rebuilds the machine of a form rendered in state s, as posted
// back by the client. Only states a rendered form can be in are restored;
// anything else starts over in Editing. The provider message is not
// carried, only the fact that one is on screen.
func Resume(s State) *Machine {
	switch s {
	case ErrorShown, ConfirmationShown:
		return &Machine{state: s}
	}
	return &Machine{state: Editing}
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// SubmitError is the provider message shown in ErrorShown.
func (m *Machine) SubmitError() string { return m.submitError }

// LinkError is the message shown in InvalidLinkShown.
func (m *Machine) LinkError() string { return m.linkError }

// Submit starts a submission. Only one may be outstanding.
func (m *Machine) Submit() error {
	switch m.state {
	case Editing, ErrorShown:
		m.submitError = ""
		m.state = Submitting
		return nil
	}
	return m.reject("submit")
}

// Change records a field edit. An error on screen is cleared right away,
// before the form is revalidated.
func (m *Machine) Change() error {
	switch m.state {
	case Editing:
		return nil
	case ErrorShown:
		m.submitError = ""
		m.state = Editing
		return nil
	}
	return m.reject("change")
}

// Resolve applies the provider response of the outstanding submission.
func (m *Machine) Resolve(err error) error {
	if m.state != Submitting {
		return m.reject("resolve")
	}
	if err != nil {
		m.submitError = domain.AsProviderError(err).Message
		m.state = ErrorShown
		return nil
	}
	m.state = ConfirmationShown
	return nil
}

func (m *Machine) reject(event string) error {
	return fmt.Errorf("%w: %s in %s", ErrInvalidTransition, event, m.state)
}
