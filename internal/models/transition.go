package models

import "fmt"

// TransitionPolicy decides whether a report may move between statuses.
type TransitionPolicy interface {
	Allow(from, to Status) error
}

// Unconstrained allows any status to be set from any other.
type Unconstrained struct{}

// Allow always permits the transition.
func (Unconstrained) Allow(from, to Status) error { return nil }

// Strict enforces a review workflow: PENDING may go anywhere, verdicts may
// only be refined or archived, and ARCHIVED is terminal.
type Strict struct{}

var strictTransitions = map[Status][]Status{
	StatusPending:  {StatusVerified, StatusFalse, StatusTrue, StatusArchived},
	StatusVerified: {StatusTrue, StatusFalse, StatusArchived},
	StatusTrue:     {StatusArchived},
	StatusFalse:    {StatusArchived},
}

// Allow returns ErrInvalidTransition unless the table permits from → to.
func (Strict) Allow(from, to Status) error {
	for _, s := range strictTransitions[from] {
		if s == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
