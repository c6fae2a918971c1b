package order

import (
	"fmt"

	"orderhub/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──┬──> Accepted ──> Prepared ──> OutForDelivery ──> Delivered
//	          │
//	          └──> Cancelled
//
// Delivered and Cancelled are terminal. The string forms are part of the
// wire contract with clients and must not change.
type Status int

const (
	// Unknown (0) catches uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a placed order.
	Pending

	// Accepted means the restaurant confirmed the order.
	Accepted

	// Prepared means the food is ready for pick-up.
	Prepared

	// OutForDelivery means a courier picked the order up.
	OutForDelivery

	// Delivered is terminal.
	Delivered

	// Cancelled is terminal. Only reachable from Pending.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Pending:        "Pending",
		Accepted:       "Accepted",
		Prepared:       "Prepared",
		OutForDelivery: "OutForDelivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "Pending",
		Accepted:       "Accepted",
		Prepared:       "Prepared",
		OutForDelivery: "OutForDelivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

// getAllowedTransitions lists, per source status, the statuses it may move to.
// Terminal statuses have no entry.
func getAllowedTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal statuses have no outgoing edges
	return map[Status][]Status{
		Pending:        {Accepted, Cancelled},
		Accepted:       {Prepared},
		Prepared:       {OutForDelivery},
		OutForDelivery: {Delivered},
	}
}

// AllStatuses returns every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Accepted, Prepared, OutForDelivery, Delivered, Cancelled}
}

// ParseStatus converts the wire form back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that s is one of the six lifecycle statuses.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer and is safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether target is a permitted next status.
// Self-transitions are never permitted.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range getAllowedTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// ValidateTransition returns an InvalidTransitionError when s -> target is not an allowed edge.
func (s Status) ValidateTransition(target Status) error {
	if err := target.Validate(); err != nil {
		return errs.NewInvalidTransitionErrorWithCause(s.String(), target.String(), err)
	}
	if s.IsTerminal() {
		return errs.NewInvalidTransitionErrorWithCause(
			s.String(), target.String(),
			fmt.Errorf("%s is a terminal status", s.String()),
		)
	}
	if !s.CanTransitionTo(target) {
		return errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return nil
}

// ValidateCanHaveCourier checks consistency between status and courier assignment:
// OutForDelivery and Delivered orders carry a courier, earlier statuses do not.
// A cancelled order never had one.
func (s Status) ValidateCanHaveCourier(courier bool) error {
	needsCourier := s == OutForDelivery || s == Delivered
	if courier && !needsCourier {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a courier", s.String()),
		)
	}
	if !courier && needsCourier {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no courier", s.String()),
		)
	}
	return nil
}
