package order

import (
	"fmt"

	"orderservice/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Preparing ──> OutForDelivery ──> Delivered
//	   │            │             │
//	   └────────────┴─────────────┴──> Cancelled
//
// Forward moves may skip intermediate states but never go back. Delivered and
// Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a freshly placed order.
	Pending

	// Confirmed means the restaurant accepted the order.
	Confirmed

	// Preparing means the kitchen is working on the order.
	Preparing

	// OutForDelivery means the order left the kitchen. Cancellation is closed from here on.
	OutForDelivery

	// Delivered is a terminal state.
	Delivered

	// Cancelled is a terminal state reachable only from the kitchen-side states.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Pending:        "pending",
		Confirmed:      "confirmed",
		Preparing:      "preparing",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
	}
}

// progression lists the forward path in order; a status' index is its rank.
var progression = []Status{Pending, Confirmed, Preparing, OutForDelivery, Delivered}

// ParseStatus converts the wire name ("out_for_delivery", ...) back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that s is one of the defined statuses (Unknown excluded).
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// MarshalText encodes the status by its wire name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a wire name produced by MarshalText.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// IsTerminal reports whether no further transition may leave s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

func (s Status) rank() int {
	for i, p := range progression {
		if p == s {
			return i
		}
	}
	return -1
}

// ValidateAdvance checks that target lies strictly later on the forward path than s.
// Terminal statuses, Cancelled as a target and backward or repeated moves are rejected.
func (s Status) ValidateAdvance(target Status) error {
	if s.IsTerminal() {
		return errs.NewStatusTransitionIsNotAllowedErrorWithCause(
			s.String(), target.String(), fmt.Errorf("%s is a terminal status", s),
		)
	}

	from, to := s.rank(), target.rank()
	if from < 0 || to < 0 || to <= from {
		return errs.NewStatusTransitionIsNotAllowedError(s.String(), target.String())
	}
	return nil
}

// Advance returns target if ValidateAdvance allows the move.
func (s Status) Advance(target Status) (Status, error) {
	if err := s.ValidateAdvance(target); err != nil {
		return Unknown, err
	}
	return target, nil
}

// ValidateCancel checks that the order has not left the kitchen yet.
//
// Cancellable: Pending, Confirmed, Preparing.
// Not cancellable: OutForDelivery, Delivered, Cancelled, Unknown.
func (s Status) ValidateCancel() error {
	switch s {
	case Pending, Confirmed, Preparing:
		return nil
	case Unknown, OutForDelivery, Delivered, Cancelled:
	}
	return errs.NewStatusTransitionIsNotAllowedError(s.String(), Cancelled.String())
}

// Cancel returns Cancelled if ValidateCancel allows it.
func (s Status) Cancel() (Status, error) {
	if err := s.ValidateCancel(); err != nil {
		return Unknown, err
	}
	return Cancelled, nil
}
