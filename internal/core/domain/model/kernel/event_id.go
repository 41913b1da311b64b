package kernel

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrEventIDIsNotConstructed indicates a zero-value EventID.
var ErrEventIDIsNotConstructed = errors.New("EventID must be created via NewEventID or EventIDFromString")

// EventID identifies a single domain event. It wraps a random (version 4) UUID so
// consumers of published events can deduplicate redeliveries.
type EventID struct {
	id uuid.UUID
}

// NewEventID generates a new random identifier.
func NewEventID() EventID {
	return EventID{id: uuid.New()}
}

// EventIDFromString parses the canonical UUID text form.
func EventIDFromString(s string) (EventID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return EventID{}, fmt.Errorf("invalid UUID format: %w", err)
	}

	eventID := EventID{id: id}
	if err = eventID.Validate(); err != nil {
		return EventID{}, err
	}
	return eventID, nil
}

// String returns the canonical UUID text form.
func (e EventID) String() string {
	return e.id.String()
}

// IsEqual reports whether both identifiers are the same UUID.
func (e EventID) IsEqual(other EventID) bool {
	return e.id == other.id
}

// Validate returns ErrEventIDIsNotConstructed for the nil UUID.
func (e EventID) Validate() error {
	if e.id == uuid.Nil {
		return ErrEventIDIsNotConstructed
	}
	return nil
}
