package kernel

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"orderservice/internal/pkg/errs"
)

const (
	orderIDPrefix = "ORD-"
	orderIDDigits = 6
)

// ErrOrderIDIsNotConstructed is returned when validating a zero-value OrderID.
var ErrOrderIDIsNotConstructed = errors.New("OrderID must be created via NewOrderID or OrderIDFromString")

// OrderID identifies an order as "ORD-" followed by a zero-padded sequence number,
// e.g. ORD-000042. The sequence is allocated by the order store and starts at 1.
//
// The zero value is invalid. OrderID is comparable and safe to use as a map key.
type OrderID struct {
	seq uint64
}

// NewOrderID builds the identifier for the given sequence number.
// Sequence numbers start at 1; zero is rejected.
//
// Example:
//
//	id, _ := kernel.NewOrderID(1)
//	fmt.Println(id) // ORD-000001
func NewOrderID(seq uint64) (OrderID, error) {
	if seq == 0 {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause(
			"order id sequence is invalid",
			fmt.Errorf("%d is not greater than 0", seq),
		)
	}
	return OrderID{seq: seq}, nil
}

// OrderIDFromString parses the textual form produced by String. Only the canonical
// form is accepted: "ORD-0000001" does not name ORD-000001. Sequences longer than
// six digits are accepted once the counter outgrows the padding.
func OrderIDFromString(s string) (OrderID, error) {
	digits, ok := strings.CutPrefix(s, orderIDPrefix)
	if !ok || len(digits) < orderIDDigits {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause(
			"order id is invalid",
			fmt.Errorf("%q does not match %s%s", s, orderIDPrefix, strings.Repeat("#", orderIDDigits)),
		)
	}

	seq, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause("order id is invalid", err)
	}

	id, err := NewOrderID(seq)
	if err != nil {
		return OrderID{}, err
	}
	if id.String() != s {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause(
			"order id is invalid",
			fmt.Errorf("%q is not the canonical form %q", s, id.String()),
		)
	}
	return id, nil
}

// MustOrderID is NewOrderID for sequences known to be valid. It panics otherwise.
func MustOrderID(seq uint64) OrderID {
	id, err := NewOrderID(seq)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the "ORD-######" representation.
func (id OrderID) String() string {
	return fmt.Sprintf("%s%0*d", orderIDPrefix, orderIDDigits, id.seq)
}

// Sequence returns the numeric part of the identifier.
func (id OrderID) Sequence() uint64 {
	return id.seq
}

// IsEqual reports whether both identifiers hold the same sequence.
func (id OrderID) IsEqual(other OrderID) bool {
	return id.seq == other.seq
}

// Validate returns ErrOrderIDIsNotConstructed for the zero value.
func (id OrderID) Validate() error {
	if id.seq == 0 {
		return ErrOrderIDIsNotConstructed
	}
	return nil
}
