package order

import (
	"encoding/json"
	"fmt"

	"resto/internal/pkg/errs"
)

// Status represents the lifecycle stage of an order.
//
// The full state machine, including the method-dependent branches, lives in
// ValidNextStatuses; Status itself only carries identity, naming, and
// terminality.
//
//	ORDERED ──┬──> PAYMENT_PENDING ──> PROCESSED ──┬──> ON_DELIVERY ──> COMPLETED
//	          │          (electronic)              │      (DIANTAR)
//	          └──> PROCESSED (CASH)                └──> READY ────────> COMPLETED
//	                                                   (AMBIL_SENDIRI)
//
// Every non-terminal status may also transition to CANCELLED.
// COMPLETED and CANCELLED are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusOrdered is the initial status assigned when an order is placed.
	StatusOrdered

	// StatusPaymentPending indicates an electronic payment awaits verification.
	StatusPaymentPending

	// StatusProcessed indicates the kitchen accepted the order.
	StatusProcessed

	// StatusOnDelivery indicates a courier is delivering the order (DIANTAR only).
	StatusOnDelivery

	// StatusReady indicates the order awaits customer pickup (AMBIL_SENDIRI only).
	StatusReady

	// StatusCompleted is the terminal success state.
	StatusCompleted

	// StatusCancelled is the terminal rejection state.
	StatusCancelled
)

// getStatusStrings returns the wire names for all Status values,
// including the invalid zero value.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "UNKNOWN",
		StatusOrdered:        "ORDERED",
		StatusPaymentPending: "PAYMENT_PENDING",
		StatusProcessed:      "PROCESSED",
		StatusOnDelivery:     "ON_DELIVERY",
		StatusReady:          "READY",
		StatusCompleted:      "COMPLETED",
		StatusCancelled:      "CANCELLED",
	}
}

// getValidStatusStrings returns only valid Status values to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusOrdered:        "ORDERED",
		StatusPaymentPending: "PAYMENT_PENDING",
		StatusProcessed:      "PROCESSED",
		StatusOnDelivery:     "ON_DELIVERY",
		StatusReady:          "READY",
		StatusCompleted:      "COMPLETED",
		StatusCancelled:      "CANCELLED",
	}
}

// AllStatuses returns every valid status. Useful for table-driven checks
// over the whole state machine.
func AllStatuses() []Status {
	return []Status{
		StatusOrdered,
		StatusPaymentPending,
		StatusProcessed,
		StatusOnDelivery,
		StatusReady,
		StatusCompleted,
		StatusCancelled,
	}
}

// StatusFromString parses a wire name ("ORDERED", "ON_DELIVERY", ...) into a
// Status. Returns a validation error for unrecognized names.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// StatusUnknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, or "UNKNOWN" for invalid values.
// Implements fmt.Stringer; safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// MarshalJSON writes the status as its wire name. Statuses appear inside
// permission rule conditions and API payloads where raw ints would leak
// enum ordering.
func (s Status) MarshalJSON() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON parses a wire name back into a Status.
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	status, err := StatusFromString(name)
	if err != nil {
		return err
	}
	*s = status
	return nil
}
