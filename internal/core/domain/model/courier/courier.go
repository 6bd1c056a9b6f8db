package courier

import (
	"errors"
	"strings"

	"resto/internal/core/domain/model/kernel"
	"resto/internal/pkg/errs"
	"resto/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier represents a delivery courier. It is an independently owned
// aggregate: orders reference couriers by ID but never own them, and
// deactivating a courier does not touch existing assignments — it only
// blocks new ones.
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// name is the courier's human-readable name
	name string
	// isActive controls whether the courier may receive new assignments
	isActive bool
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier creates an active Courier with the given identity and name.
func NewCourier(id kernel.UUID, name string) (*Courier, error) {
	courier := &Courier{
		isActive: true,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// RestoreCourier reconstructs a Courier from persistent storage,
// preserving its activity flag.
func RestoreCourier(id kernel.UUID, name string, isActive bool) (*Courier, error) {
	courier, err := NewCourier(id, name)
	if err != nil {
		return nil, err
	}

	courier.isActive = isActive
	return courier, nil
}

// Validate ensures the Courier was created through a factory method.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's human-readable name.
func (c *Courier) Name() string {
	return c.name
}

// IsActive reports whether the courier may receive new assignments.
func (c *Courier) IsActive() bool {
	return c.isActive
}

// Activate marks the courier as available for new assignments.
func (c *Courier) Activate() {
	c.isActive = true
}

// Deactivate blocks the courier from receiving new assignments.
func (c *Courier) Deactivate() {
	c.isActive = false
}

// setID validates and sets the courier's unique identifier.
func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

// setName validates and sets the courier's name.
func (c *Courier) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}
