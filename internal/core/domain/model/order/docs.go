// Package order implements the order aggregate and its lifecycle state
// machine. The valid-transition table in transitions.go is the single
// authoritative definition of which status changes are legal; the Order
// aggregate enforces it, together with the courier-assignment precondition,
// on every mutation.
package order
