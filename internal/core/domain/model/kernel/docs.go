// Package kernel contains shared value objects used across all domain
// aggregates. These are the building blocks of the domain model and carry
// no business rules of their own beyond self-validation.
package kernel
