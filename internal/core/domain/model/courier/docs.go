// Package courier implements the courier aggregate. A courier's activity
// flag gates new order assignments; the order aggregate only ever holds a
// reference to a courier, never the courier itself.
package courier
