// Package services contains stateless domain services: the permission
// evaluator that decides allow/deny for authorization requests, and the
// cached rule registry it reads from.
package services
