// Package access models the authorization vocabulary: roles, resources,
// actions, and the conditional rules that tie them together. The condition
// set is deliberately closed — a struct with one optional field per named
// predicate — so the evaluator can be exhaustive instead of probing an
// untyped payload.
package access
