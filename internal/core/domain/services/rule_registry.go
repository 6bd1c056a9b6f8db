package services

import (
	"context"
	"sync"

	"resto/internal/core/domain/model/access"
)

// RuleStore is the persistence contract the registry caches over.
type RuleStore interface {
	// GetAll retrieves every persisted rule.
	GetAll(ctx context.Context) ([]access.Rule, error)

	// Upsert inserts the rule or replaces the existing rule with the same
	// (role, resource, action) triple.
	Upsert(ctx context.Context, rule access.Rule) error
}

// CachedRuleRegistry holds the authorization rule set with a process-local
// cache over a persistent store. Rules are read on every permission check
// and edited rarely, so the whole set is cached on first read and
// invalidated on Upsert.
//
// Readers proceed concurrently under a read lock; writers serialize among
// themselves. Other processes observe administrative edits only through
// their own cache reload, which matches the eventual-consistency contract
// of the permission cache.
type CachedRuleRegistry struct {
	store RuleStore

	mu     sync.RWMutex
	byRole map[access.Role][]access.Rule
	loaded bool
}

// NewCachedRuleRegistry creates a registry over the given store. The cache
// starts cold and fills on first read.
func NewCachedRuleRegistry(store RuleStore) *CachedRuleRegistry {
	return &CachedRuleRegistry{store: store}
}

// RulesFor returns the rules for one role. Roles without rules yield an
// empty slice, which the evaluator treats as deny-all.
func (r *CachedRuleRegistry) RulesFor(ctx context.Context, role access.Role) ([]access.Rule, error) {
	if err := role.Validate(); err != nil {
		return nil, err
	}

	grouped, err := r.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return grouped[role], nil
}

// AllRules returns every rule grouped by role, for administrative display.
func (r *CachedRuleRegistry) AllRules(ctx context.Context) (map[access.Role][]access.Rule, error) {
	grouped, err := r.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	// Copy so callers cannot mutate the cache.
	result := make(map[access.Role][]access.Rule, len(grouped))
	for role, rules := range grouped {
		result[role] = append([]access.Rule(nil), rules...)
	}
	return result, nil
}

// Upsert writes the rule through to the store and invalidates the cache.
// The store replaces on (role, resource, action) conflict, preserving the
// uniqueness invariant.
func (r *CachedRuleRegistry) Upsert(ctx context.Context, rule access.Rule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Upsert(ctx, rule); err != nil {
		return err
	}

	r.byRole = nil
	r.loaded = false
	return nil
}

// Invalidate drops the cache so the next read reloads from the store.
// Used after out-of-band edits, e.g. seeding.
func (r *CachedRuleRegistry) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byRole = nil
	r.loaded = false
}

// snapshot returns the cached grouping, loading it from the store if cold.
func (r *CachedRuleRegistry) snapshot(ctx context.Context) (map[access.Role][]access.Rule, error) {
	r.mu.RLock()
	if r.loaded {
		defer r.mu.RUnlock()
		return r.byRole, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loaded {
		return r.byRole, nil
	}

	rules, err := r.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(map[access.Role][]access.Rule)
	for _, rule := range rules {
		grouped[rule.Role()] = append(grouped[rule.Role()], rule)
	}

	r.byRole = grouped
	r.loaded = true
	return grouped, nil
}
