// Package registry holds domain-keyed expert rules and static knowledge
// records for the advisory engine.
//
// The registry is read-mostly: every generation pass reads a consistent
// snapshot while AddRule/RemoveRule/AddKnowledge mutate under a single writer
// lock using copy-on-write, so concurrent readers never observe a torn
// update.
package registry

import (
	"strings"
	"sync"
	"sync/atomic"

	dErrors "counsel/pkg/domain-errors"
)

// snapshot is the immutable state readers see. Mutations build a new snapshot
// and swap the pointer; existing readers keep the maps they already hold.
type snapshot struct {
	rules     map[string][]Rule
	knowledge map[string]Record
}

// Registry is the process-wide rule and knowledge store.
type Registry struct {
	mu      sync.Mutex // serializes writers
	current atomic.Pointer[snapshot]
}

// New constructs a registry pre-populated with the built-in expert rules and
// default knowledge for the known domains.
func New() *Registry {
	r := &Registry{}

	snap := &snapshot{
		rules:     make(map[string][]Rule),
		knowledge: defaultKnowledge(),
	}
	for _, rule := range builtinRules(r.Knowledge) {
		key := strings.ToLower(rule.Domain())
		snap.rules[key] = append(snap.rules[key], rule)
	}
	r.current.Store(snap)

	return r
}

// AddRule registers a rule for the given domain. Domains are matched
// case-insensitively.
//
// Errors: CodeInvalidInput for an empty domain or nil rule.
func (r *Registry) AddRule(dom string, rule Rule) error {
	dom = strings.ToLower(strings.TrimSpace(dom))
	if dom == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "rule domain cannot be empty")
	}
	if rule == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "rule cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.clone()
	snap.rules[dom] = append(append([]Rule(nil), snap.rules[dom]...), rule)
	r.current.Store(snap)
	return nil
}

// RemoveRule drops all rules registered for the domain. Removing an unknown
// domain is a no-op.
func (r *Registry) RemoveRule(dom string) {
	dom = strings.ToLower(strings.TrimSpace(dom))

	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.clone()
	delete(snap.rules, dom)
	r.current.Store(snap)
}

// AddKnowledge installs or hot-swaps the knowledge record for a domain.
//
// Errors: CodeInvalidInput when the record fails schema validation,
// CodeConflict when a newer version is already installed.
func (r *Registry) AddKnowledge(dom string, rec Record) error {
	dom = strings.ToLower(strings.TrimSpace(dom))
	if dom == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "knowledge domain cannot be empty")
	}
	rec.Domain = dom
	if err := rec.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.clone()
	if existing, ok := snap.knowledge[dom]; ok && existing.Version > rec.Version {
		return dErrors.Newf(dErrors.CodeConflict,
			"knowledge for %q is already at version %d", dom, existing.Version)
	}
	snap.knowledge[dom] = rec
	r.current.Store(snap)
	return nil
}

// RulesFor returns the rules registered for a domain from the current
// snapshot. The returned slice must not be mutated.
func (r *Registry) RulesFor(dom string) []Rule {
	snap := r.current.Load()
	return snap.rules[strings.ToLower(dom)]
}

// Knowledge returns the knowledge record for a domain from the current
// snapshot.
func (r *Registry) Knowledge(dom string) (Record, bool) {
	snap := r.current.Load()
	rec, ok := snap.knowledge[strings.ToLower(dom)]
	return rec, ok
}

// Domains lists the domains that currently have rules, for introspection.
func (r *Registry) Domains() []string {
	snap := r.current.Load()
	domains := make([]string, 0, len(snap.rules))
	for dom := range snap.rules {
		domains = append(domains, dom)
	}
	return domains
}

// clone copies the current snapshot's maps so a writer can mutate freely.
// Callers must hold r.mu.
func (r *Registry) clone() *snapshot {
	old := r.current.Load()
	snap := &snapshot{
		rules:     make(map[string][]Rule, len(old.rules)),
		knowledge: make(map[string]Record, len(old.knowledge)),
	}
	for dom, rules := range old.rules {
		snap.rules[dom] = rules
	}
	for dom, rec := range old.knowledge {
		snap.knowledge[dom] = rec
	}
	return snap
}
