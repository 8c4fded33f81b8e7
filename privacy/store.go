// Package privacy maintains the per-mode privacy rule sets and applies
// include/exclude mutations against them.
package privacy

import (
	"sort"
	"sync"

	"kucukaslan/bridge/domain"
)

// ruleSets holds one mode's six rule sets. The allowed and forbidden sides of
// each dimension are independent; a mutation on one side never touches the
// other. The mutex serializes writers across concurrent bridge calls.
type ruleSets struct {
	mu                  sync.Mutex
	allowedFeatures     map[string]struct{}
	forbiddenFeatures   map[string]struct{}
	allowedEvents       map[string]struct{}
	forbiddenEvents     map[string]struct{}
	allowedProperties   map[string]map[string]struct{}
	forbiddenProperties map[string]map[string]struct{}
}

func newRuleSets() *ruleSets {
	return &ruleSets{
		allowedFeatures:     make(map[string]struct{}),
		forbiddenFeatures:   make(map[string]struct{}),
		allowedEvents:       make(map[string]struct{}),
		forbiddenEvents:     make(map[string]struct{}),
		allowedProperties:   make(map[string]map[string]struct{}),
		forbiddenProperties: make(map[string]map[string]struct{}),
	}
}

// Store is the process-wide privacy rule registry, one entry per mode.
// Instances are independent, so tests can build their own.
type Store struct {
	modes map[domain.Mode]*ruleSets
}

// NewStore creates a registry with every mode present and seeded with its
// startup defaults. Defaults are mutable like any other rule afterwards.
func NewStore() *Store {
	s := &Store{modes: make(map[domain.Mode]*ruleSets, len(domain.AllModes))}
	for _, m := range domain.AllModes {
		s.modes[m] = newRuleSets()
	}
	s.seedDefaults()
	return s
}

// seedDefaults installs the startup rule sets. Opt-in and custom allow
// everything; exempt keeps a reduced storage surface; the consent-less modes
// forbid storage except what the privacy feature itself needs.
func (s *Store) seedDefaults() {
	allFeatures := make([]string, 0, len(domain.AllStorageFeatures))
	for _, f := range domain.AllStorageFeatures {
		allFeatures = append(allFeatures, f.StorageKey())
	}

	optIn := s.modes[domain.ModeOptIn]
	addAll(optIn.allowedFeatures, allFeatures...)
	addAll(optIn.allowedEvents, domain.WildcardEvent)
	optIn.allowedProperties[domain.WildcardEvent] = setOf(domain.WildcardEvent)

	custom := s.modes[domain.ModeCustom]
	addAll(custom.allowedFeatures, domain.FeaturePrivacy.StorageKey())
	addAll(custom.allowedEvents, domain.WildcardEvent)
	custom.allowedProperties[domain.WildcardEvent] = setOf(domain.WildcardEvent)

	exempt := s.modes[domain.ModeExempt]
	addAll(exempt.allowedFeatures,
		domain.FeatureVisitor.StorageKey(),
		domain.FeaturePrivacy.StorageKey(),
		domain.FeatureLifecycle.StorageKey(),
	)
	addAll(exempt.allowedEvents, domain.WildcardEvent)

	optOut := s.modes[domain.ModeOptOut]
	addAll(optOut.allowedFeatures, domain.FeaturePrivacy.StorageKey())
	addAll(optOut.forbiddenFeatures,
		domain.FeatureVisitor.StorageKey(),
		domain.FeatureCrash.StorageKey(),
		domain.FeatureLifecycle.StorageKey(),
		domain.FeatureUser.StorageKey(),
	)

	noConsent := s.modes[domain.ModeNoConsent]
	addAll(noConsent.forbiddenFeatures, allFeatures...)

	noStorage := s.modes[domain.ModeNoStorage]
	addAll(noStorage.forbiddenFeatures, allFeatures...)
	addAll(noStorage.allowedEvents, domain.WildcardEvent)
}

func (s *Store) mode(m domain.Mode) *ruleSets {
	return s.modes[m]
}

// Snapshot returns the full rule state, keyed by mode name, with sorted
// members so the representation is stable.
func (s *Store) Snapshot() domain.RuleSnapshot {
	snap := make(domain.RuleSnapshot, len(s.modes))
	for m := range s.modes {
		snap[m.String()] = s.SnapshotMode(m)
	}
	return snap
}

// SnapshotMode returns one mode's rule state.
func (s *Store) SnapshotMode(m domain.Mode) domain.ModeRules {
	r := s.modes[m]
	r.mu.Lock()
	defer r.mu.Unlock()
	return domain.ModeRules{
		AllowedStorageFeatures:   sortedMembers(r.allowedFeatures),
		ForbiddenStorageFeatures: sortedMembers(r.forbiddenFeatures),
		AllowedEvents:            sortedMembers(r.allowedEvents),
		ForbiddenEvents:          sortedMembers(r.forbiddenEvents),
		AllowedProperties:        sortedPropertyRules(r.allowedProperties),
		ForbiddenProperties:      sortedPropertyRules(r.forbiddenProperties),
	}
}

// Restore replaces the rule state with a previously taken snapshot, e.g. the
// Redis mirror at startup. Snapshot entries for unknown mode names are
// skipped.
func (s *Store) Restore(snap domain.RuleSnapshot) {
	for name, rules := range snap {
		m, err := domain.ParseMode(name)
		if err != nil {
			continue
		}
		r := s.modes[m]
		r.mu.Lock()
		r.allowedFeatures = setOf(rules.AllowedStorageFeatures...)
		r.forbiddenFeatures = setOf(rules.ForbiddenStorageFeatures...)
		r.allowedEvents = setOf(rules.AllowedEvents...)
		r.forbiddenEvents = setOf(rules.ForbiddenEvents...)
		r.allowedProperties = propertyRulesOf(rules.AllowedProperties)
		r.forbiddenProperties = propertyRulesOf(rules.ForbiddenProperties)
		r.mu.Unlock()
	}
}

func addAll(set map[string]struct{}, names ...string) {
	for _, name := range names {
		set[name] = struct{}{}
	}
}

func removeAll(set map[string]struct{}, names ...string) {
	for _, name := range names {
		delete(set, name)
	}
}

func setOf(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	addAll(set, names...)
	return set
}

func propertyRulesOf(rules map[string][]string) map[string]map[string]struct{} {
	out := make(map[string]map[string]struct{}, len(rules))
	for event, props := range rules {
		out[event] = setOf(props...)
	}
	return out
}

func sortedMembers(set map[string]struct{}) []string {
	members := make([]string, 0, len(set))
	for name := range set {
		members = append(members, name)
	}
	sort.Strings(members)
	return members
}

func sortedPropertyRules(rules map[string]map[string]struct{}) map[string][]string {
	out := make(map[string][]string, len(rules))
	for event, props := range rules {
		out[event] = sortedMembers(props)
	}
	return out
}
