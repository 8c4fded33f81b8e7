package privacy

import "kucukaslan/bridge/domain"

// Engine applies include/exclude mutations to a Store. Apply pre-validates
// every mode name and feature identifier before mutating anything, so a
// request naming an unknown mode or feature leaves all rule sets unchanged.
type Engine struct {
	store *Store
}

func NewEngine(store *Store) *Engine {
	return &Engine{store: store}
}

// Apply runs one privacy mutation across every named mode. Include unions the
// names into the targeted allowed set; exclude removes them from it. For
// property rules an empty event scope targets the wildcard event key.
// On success it returns a change record describing the applied mutation.
func (e *Engine) Apply(req *domain.PrivacyRequest) (*domain.RuleChange, error) {
	modes := make([]domain.Mode, 0, len(req.Modes))
	for _, name := range req.Modes {
		m, err := domain.ParseMode(name)
		if err != nil {
			return nil, err
		}
		modes = append(modes, m)
	}

	// For storage features the names travel onward as the collector's
	// storage-key strings, resolved once here at the boundary.
	names := req.Names
	if req.Kind == domain.RuleStorageFeatures {
		names = make([]string, 0, len(req.Names))
		for _, id := range req.Names {
			f, err := domain.ParseStorageFeature(id)
			if err != nil {
				return nil, err
			}
			names = append(names, f.StorageKey())
		}
	}

	scope := req.EventScope
	if req.Kind == domain.RuleProperties && len(scope) == 0 {
		scope = []string{domain.WildcardEvent}
	}

	for _, m := range modes {
		r := e.store.mode(m)
		r.mu.Lock()
		switch req.Kind {
		case domain.RuleStorageFeatures:
			mutate(r.allowedFeatures, names, req.Include)
		case domain.RuleEvents:
			mutate(r.allowedEvents, names, req.Include)
		case domain.RuleProperties:
			for _, event := range scope {
				props, ok := r.allowedProperties[event]
				if !ok {
					if !req.Include {
						continue
					}
					props = make(map[string]struct{}, len(names))
					r.allowedProperties[event] = props
				}
				mutate(props, names, req.Include)
			}
		}
		r.mu.Unlock()
	}

	change := &domain.RuleChange{
		Kind:    req.Kind,
		Include: req.Include,
		Names:   names,
		Modes:   modeNameList(modes),
	}
	if req.Kind == domain.RuleProperties {
		change.EventScope = scope
	}
	return change, nil
}

func mutate(set map[string]struct{}, names []string, include bool) {
	if include {
		addAll(set, names...)
		return
	}
	removeAll(set, names...)
}

func modeNameList(modes []domain.Mode) []string {
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = m.String()
	}
	return names
}
