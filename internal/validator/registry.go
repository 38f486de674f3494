package validator

// Registry holds validators keyed by rule key, preserving registration order
// so warnings always come out in the same sequence.
type Registry struct {
	order      []Validator
	validators map[string]Validator
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{validators: make(map[string]Validator)}
}

// Register adds a validator. Registering an existing key replaces it in place.
func (r *Registry) Register(v Validator) {
	if _, ok := r.validators[v.RuleKey()]; ok {
		for i := range r.order {
			if r.order[i].RuleKey() == v.RuleKey() {
				r.order[i] = v
			}
		}
	} else {
		r.order = append(r.order, v)
	}
	r.validators[v.RuleKey()] = v
}

// Get returns the validator for a given rule key, or nil if not found.
func (r *Registry) Get(key string) Validator {
	return r.validators[key]
}

// All returns all registered validators in registration order.
func (r *Registry) All() []Validator {
	out := make([]Validator, len(r.order))
	copy(out, r.order)
	return out
}
