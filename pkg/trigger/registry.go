package trigger

import (
	"sort"

	"github.com/c9s/signalcore/pkg/types"
)

// Registry maps trigger types to their stateless singleton policies. It is
// constructed once at startup and passed by reference to its consumers.
type Registry struct {
	policies map[Type]Policy
}

func NewRegistry() *Registry {
	r := &Registry{
		policies: make(map[Type]Policy),
	}

	for _, policy := range []Policy{
		oncePolicy{},
		eachKlinePolicy{},
		eachKlineClosePolicy{},
		eachMinutePolicy{},
	} {
		r.policies[policy.Type()] = policy
	}

	return r
}

func (r *Registry) Get(t Type) (Policy, error) {
	policy, ok := r.policies[t]
	if !ok {
		return nil, types.NewConfigurationError("unknown trigger type %q", t)
	}

	return policy, nil
}

func (r *Registry) Types() (ts []Type) {
	for t := range r.policies {
		ts = append(ts, t)
	}

	sort.Slice(ts, func(i, j int) bool { return ts[i] < ts[j] })
	return ts
}

// NewState produces the zero-value trigger state for a type, used when a
// subscription is first created.
func (r *Registry) NewState(t Type) (State, error) {
	if _, err := r.Get(t); err != nil {
		return State{}, err
	}

	return State{Type: t}, nil
}
