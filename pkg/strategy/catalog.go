package strategy

import (
	"encoding/json"
	"sort"

	"github.com/pkg/errors"

	"github.com/c9s/signalcore/pkg/types"
)

// Factory builds a configured strategy instance from JSON parameters.
type Factory func(params json.RawMessage) (Strategy, error)

// Catalog is the strategy metadata collaborator: it maps strategy IDs to
// factories and validates parameters at subscribe time, never on the
// per-event hot path. Register all strategies before serving events.
type Catalog struct {
	factories map[string]Factory
}

func NewCatalog() *Catalog {
	return &Catalog{
		factories: make(map[string]Factory),
	}
}

func (c *Catalog) Register(id string, factory Factory) {
	c.factories[id] = factory
}

func (c *Catalog) Has(id string) bool {
	_, ok := c.factories[id]
	return ok
}

func (c *Catalog) IDs() (ids []string) {
	for id := range c.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// New instantiates and validates a strategy. Unknown IDs and invalid
// parameters are configuration errors surfaced to the caller.
func (c *Catalog) New(id string, params json.RawMessage) (Strategy, error) {
	factory, ok := c.factories[id]
	if !ok {
		return nil, types.NewConfigurationError("unknown strategy type %q", id)
	}

	s, err := factory(params)
	if err != nil {
		return nil, errors.Wrapf(err, "can not build strategy %s", id)
	}

	if validator, ok := s.(Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, types.NewConfigurationError("invalid parameters for strategy %s: %v", id, err)
		}
	}

	if err := s.Indicators().Validate(); err != nil {
		return nil, types.NewConfigurationError("invalid indicator config for strategy %s: %v", id, err)
	}

	return s, nil
}
