package cmd

import (
	"github.com/c9s/signalcore/pkg/strategy"
	"github.com/c9s/signalcore/pkg/strategy/ematrend"
	"github.com/c9s/signalcore/pkg/strategy/macdcross"
)

// builtinCatalog registers the built-in strategies. The catalog is built
// once at startup and handed to the engine by reference.
func builtinCatalog() *strategy.Catalog {
	catalog := strategy.NewCatalog()
	catalog.Register(macdcross.ID, macdcross.New)
	catalog.Register(ematrend.ID, ematrend.New)
	return catalog
}
