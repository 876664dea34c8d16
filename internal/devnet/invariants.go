package devnet

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

type invariantRoute struct {
	name      string
	invariant sdk.Invariant
}

// invariantRegistry keeps registered routes in registration order so every
// block checks them the same way.
type invariantRegistry struct {
	routes []invariantRoute
}

var _ sdk.InvariantRegistry = (*invariantRegistry)(nil)

func (r *invariantRegistry) RegisterRoute(moduleName, route string, invar sdk.Invariant) {
	r.routes = append(r.routes, invariantRoute{name: moduleName + "/" + route, invariant: invar})
}

func (r *invariantRegistry) Routes() []string {
	names := make([]string, 0, len(r.routes))
	for _, route := range r.routes {
		names = append(names, route.name)
	}
	return names
}

// check runs the routes in order and reports the first broken one.
func (r *invariantRegistry) check(ctx sdk.Context) (string, string, bool) {
	for _, route := range r.routes {
		if msg, broken := route.invariant(ctx); broken {
			return route.name, msg, true
		}
	}
	return "", "", false
}
