package policy

import (
	"log/slog"

	"framepass/internal/feature"
	"framepass/internal/logging"
	"framepass/internal/plan"
)

// Registry is the (kind, engine) dispatch table.
type Registry struct {
	table [feature.KindCount][feature.EngineCount]*Handler
	order []*Handler
}

// NewRegistry builds the table with every supported handler. Plan nodes are
// drawn from pool.
func NewRegistry(pool *plan.Pool, logger *slog.Logger) *Registry {
	logger = logging.NewComponentLogger(logger, "policy")
	r := &Registry{}
	r.register(newHandler(handlerSfcCsc, feature.CscOnSfc, pool, logger))
	r.register(newHandler(handlerVeboxCsc, feature.CscOnVebox, pool, logger))
	r.register(newHandler(handlerVeboxDenoise, feature.DenoiseOnVebox, pool, logger))
	r.register(newHandler(handlerRenderAdaptive, feature.DenoiseOnRender, pool, logger))
	return r
}

func (r *Registry) register(h *Handler) {
	r.table[h.typ.Kind][h.typ.Engine] = h
	r.order = append(r.order, h)
}

// Lookup returns the handler for t, or nil when none is registered.
func (r *Registry) Lookup(t feature.Type) *Handler {
	if t.Kind < 0 || int(t.Kind) >= feature.KindCount || t.Engine < 0 || int(t.Engine) >= feature.EngineCount {
		return nil
	}
	return r.table[t.Kind][t.Engine]
}

// Handlers returns the registered handlers in registration order.
func (r *Registry) Handlers() []*Handler {
	return append([]*Handler(nil), r.order...)
}
