package plan

import (
	"log/slog"

	"framepass/internal/feature"
	"framepass/internal/logging"
	"framepass/internal/status"
)

// Pool is a freelist of plan nodes keyed by (kind, engine). It is not safe
// for concurrent use; one pool serves one resolution sequence at a time.
type Pool struct {
	logger      *slog.Logger
	limit       int
	free        map[feature.Type][]*Node
	outstanding map[feature.Type]int
}

// NewPool returns a pool that allows at most limit nodes per key to be
// checked out at once. A limit of zero or less means unbounded.
func NewPool(limit int, logger *slog.Logger) *Pool {
	return &Pool{
		logger:      logging.NewComponentLogger(logger, "plan_pool"),
		limit:       limit,
		free:        make(map[feature.Type][]*Node),
		outstanding: make(map[feature.Type]int),
	}
}

// Checkout returns a node for t, reusing a returned one when available.
func (p *Pool) Checkout(t feature.Type) (*Node, error) {
	if t.IsGeneric() {
		return nil, status.Wrap(status.ErrInvalidArgument, "plan_pool", "checkout", "unrouted type "+t.String(), nil)
	}
	if p.limit > 0 && p.outstanding[t] >= p.limit {
		return nil, status.Wrap(status.ErrResourceExhausted, "plan_pool", "checkout", t.String()+" exhausted", nil)
	}
	var n *Node
	if free := p.free[t]; len(free) > 0 {
		n = free[len(free)-1]
		p.free[t] = free[:len(free)-1]
	} else {
		n = newNode(t, p.logger)
		p.logger.Debug("plan node allocated", logging.String(logging.FieldFeatureType, t.String()))
	}
	n.live = true
	p.outstanding[t]++
	return n, nil
}

// Return puts n back on the freelist. Returning a node twice, or one the pool
// never handed out, is an inconsistency.
func (p *Pool) Return(n *Node) error {
	if n == nil || !n.live {
		return status.Wrap(status.ErrInternalInconsistency, "plan_pool", "return", "node is not checked out", nil)
	}
	n.live = false
	n.block = nil
	p.outstanding[n.Type]--
	p.free[n.Type] = append(p.free[n.Type], n)
	return nil
}

// Outstanding reports how many nodes of type t are checked out.
func (p *Pool) Outstanding(t feature.Type) int { return p.outstanding[t] }

// Idle reports how many nodes of type t are waiting on the freelist.
func (p *Pool) Idle(t feature.Type) int { return len(p.free[t]) }
