package limiter

import (
	"slices"

	"github.com/kcaldas/tabslimiter/pkg/host"
)

// IdleOrderer sorts documents by last access time.
type IdleOrderer interface {
	OrderByIdleTime(docs []host.Document, mostRecentFirst bool) []host.Document
}

// OrderStrategy decides the order in which documents are considered for
// closing.
type OrderStrategy interface {
	Name() string
	Order(docs []host.Document) []host.Document
}

// LeftStrategy keeps the tab order.
type LeftStrategy struct{}

func (LeftStrategy) Name() string { return string(CloseLeft) }

func (LeftStrategy) Order(docs []host.Document) []host.Document {
	return slices.Clone(docs)
}

// RightStrategy reverses the tab order.
type RightStrategy struct{}

func (RightStrategy) Name() string { return string(CloseRight) }

func (RightStrategy) Order(docs []host.Document) []host.Document {
	out := slices.Clone(docs)
	slices.Reverse(out)
	return out
}

// RecencyStrategy orders by last access time.
type RecencyStrategy struct {
	idle            IdleOrderer
	mostRecentFirst bool
}

// NewRecencyStrategy returns the "active" order when mostRecentFirst is set
// and the "inactive" order otherwise.
func NewRecencyStrategy(idle IdleOrderer, mostRecentFirst bool) *RecencyStrategy {
	return &RecencyStrategy{idle: idle, mostRecentFirst: mostRecentFirst}
}

func (s *RecencyStrategy) Name() string {
	if s.mostRecentFirst {
		return string(CloseActive)
	}
	return string(CloseInactive)
}

func (s *RecencyStrategy) Order(docs []host.Document) []host.Document {
	return s.idle.OrderByIdleTime(docs, s.mostRecentFirst)
}

// StrategyFor maps a CloseOrder to its strategy. Unknown orders fall back
// to the default.
func StrategyFor(order CloseOrder, idle IdleOrderer) OrderStrategy {
	switch order {
	case CloseLeft:
		return LeftStrategy{}
	case CloseRight:
		return RightStrategy{}
	case CloseActive:
		// Most recently used first, kept as the plugin always behaved.
		return NewRecencyStrategy(idle, true)
	default:
		return NewRecencyStrategy(idle, false)
	}
}
