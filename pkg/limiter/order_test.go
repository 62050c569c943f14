package limiter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kcaldas/tabslimiter/pkg/host"
	"github.com/kcaldas/tabslimiter/pkg/host/memory"
)

// reverseIdle orders by descending id so the recency flag is observable.
type reverseIdle struct {
	calls []bool
}

func (r *reverseIdle) OrderByIdleTime(docs []host.Document, mostRecentFirst bool) []host.Document {
	r.calls = append(r.calls, mostRecentFirst)
	out := make([]host.Document, len(docs))
	for i, d := range docs {
		out[len(docs)-1-i] = d
	}
	return out
}

func docIDs(docs []host.Document) []int {
	out := make([]int, len(docs))
	for i, d := range docs {
		out[i] = d.ID()
	}
	return out
}

func TestStrategyFor(t *testing.T) {
	h := memory.NewHost(1)
	a, b, c := h.NewDocument(""), h.NewDocument(""), h.NewDocument("")
	docs := []host.Document{a, b, c}

	tests := []struct {
		order   CloseOrder
		name    string
		want    []int
		recency []bool
	}{
		{CloseLeft, "left", []int{a.ID(), b.ID(), c.ID()}, nil},
		{CloseRight, "right", []int{c.ID(), b.ID(), a.ID()}, nil},
		{CloseActive, "active", []int{c.ID(), b.ID(), a.ID()}, []bool{true}},
		{CloseInactive, "inactive", []int{c.ID(), b.ID(), a.ID()}, []bool{false}},
		{CloseOrder("bogus"), "inactive", []int{c.ID(), b.ID(), a.ID()}, []bool{false}},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			idle := &reverseIdle{}
			s := StrategyFor(tt.order, idle)

			assert.Equal(t, tt.name, s.Name())
			assert.Equal(t, tt.want, docIDs(s.Order(docs)))
			assert.Equal(t, tt.recency, idle.calls)
		})
	}

	// callers' slices are never reordered
	assert.Equal(t, []int{a.ID(), b.ID(), c.ID()}, docIDs(docs))
}
