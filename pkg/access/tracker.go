// Package access tracks when documents were last used.
//
// Saved documents report the access time of their backing file. Unsaved
// buffers have no file to ask, so the tracker records the time they were
// last created or focused instead.
package access

import (
	"slices"
	"sync"
	"time"

	"github.com/kcaldas/tabslimiter/pkg/host"
	"github.com/kcaldas/tabslimiter/pkg/logging"
)

// StatSource reads the last access time of a file on disk
type StatSource interface {
	AccessTime(path string) (time.Time, error)
}

// Tracker records activity for documents without a backing file.
// It is safe for concurrent use.
type Tracker struct {
	mu      sync.RWMutex
	records map[int]float64
	now     func() time.Time
	stat    StatSource
	logger  logging.Logger
}

// Option configures a Tracker
type Option func(*Tracker)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// WithStatSource replaces the filesystem lookup used for saved documents.
func WithStatSource(stat StatSource) Option {
	return func(t *Tracker) {
		t.stat = stat
	}
}

// WithLogger sets the logger used for stat failures.
func WithLogger(logger logging.Logger) Option {
	return func(t *Tracker) {
		t.logger = logger
	}
}

// NewTracker creates a tracker reading file access times from disk.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		records: make(map[int]float64),
		now:     time.Now,
		stat:    NewAtimeSource(),
		logger:  logging.NewComponentLogger("access"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Touch records the current time for an unsaved document. Saved documents
// are ignored: their file already carries the information.
func (t *Tracker) Touch(doc host.Document) {
	if doc.FileName() != "" {
		return
	}
	now := seconds(t.now())

	t.mu.Lock()
	defer t.mu.Unlock()
	t.records[doc.ID()] = now
}

// Unregister forgets the recorded time for doc, if any.
func (t *Tracker) Unregister(doc host.Document) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.records, doc.ID())
}

// LastAccessTime returns seconds since the epoch of the last activity on
// doc. 0 means unknown and sorts before everything else.
func (t *Tracker) LastAccessTime(doc host.Document) float64 {
	if path := doc.FileName(); path != "" {
		at, err := t.stat.AccessTime(path)
		if err != nil {
			t.logger.Debug("cannot read access time", "id", doc.ID(), "file", path, "error", err)
			return 0
		}
		return seconds(at)
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.records[doc.ID()]
}

// OrderByIdleTime returns docs sorted by last access time, most idle first
// unless mostRecentFirst is set. Documents with equal times keep their
// relative order.
func (t *Tracker) OrderByIdleTime(docs []host.Document, mostRecentFirst bool) []host.Document {
	type keyed struct {
		doc host.Document
		at  float64
	}
	items := make([]keyed, len(docs))
	for i, d := range docs {
		items[i] = keyed{doc: d, at: t.LastAccessTime(d)}
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		switch {
		case a.at == b.at:
			return 0
		case (a.at < b.at) != mostRecentFirst:
			return -1
		default:
			return 1
		}
	})

	ordered := make([]host.Document, len(items))
	for i, it := range items {
		ordered[i] = it.doc
	}
	return ordered
}

// Len returns the number of documents with a recorded time.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.records)
}

func seconds(at time.Time) float64 {
	if at.IsZero() {
		return 0
	}
	return float64(at.UnixNano()) / float64(time.Second)
}
