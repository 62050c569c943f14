// Package limiter closes editor tabs once a window or group holds too many.
//
// The Engine reacts to document lifecycle notifications. Each trigger
// reloads the settings, checks the active group against the limit and,
// unless limiting by group, the whole active window. At most one document
// is closed per trigger.
package limiter

import (
	"fmt"
	"sync"

	"github.com/kcaldas/tabslimiter/pkg/host"
	"github.com/kcaldas/tabslimiter/pkg/logging"
)

// Tracker supplies access times for the recency orders and is kept in sync
// with the document lifecycle.
type Tracker interface {
	IdleOrderer
	Touch(doc host.Document)
	Unregister(doc host.Document)
}

// State of the search preview handshake
type State int

const (
	// Idle means no document is waiting on a search preview.
	Idle State = iota
	// AwaitingSearchConfirmation means a document was loaded from the
	// search results and stays untouched until the user activates it as
	// a real tab.
	AwaitingSearchConfirmation
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingSearchConfirmation:
		return "awaiting-search-confirmation"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Outcome reports what a single eviction attempt did
type Outcome struct {
	Closed   bool
	ID       int
	FileName string
}

// NotClosed is the outcome of an attempt that closed nothing.
var NotClosed = Outcome{}

func (o Outcome) String() string {
	if !o.Closed {
		return "nothing closed"
	}
	return fmt.Sprintf("closed %d (%s)", o.ID, o.FileName)
}

// Engine decides which tab to close. One Engine serves the active window
// for the whole life of the process; its handlers are serialized.
type Engine struct {
	mu              sync.Mutex
	host            host.Host
	tracker         Tracker
	source          ConfigSource
	config          Config
	state           State
	pendingID       int
	searchActive    bool
	searchResultsID int
	logger          logging.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithConfigSource sets where settings are reloaded from on every attempt.
func WithConfigSource(source ConfigSource) Option {
	return func(e *Engine) {
		e.source = source
	}
}

// WithInitialConfig seeds the in-memory settings used as fallback values.
func WithInitialConfig(cfg Config) Option {
	return func(e *Engine) {
		e.config = cfg
	}
}

// WithSearchResultsID overrides the id of the search results view.
func WithSearchResultsID(id int) Option {
	return func(e *Engine) {
		e.searchResultsID = id
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger logging.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an engine for h. Without a config source the limiter
// stays disabled.
func NewEngine(h host.Host, tracker Tracker, opts ...Option) *Engine {
	e := &Engine{
		host:            h,
		tracker:         tracker,
		config:          DefaultConfig(),
		state:           Idle,
		pendingID:       -1,
		searchResultsID: host.SearchResultsID,
		logger:          logging.NewComponentLogger("limiter"),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.source == nil {
		e.source = StaticConfig(e.config)
	}
	return e
}

// State returns the current search preview state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// PendingID returns the document awaiting search confirmation, if any.
func (e *Engine) PendingID() (int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pendingID, e.state == AwaitingSearchConfirmation
}

// SearchActive reports whether the search results view is focused.
func (e *Engine) SearchActive() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.searchActive
}

// Config returns the settings used by the last attempt.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config
}

// OnCreated handles a new buffer.
func (e *Engine) OnCreated(doc host.Document) Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tracker.Touch(doc)
	return e.attemptEviction()
}

// OnLoaded handles a document that finished loading. Documents loaded while
// browsing search results are only considered once confirmed, since the
// editor cannot change focus in the middle of that interaction.
func (e *Engine) OnLoaded(doc host.Document) Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.searchActive {
		e.state = AwaitingSearchConfirmation
		e.pendingID = doc.ID()
		e.logger.Debug("deferring eviction until search preview is confirmed", "id", doc.ID())
		return NotClosed
	}
	return e.attemptEviction()
}

// OnActivated handles focus moving to doc.
func (e *Engine) OnActivated(doc host.Document) Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tracker.Touch(doc)

	if doc.ID() == e.searchResultsID {
		e.searchActive = true
		return NotClosed
	}
	if e.state != AwaitingSearchConfirmation || doc.ID() != e.pendingID {
		return NotClosed
	}
	w := e.host.ActiveWindow()
	if w == nil || w.IsPreview(doc) {
		return NotClosed
	}
	e.state = Idle
	e.pendingID = -1
	return e.attemptEviction()
}

// OnDeactivated handles focus leaving doc.
func (e *Engine) OnDeactivated(doc host.Document) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if doc.ID() == e.searchResultsID {
		e.searchActive = false
	}
}

// OnSaved handles doc being written to disk. From now on its file carries
// the access time.
func (e *Engine) OnSaved(doc host.Document) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tracker.Unregister(doc)
}

// OnClosed handles doc being closed outside the limiter.
func (e *Engine) OnClosed(doc host.Document) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tracker.Unregister(doc)
	if e.state == AwaitingSearchConfirmation && e.pendingID == doc.ID() {
		e.state = Idle
		e.pendingID = -1
	}
}

// AttemptEviction runs one eviction pass over the active window.
func (e *Engine) AttemptEviction() Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.attemptEviction()
}

// CloseOneIn closes the first closable document of docs in the configured
// order, using the current settings.
func (e *Engine) CloseOneIn(docs []host.Document) Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	w := e.host.ActiveWindow()
	if w == nil {
		return NotClosed
	}
	return e.closeOneIn(w, docs)
}

// Order reloads the settings and returns docs in the order the configured
// policy scans them.
func (e *Engine) Order(docs []host.Document) []host.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.config = e.source.Reload(e.config)
	return StrategyFor(e.config.CloseOrder, e.tracker).Order(docs)
}

func (e *Engine) attemptEviction() Outcome {
	e.config = e.source.Reload(e.config)
	if !e.config.Enabled() {
		return NotClosed
	}
	w := e.host.ActiveWindow()
	if w == nil {
		return NotClosed
	}

	outcome := NotClosed
	if group := w.DocumentsInGroup(w.ActiveGroup()); len(group) >= e.config.Limit {
		outcome = e.closeOneIn(w, group)
	}
	if e.config.LimitByGroup || outcome.Closed {
		return outcome
	}
	if all := w.Documents(); len(all) >= e.config.Limit {
		outcome = e.closeOneIn(w, all)
	}
	return outcome
}

func (e *Engine) closeOneIn(w host.Window, docs []host.Document) Outcome {
	strategy := StrategyFor(e.config.CloseOrder, e.tracker)
	active := w.ActiveDocument()
	for _, doc := range strategy.Order(docs) {
		if !closable(w, active, doc) {
			continue
		}
		e.logger.Info("auto-closing tab", "id", doc.ID(), "file", doc.FileName(), "order", strategy.Name())
		outcome := Outcome{Closed: true, ID: doc.ID(), FileName: doc.FileName()}
		w.Close(doc)
		e.tracker.Unregister(doc)
		return outcome
	}
	return NotClosed
}

func closable(w host.Window, active, doc host.Document) bool {
	if doc.IsDirty() || doc.IsLoading() || w.IsPreview(doc) {
		return false
	}
	return active == nil || active.ID() != doc.ID()
}
