package scenario

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/kcaldas/tabslimiter/pkg/access"
	"github.com/kcaldas/tabslimiter/pkg/config"
	"github.com/kcaldas/tabslimiter/pkg/events"
	"github.com/kcaldas/tabslimiter/pkg/host"
	"github.com/kcaldas/tabslimiter/pkg/host/memory"
	"github.com/kcaldas/tabslimiter/pkg/limiter"
	"github.com/kcaldas/tabslimiter/pkg/logging"
	"github.com/kcaldas/tabslimiter/pkg/version"
)

// StepInterval is how far the simulated clock moves after every step, so
// that successive interactions get distinct access times.
const StepInterval = time.Second

// Start is the simulated time at which every run begins.
var Start = time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

// ExpectationError reports an expect_* step that did not hold
type ExpectationError struct {
	Step     int
	What     string
	Expected []string
	Actual   []string
}

func (e *ExpectationError) Error() string {
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(strings.Join(e.Expected, "\n") + "\n"),
		B:        difflib.SplitLines(strings.Join(e.Actual, "\n") + "\n"),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	})
	return fmt.Sprintf("step %d: %s mismatch\n%s", e.Step, e.What, diff)
}

// Result summarizes a run
type Result struct {
	Name   string
	RunID  string
	Steps  int
	Open   []string
	Closed []string
}

// NewHost creates the in-memory editor a scenario runs in.
func NewHost(sc *Scenario) *memory.Host {
	return memory.NewHost(sc.Groups)
}

// NewTracker creates a tracker driven by the simulated clock and files.
func NewTracker(clock *Clock, files *FileTimes) *access.Tracker {
	return access.NewTracker(access.WithClock(clock.Now), access.WithStatSource(files))
}

// NewConfigSource uses the scenario settings when present and fallback
// otherwise.
func NewConfigSource(sc *Scenario, fallback limiter.ConfigSource) limiter.ConfigSource {
	if len(sc.Settings) > 0 || fallback == nil {
		return config.MapSettings(sc.Settings)
	}
	return fallback
}

// NewEngine creates the engine under test.
func NewEngine(h *memory.Host, tracker *access.Tracker, source limiter.ConfigSource) *limiter.Engine {
	return limiter.NewEngine(h, tracker, limiter.WithConfigSource(source))
}

// Runner replays one scenario
type Runner struct {
	scenario *Scenario
	host     *memory.Host
	bus      *events.InMemoryBus
	engine   *limiter.Engine
	clock    *Clock
	files    *FileTimes
	out      io.Writer
	logger   logging.Logger

	docs       map[string]*memory.Document
	names      map[int]string
	closedSeen int
}

// NewRunner subscribes engine to bus and prepares a run. Closed documents
// are reported on out.
func NewRunner(sc *Scenario, h *memory.Host, bus *events.InMemoryBus, engine *limiter.Engine, clock *Clock, files *FileTimes, out io.Writer) *Runner {
	engine.Subscribe(bus)
	r := &Runner{
		scenario: sc,
		host:     h,
		bus:      bus,
		engine:   engine,
		clock:    clock,
		files:    files,
		out:      out,
		logger:   logging.NewComponentLogger("scenario"),
		docs:     make(map[string]*memory.Document),
		names:    map[int]string{host.SearchResultsID: "search"},
	}
	return r
}

// Engine exposes the engine being exercised.
func (r *Runner) Engine() *limiter.Engine {
	return r.engine
}

// Run executes every step in order. The bus is drained after each step so
// expectations observe a settled editor. The runner cannot be reused.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	defer r.bus.Shutdown()

	if r.scenario.Requires != "" {
		ok, err := version.Satisfies(version.GetVersion(), r.scenario.Requires)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s (running %s)", ErrVersionMismatch, r.scenario.Requires, version.GetVersion())
		}
	}

	result := &Result{Name: r.scenario.Name, RunID: uuid.New().String()}
	logger := r.logger.With("run", result.RunID, "scenario", r.scenario.Name)
	logger.Debug("starting scenario", "steps", len(r.scenario.Steps))

	for i, step := range r.scenario.Steps {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := r.apply(i+1, step); err != nil {
			return result, err
		}
		r.bus.Flush()
		r.reportClosed()
		r.clock.Advance(StepInterval)
		result.Steps++
	}

	result.Open = r.aliases(r.host.Window().IDs())
	result.Closed = r.aliases(r.host.Window().Closed())
	logger.Debug("scenario finished", "open", len(result.Open), "closed", len(result.Closed))
	return result, nil
}

func (r *Runner) apply(n int, step Step) error {
	action, alias, err := step.Action()
	if err != nil {
		return fmt.Errorf("step %d: %w", n, err)
	}
	w := r.host.Window()

	switch action {
	case "new", "open", "preview":
		if _, exists := r.docs[alias]; exists {
			return fmt.Errorf("step %d: %w: %s", n, ErrDuplicateDocument, alias)
		}
		doc := r.host.NewDocument(step.Path)
		r.docs[alias] = doc
		r.names[doc.ID()] = alias
		r.files.Access(step.Path, r.clock.Now())
		group := r.group(step)

		switch action {
		case "new":
			w.Open(group, doc)
			previous := w.ActiveDocument()
			w.Activate(doc)
			r.publish(events.TopicDocumentCreated, doc)
			r.switchFocus(previous, doc)
		case "open":
			w.Open(group, doc)
			previous := w.ActiveDocument()
			w.Activate(doc)
			r.publish(events.TopicDocumentLoaded, doc)
			r.switchFocus(previous, doc)
		case "preview":
			w.OpenPreview(group, doc)
			r.publish(events.TopicDocumentLoaded, doc)
		}
		return nil

	case "search":
		r.focus(r.host.SearchResults())
		return nil
	case "focus_group":
		w.FocusGroup(*step.FocusGroup)
		return nil
	case "wait":
		r.clock.Advance(step.Wait)
		return nil
	case "expect_open":
		return r.expect(n, "open documents", step.ExpectOpen, w.IDs())
	case "expect_closed":
		return r.expect(n, "closed documents", step.ExpectClosed, w.Closed())
	}

	doc, err := r.document(n, alias)
	if err != nil {
		return err
	}
	switch action {
	case "pin":
		w.Pin(doc)
		r.focus(doc)
	case "activate":
		r.focus(doc)
	case "deactivate":
		r.publish(events.TopicDocumentDeactivated, doc)
	case "load":
		doc.SetLoading(false)
		r.publish(events.TopicDocumentLoaded, doc)
	case "loading":
		doc.SetLoading(true)
	case "save":
		doc.SaveAs(step.Path)
		r.files.Access(step.Path, r.clock.Now())
		r.publish(events.TopicDocumentSaved, doc)
	case "dirty":
		doc.SetDirty(true)
	case "clean":
		doc.SetDirty(false)
	case "close":
		if w.Remove(doc) {
			r.publish(events.TopicDocumentClosed, doc)
		}
	}
	return nil
}

func (r *Runner) document(n int, alias string) (*memory.Document, error) {
	doc, ok := r.docs[alias]
	if !ok {
		return nil, fmt.Errorf("step %d: %w: %s", n, ErrUnknownDocument, alias)
	}
	return doc, nil
}

func (r *Runner) group(step Step) int {
	if step.Group != nil {
		return *step.Group
	}
	return r.host.Window().ActiveGroup()
}

// focus moves focus to doc and emits the matching notifications.
func (r *Runner) focus(doc *memory.Document) {
	w := r.host.Window()
	previous := w.ActiveDocument()
	w.Activate(doc)
	r.files.Access(doc.FileName(), r.clock.Now())
	r.switchFocus(previous, doc)
}

func (r *Runner) switchFocus(previous host.Document, doc *memory.Document) {
	if previous != nil && previous.ID() != doc.ID() {
		r.publish(events.TopicDocumentDeactivated, previous)
	}
	r.publish(events.TopicDocumentActivated, doc)
}

func (r *Runner) publish(topic string, doc host.Document) {
	events.PublishDocument(r.bus, topic, doc)
}

func (r *Runner) expect(n int, what string, expected []string, actualIDs []int) error {
	actual := r.aliases(actualIDs)
	if slices.Equal(expected, actual) {
		return nil
	}
	return &ExpectationError{Step: n, What: what, Expected: expected, Actual: actual}
}

func (r *Runner) reportClosed() {
	closed := r.host.Window().Closed()
	for _, id := range closed[r.closedSeen:] {
		line := fmt.Sprintf("closed %s (id %d)", r.alias(id), id)
		if doc, ok := r.host.Document(id); ok && doc.FileName() != "" {
			line += " " + doc.FileName()
		}
		fmt.Fprintln(r.out, line)
	}
	r.closedSeen = len(closed)
}

func (r *Runner) alias(id int) string {
	if name, ok := r.names[id]; ok {
		return name
	}
	return fmt.Sprintf("#%d", id)
}

func (r *Runner) aliases(ids []int) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = r.alias(id)
	}
	return out
}
