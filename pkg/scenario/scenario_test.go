package scenario

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kcaldas/tabslimiter/pkg/events"
	"github.com/kcaldas/tabslimiter/pkg/limiter"
	"github.com/kcaldas/tabslimiter/pkg/version"
)

func newTestRunner(sc *Scenario, fallback limiter.ConfigSource, out *bytes.Buffer) *Runner {
	clock := NewClock(Start)
	files := NewFileTimes()
	h := NewHost(sc)
	engine := NewEngine(h, NewTracker(clock, files), NewConfigSource(sc, fallback))
	return NewRunner(sc, h, events.NewEventBus(), engine, clock, files, out)
}

func run(t *testing.T, sc *Scenario) (*Result, string, error) {
	t.Helper()
	var out bytes.Buffer
	result, err := newTestRunner(sc, nil, &out).Run(context.Background())
	return result, out.String(), err
}

func TestRun_Testdata(t *testing.T) {
	tests := []struct {
		file   string
		output string
	}{
		{"inactive.yaml", "closed a (id 3)\n"},
		{"search_preview.yaml", "closed a (id 3) /src/a.go\n"},
		{"window_fallback.yaml", "closed a (id 3)\n"},
		{"legacy_order.yaml", "closed c (id 5)\n"},
		{"file_access.yaml", "closed b (id 4) /src/b.go\n"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			sc, err := Load(filepath.Join("testdata", tt.file))
			require.NoError(t, err)

			result, output, err := run(t, sc)

			require.NoError(t, err)
			assert.Equal(t, tt.output, output)
			assert.Equal(t, len(sc.Steps), result.Steps)
			assert.NotEmpty(t, result.RunID)
		})
	}
}

func TestRun_LimitByGroup(t *testing.T) {
	sc, err := Load(filepath.Join("testdata", "window_fallback.yaml"))
	require.NoError(t, err)
	sc.Settings["limit_tabs_by_group"] = true
	sc.Steps = sc.Steps[:3]

	result, output, err := run(t, sc)

	require.NoError(t, err)
	assert.Empty(t, output)
	assert.Equal(t, []string{"c", "a", "b"}, result.Open)
	assert.Empty(t, result.Closed)
}

func TestRun_DisabledLimit(t *testing.T) {
	sc, err := Parse([]byte(`
name: disabled
settings:
  tab_number_limit: 0
steps:
  - new: a
  - new: b
  - new: c
  - new: d
  - expect_closed: []
`))
	require.NoError(t, err)

	_, output, err := run(t, sc)

	require.NoError(t, err)
	assert.Empty(t, output)
}

func TestRun_FallbackConfigSource(t *testing.T) {
	sc, err := Parse([]byte(`
name: no settings block
steps:
  - new: a
  - new: b
  - expect_closed: [a]
`))
	require.NoError(t, err)

	var out bytes.Buffer
	runner := newTestRunner(sc, limiter.StaticConfig{Limit: 2, CloseOrder: limiter.CloseLeft}, &out)
	_, err = runner.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, runner.Engine().Config().Limit)
}

func TestRun_CloseAndSave(t *testing.T) {
	sc, err := Parse([]byte(`
name: user actions
settings:
  tab_number_limit: 3
  close_order: left
steps:
  - new: a
  - save: a
    path: /tmp/a.txt
  - new: b
  - close: a
  - new: c
  - expect_open: [b, c]
  - expect_closed: []
`))
	require.NoError(t, err)

	result, _, err := run(t, sc)

	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, result.Open)
}

func TestRun_LoadingDocumentIsKept(t *testing.T) {
	sc, err := Parse([]byte(`
name: loading
settings:
  tab_number_limit: 2
  close_order: left
steps:
  - new: a
  - loading: a
  - new: b
  - expect_closed: []
  - load: a
  - expect_closed: [a]
`))
	require.NoError(t, err)

	_, _, err = run(t, sc)
	require.NoError(t, err)
}

func TestRun_ExpectationMismatch(t *testing.T) {
	sc, err := Parse([]byte(`
name: wrong expectation
settings:
  tab_number_limit: 5
steps:
  - new: a
  - new: b
  - expect_open: [b, a]
`))
	require.NoError(t, err)

	_, _, err = run(t, sc)

	var expErr *ExpectationError
	require.True(t, errors.As(err, &expErr))
	assert.Equal(t, 3, expErr.Step)
	assert.Equal(t, []string{"a", "b"}, expErr.Actual)
	assert.Contains(t, err.Error(), "--- expected")
	assert.Contains(t, err.Error(), "+++ actual")
	assert.Contains(t, err.Error(), "open documents mismatch")
}

func TestRun_UnknownDocument(t *testing.T) {
	sc, err := Parse([]byte("name: x\nsteps:\n  - activate: ghost\n"))
	require.NoError(t, err)

	_, _, err = run(t, sc)

	assert.ErrorIs(t, err, ErrUnknownDocument)
	assert.Contains(t, err.Error(), "step 1")
}

func TestRun_DuplicateDocument(t *testing.T) {
	sc, err := Parse([]byte("name: x\nsteps:\n  - new: a\n  - new: a\n"))
	require.NoError(t, err)

	_, _, err = run(t, sc)

	assert.ErrorIs(t, err, ErrDuplicateDocument)
}

func TestRun_VersionGate(t *testing.T) {
	original := version.Version
	version.Version = "1.0.0"
	defer func() { version.Version = original }()

	sc, err := Parse([]byte("name: x\nrequires: \">= 2.0\"\nsteps:\n  - new: a\n"))
	require.NoError(t, err)

	_, _, err = run(t, sc)
	assert.ErrorIs(t, err, ErrVersionMismatch)

	sc.Requires = "^1.0"
	_, _, err = run(t, sc)
	assert.NoError(t, err)
}

func TestRun_ContextCancelled(t *testing.T) {
	sc, err := Parse([]byte("name: x\nsteps:\n  - new: a\n"))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	result, err := newTestRunner(sc, nil, &out).Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, result.Steps)
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"no action", "steps:\n  - path: /a\n", "no action"},
		{"several actions", "steps:\n  - new: a\n    dirty: a\n", "several actions (new, dirty)"},
		{"open without path", "steps:\n  - open: a\n", "open needs a path"},
		{"save without path", "steps:\n  - new: a\n  - save: a\n", "step 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidStep)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParse_Defaults(t *testing.T) {
	sc, err := Read(strings.NewReader("name: x\nsteps:\n  - wait: 90s\n  - focus_group: 0\n"))
	require.NoError(t, err)

	assert.Equal(t, 1, sc.Groups)
	assert.Equal(t, "1m30s", sc.Steps[0].Wait.String())
	require.NotNil(t, sc.Steps[1].FocusGroup)
	assert.Equal(t, 0, *sc.Steps[1].FocusGroup)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("steps: [\n"))
	assert.ErrorContains(t, err, "error parsing scenario")
}
