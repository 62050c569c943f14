// Package scenario replays scripted editor sessions against the in-memory
// host so limiter settings can be tried out without an editor.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidStep is returned for steps naming zero or several actions.
	ErrInvalidStep = errors.New("invalid step")
	// ErrUnknownDocument is returned when a step refers to an alias that
	// was never created.
	ErrUnknownDocument = errors.New("unknown document")
	// ErrDuplicateDocument is returned when an alias is created twice.
	ErrDuplicateDocument = errors.New("document already exists")
	// ErrVersionMismatch is returned when the scenario requires another
	// build.
	ErrVersionMismatch = errors.New("scenario requires a different version")
)

// Scenario is a scripted editor session
type Scenario struct {
	Name     string         `yaml:"name"`
	Requires string         `yaml:"requires,omitempty"`
	Groups   int            `yaml:"groups,omitempty"`
	Settings map[string]any `yaml:"settings,omitempty"`
	Steps    []Step         `yaml:"steps"`
}

// Step is one editor interaction. Exactly one action field must be set;
// Path and Group qualify it.
type Step struct {
	New        string        `yaml:"new,omitempty"`
	Open       string        `yaml:"open,omitempty"`
	Preview    string        `yaml:"preview,omitempty"`
	Pin        string        `yaml:"pin,omitempty"`
	Activate   string        `yaml:"activate,omitempty"`
	Deactivate string        `yaml:"deactivate,omitempty"`
	Load       string        `yaml:"load,omitempty"`
	Loading    string        `yaml:"loading,omitempty"`
	Save       string        `yaml:"save,omitempty"`
	Dirty      string        `yaml:"dirty,omitempty"`
	Clean      string        `yaml:"clean,omitempty"`
	Close      string        `yaml:"close,omitempty"`
	Search     bool          `yaml:"search,omitempty"`
	FocusGroup *int          `yaml:"focus_group,omitempty"`
	Wait       time.Duration `yaml:"wait,omitempty"`

	ExpectOpen   []string `yaml:"expect_open,omitempty"`
	ExpectClosed []string `yaml:"expect_closed,omitempty"`

	Path  string `yaml:"path,omitempty"`
	Group *int   `yaml:"group,omitempty"`
}

// Action names the single action a step performs together with the alias
// it applies to, if any.
func (s Step) Action() (string, string, error) {
	type candidate struct {
		name  string
		alias string
		set   bool
	}
	candidates := []candidate{
		{"new", s.New, s.New != ""},
		{"open", s.Open, s.Open != ""},
		{"preview", s.Preview, s.Preview != ""},
		{"pin", s.Pin, s.Pin != ""},
		{"activate", s.Activate, s.Activate != ""},
		{"deactivate", s.Deactivate, s.Deactivate != ""},
		{"load", s.Load, s.Load != ""},
		{"loading", s.Loading, s.Loading != ""},
		{"save", s.Save, s.Save != ""},
		{"dirty", s.Dirty, s.Dirty != ""},
		{"clean", s.Clean, s.Clean != ""},
		{"close", s.Close, s.Close != ""},
		{"search", "", s.Search},
		{"focus_group", "", s.FocusGroup != nil},
		{"wait", "", s.Wait > 0},
		{"expect_open", "", s.ExpectOpen != nil},
		{"expect_closed", "", s.ExpectClosed != nil},
	}

	var found []candidate
	for _, c := range candidates {
		if c.set {
			found = append(found, c)
		}
	}
	switch len(found) {
	case 1:
		return found[0].name, found[0].alias, nil
	case 0:
		return "", "", fmt.Errorf("%w: no action", ErrInvalidStep)
	default:
		names := make([]string, len(found))
		for i, c := range found {
			names[i] = c.name
		}
		return "", "", fmt.Errorf("%w: several actions (%s)", ErrInvalidStep, strings.Join(names, ", "))
	}
}

// Validate checks every step names exactly one action.
func (sc *Scenario) Validate() error {
	for i, step := range sc.Steps {
		name, _, err := step.Action()
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		if (name == "open" || name == "save") && step.Path == "" {
			return fmt.Errorf("step %d: %w: %s needs a path", i+1, ErrInvalidStep, name)
		}
	}
	return nil
}

// Parse decodes and validates a scenario.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("error parsing scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	if sc.Groups < 1 {
		sc.Groups = 1
	}
	return &sc, nil
}

// Read parses a scenario from r.
func Read(r io.Reader) (*Scenario, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading scenario: %w", err)
	}
	return Parse(data)
}

// Load parses the scenario file at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading scenario: %w", err)
	}
	return Parse(data)
}
