package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/shipcheck/internal/tracker"
)

// Scenario defines one acceptance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Clipboard is "ok" (default) or "fail".
	Clipboard string `yaml:"clipboard,omitempty"`

	// Setup actions run before the flow and must all succeed.
	// They are not traced.
	Setup []Step `yaml:"setup,omitempty"`

	// Flow is the traced sequence of actions.
	Flow []Step `yaml:"flow"`

	// Assertions validate the final store and clipboard.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one action.
type Step struct {
	Action string  `yaml:"action"`
	Kind   string  `yaml:"kind,omitempty"`  // check, uncheck
	IDs    []int   `yaml:"ids,omitempty"`   // check, uncheck
	Links  *Links  `yaml:"links,omitempty"` // submit
	Key    string  `yaml:"key,omitempty"`   // put
	Value  string  `yaml:"value,omitempty"` // put
	Expect *Expect `yaml:"expect,omitempty"`
}

// Links are the raw submit inputs. Absent fields submit as empty.
type Links struct {
	Lovable  string `yaml:"lovable"`
	GitHub   string `yaml:"github"`
	Deployed string `yaml:"deployed"`
}

// Expect is checked against every trace event the step produces.
// Unset fields are not checked, except Outcome which defaults to ok.
type Expect struct {
	Outcome       string   `yaml:"outcome,omitempty"`
	Status        string   `yaml:"status,omitempty"`
	InvalidFields []string `yaml:"invalid_fields,omitempty"`
	Notifications []string `yaml:"notifications,omitempty"`
}

// Assertion validates the final state.
type Assertion struct {
	Type     string `yaml:"type"`
	Expect   string `yaml:"expect,omitempty"`   // status
	Key      string `yaml:"key,omitempty"`      // record, record_absent
	Value    string `yaml:"value,omitempty"`    // record
	Count    int    `yaml:"count,omitempty"`    // write_count, copy_count
	Contains string `yaml:"contains,omitempty"` // copied
}

// Action names.
const (
	ActionCheck   = "check"
	ActionUncheck = "uncheck"
	ActionSubmit  = "submit"
	ActionLoad    = "load"
	ActionCopy    = "copy"
	ActionPut     = "put"
)

// Clipboard modes.
const (
	ClipboardOK   = "ok"
	ClipboardFail = "fail"
)

// Assertion type constants.
const (
	AssertStatus       = "status"
	AssertRecord       = "record"
	AssertRecordAbsent = "record_absent"
	AssertWriteCount   = "write_count"
	AssertCopied       = "copied"
	AssertCopyCount    = "copy_count"
)

var knownOutcomes = map[string]bool{
	OutcomeOK:              true,
	OutcomeInvalidLinks:    true,
	OutcomeUnknownItem:     true,
	OutcomeCopyDisabled:    true,
	OutcomeClipboardFailed: true,
	OutcomeCorruptRecord:   true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarios loads every *.yaml file in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch s.Clipboard {
	case "", ClipboardOK, ClipboardFail:
	default:
		return fmt.Errorf("clipboard must be %q or %q, got %q", ClipboardOK, ClipboardFail, s.Clipboard)
	}

	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i := range s.Setup {
		if err := validateStep(fmt.Sprintf("setup[%d]", i), &s.Setup[i]); err != nil {
			return err
		}
		if s.Setup[i].Expect != nil {
			return fmt.Errorf("setup[%d]: expect is not allowed in setup", i)
		}
	}

	for i := range s.Flow {
		if err := validateStep(fmt.Sprintf("flow[%d]", i), &s.Flow[i]); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateStep checks the fields each action needs.
func validateStep(where string, st *Step) error {
	switch st.Action {
	case ActionCheck, ActionUncheck:
		if _, err := tracker.ParseKind(st.Kind); err != nil {
			return fmt.Errorf("%s: %w", where, err)
		}
		if len(st.IDs) == 0 {
			return fmt.Errorf("%s: ids is required for %s", where, st.Action)
		}
	case ActionSubmit:
		if st.Links == nil {
			return fmt.Errorf("%s: links is required for submit", where)
		}
	case ActionPut:
		if st.Key == "" {
			return fmt.Errorf("%s: key is required for put", where)
		}
	case ActionLoad, ActionCopy:
	case "":
		return fmt.Errorf("%s: action is required", where)
	default:
		return fmt.Errorf("%s: unknown action %q", where, st.Action)
	}

	if st.Expect != nil && st.Expect.Outcome != "" && !knownOutcomes[st.Expect.Outcome] {
		return fmt.Errorf("%s.expect: unknown outcome %q", where, st.Expect.Outcome)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertStatus:
		if _, err := tracker.ParseStatus(a.Expect); err != nil {
			return fmt.Errorf("assertions[%d]: %w", index, err)
		}
	case AssertRecord:
		if a.Key == "" {
			return fmt.Errorf("assertions[%d]: key is required for record", index)
		}
	case AssertRecordAbsent:
		if a.Key == "" {
			return fmt.Errorf("assertions[%d]: key is required for record_absent", index)
		}
	case AssertWriteCount, AssertCopyCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	case AssertCopied:
		if a.Contains == "" {
			return fmt.Errorf("assertions[%d]: contains is required for copied", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
