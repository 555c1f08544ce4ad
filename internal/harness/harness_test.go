package harness

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarios(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			result, err := RunWithGolden(t, s)
			require.NoError(t, err)
			assert.True(t, result.Pass, strings.Join(result.Errors, "\n"))
		})
	}
}

func TestRun_IsDeterministic(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/ship_project.yaml")
	require.NoError(t, err)

	first, err := Run(s)
	require.NoError(t, err)
	second, err := Run(s)
	require.NoError(t, err)

	assert.Equal(t, first.Trace, second.Trace)
	assert.Equal(t, first.Records, second.Records)
	assert.Equal(t, first.Copies, second.Copies)
}

func TestRun_ExpectMismatchFails(t *testing.T) {
	s := &Scenario{
		Name:        "mismatch",
		Description: "load on an empty store is not shipped",
		Flow: []Step{
			{Action: ActionLoad, Expect: &Expect{Status: "shipped"}},
		},
		Assertions: []Assertion{{Type: AssertWriteCount, Count: 1}},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], `status = "not-started", expected "shipped"`)
}

func TestRun_ExpectOutcomeDefaultsToOK(t *testing.T) {
	s := &Scenario{
		Name:        "default_outcome",
		Description: "an expect clause without outcome rejects failures",
		Flow: []Step{
			{Action: ActionCopy, Expect: &Expect{}},
		},
		Assertions: []Assertion{{Type: AssertCopyCount, Count: 0}},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], "outcome = copy_disabled, expected ok")
}

func TestRun_FailingSetupAborts(t *testing.T) {
	s := &Scenario{
		Name:        "bad_setup",
		Description: "setup must succeed",
		Setup: []Step{
			{Action: ActionCheck, Kind: "step", IDs: []int{42}},
		},
		Flow:       []Step{{Action: ActionLoad}},
		Assertions: []Assertion{{Type: AssertWriteCount, Count: 0}},
	}

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "setup[0]")
	assert.Contains(t, err.Error(), OutcomeUnknownItem)
}

func TestRun_RecordsCopies(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/ship_project.yaml")
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	require.Len(t, result.Copies, 1)
	assert.True(t, strings.HasPrefix(result.Copies[0], strings.Repeat("-", 42)))
	assert.Contains(t, result.Copies[0], "Job Notification Tracker")
}

func TestMarshalSnapshot_TrailingNewline(t *testing.T) {
	data, err := MarshalSnapshot(TraceSnapshot{ScenarioName: "x", Trace: []TraceEvent{}, Records: map[string]string{}})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"scenario_name\": \"x\",\n  \"trace\": [],\n  \"records\": {}\n}\n", string(data))
}
