// Package harness runs acceptance scenarios against the checklist and proof
// views.
//
// Each scenario runs against a fresh in-memory SQLite store with a
// deterministic clock and a fake clipboard, so the trace and the final
// records are identical across runs and can be compared with golden files.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: ship_project
//	description: "Checking every test and saving the links ships the project"
//	clipboard: ok            # or "fail" to make every copy fail
//	setup:
//	  - action: put
//	    key: jnt_steps
//	    value: '{"1":true}'
//	flow:
//	  - action: check
//	    kind: test
//	    ids: [1, 2, 3]
//	  - action: submit
//	    links:
//	      lovable: https://lovable.dev/projects/jnt
//	      github: https://github.com/me/jnt
//	      deployed: https://jnt.example.com
//	    expect:
//	      status: shipped
//	assertions:
//	  - type: status
//	    expect: shipped
//	  - type: record
//	    key: jnt_artifacts
//	    value: '{"lovable":"https://lovable.dev/projects/jnt"}'
//
// # Actions
//
//   - check, uncheck: toggle each of ids for kind (step or test)
//   - submit: validate and save links
//   - load: proof page load (derives and persists the status)
//   - copy: copy the submission block to the clipboard
//   - put: write a raw value under key, bypassing validation
//
// # Outcomes
//
// Every executed action yields one trace event with an outcome: ok,
// invalid_links, unknown_item, copy_disabled, clipboard_failed or
// corrupt_record. An expect clause with no outcome expects ok.
//
// # Assertion Types
//
//   - status: the stored status record equals expect
//   - record: the stored value under key equals value (JSON-aware)
//   - record_absent: nothing is stored under key
//   - write_count: the store has seen exactly count writes
//   - copied: some clipboard copy contains the contains text
//   - copy_count: the clipboard received exactly count copies
package harness
