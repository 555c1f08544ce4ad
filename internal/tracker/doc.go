// Package tracker holds the project checklist domain: the fixed step and test
// catalog, the completion and artifact records, URL validation for the
// submission form, and status derivation.
//
// # Status
//
// Status is a pure function of the artifact record and the test completion map:
//
//   - shipped: all three links present and all 10 tests passed
//   - in-progress: all links present, or at least one test passed
//   - not-started: otherwise
//
// Status is persisted after every evaluation so other tools can inspect it, but
// it is never read back as a source of truth. Unchecking a test or replacing
// the links moves the status backwards; there is no ratchet.
//
// The package has no storage dependency. Persistence goes through the
// RecordStore interface, implemented by internal/store.
package tracker
