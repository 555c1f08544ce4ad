package tracker

// Derive computes the status from the artifact record and the test map.
// It is pure: identical inputs always yield the identical status.
func Derive(artifacts ArtifactRecord, tests CompletionMap) Status {
	hasAllLinks := artifacts.HasAllLinks()
	passed := tests.CountChecked(KindTest)

	if hasAllLinks && passed == TestCount {
		return StatusShipped
	}
	if hasAllLinks || passed > 0 {
		return StatusInProgress
	}
	return StatusNotStarted
}

// Evaluation is the outcome of one status derivation, with the figures the
// proof view renders alongside the badge.
type Evaluation struct {
	Status      Status `json:"status"`
	Label       string `json:"label"`
	Passed      int    `json:"passed"`
	Remaining   int    `json:"remaining"`
	HasAllLinks bool   `json:"has_all_links"`
	// CopyEnabled gates the submission copy action; true only when shipped.
	CopyEnabled bool `json:"copy_enabled"`
}

// Evaluate derives the status and collects the related counts.
func Evaluate(artifacts ArtifactRecord, tests CompletionMap) Evaluation {
	status := Derive(artifacts, tests)
	passed := tests.CountChecked(KindTest)
	return Evaluation{
		Status:      status,
		Label:       status.Label(),
		Passed:      passed,
		Remaining:   TestCount - passed,
		HasAllLinks: artifacts.HasAllLinks(),
		CopyEnabled: status == StatusShipped,
	}
}
