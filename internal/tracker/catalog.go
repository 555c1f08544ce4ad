package tracker

import "fmt"

// Fixed catalog sizes.
const (
	StepCount = 8
	TestCount = 10
)

// Kind selects one of the two completion namespaces.
type Kind string

const (
	KindStep Kind = "step"
	KindTest Kind = "test"
)

// ParseKind accepts "step"/"steps" and "test"/"tests".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "step", "steps":
		return KindStep, nil
	case "test", "tests":
		return KindTest, nil
	default:
		return "", fmt.Errorf("unknown item kind %q: must be step or test", s)
	}
}

var stepNames = [StepCount]string{
	"Project Setup",
	"Match Scoring Logic",
	"Daily Digest System",
	"Status Tracking",
	"UI/UX Design",
	"Testing Suite",
	"Deployment Setup",
	"Documentation",
}

var testNames = [TestCount]string{
	"Preferences persist after refresh",
	"Match score calculates correctly",
	"Show only matches toggle works",
	"Save job persists after refresh",
	"Apply opens in new tab",
	"Status update persists after refresh",
	"Status filter works correctly",
	"Digest generates top 10 by score",
	"Digest persists for the day",
	"No console errors on main pages",
}

// Item is one entry of the fixed catalog.
type Item struct {
	Kind Kind
	ID   int
	Name string
}

// Items returns the catalog for kind in id order.
func Items(kind Kind) []Item {
	var names []string
	switch kind {
	case KindStep:
		names = stepNames[:]
	case KindTest:
		names = testNames[:]
	default:
		return nil
	}
	items := make([]Item, len(names))
	for i, name := range names {
		items[i] = Item{Kind: kind, ID: i + 1, Name: name}
	}
	return items
}

// Count returns the catalog size for kind.
func Count(kind Kind) int {
	switch kind {
	case KindStep:
		return StepCount
	case KindTest:
		return TestCount
	default:
		return 0
	}
}

// ValidID reports whether id is in the fixed range for kind.
func ValidID(kind Kind, id int) bool {
	return id >= 1 && id <= Count(kind)
}

// StepName returns the display name of a step, or "" for an unknown id.
func StepName(id int) string {
	if !ValidID(KindStep, id) {
		return ""
	}
	return stepNames[id-1]
}

// TestName returns the display name of a test, or "" for an unknown id.
func TestName(id int) string {
	if !ValidID(KindTest, id) {
		return ""
	}
	return testNames[id-1]
}
