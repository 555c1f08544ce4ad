package tracker

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CompletionMap maps an item id to its checked state.
// Absent entries are unchecked. Serialises as {"1": true, ...}.
type CompletionMap map[int]bool

// Checked reports whether id is checked. Safe on a nil map.
func (m CompletionMap) Checked(id int) bool {
	return m[id]
}

// CountChecked counts checked entries over the fixed id range for kind.
// Ids outside the range are ignored.
func (m CompletionMap) CountChecked(kind Kind) int {
	n := 0
	for id := 1; id <= Count(kind); id++ {
		if m[id] {
			n++
		}
	}
	return n
}

// Clone returns a copy that can be mutated without touching m.
func (m CompletionMap) Clone() CompletionMap {
	out := make(CompletionMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ArtifactField names one of the three submission links.
type ArtifactField string

const (
	FieldLovable  ArtifactField = "lovable"
	FieldGitHub   ArtifactField = "github"
	FieldDeployed ArtifactField = "deployed"
)

// ArtifactFields lists the fields in form order.
var ArtifactFields = []ArtifactField{FieldLovable, FieldGitHub, FieldDeployed}

// Label is the human-readable name shown next to a field.
func (f ArtifactField) Label() string {
	switch f {
	case FieldLovable:
		return "Lovable Project"
	case FieldGitHub:
		return "GitHub Repository"
	case FieldDeployed:
		return "Live Deployment"
	default:
		return string(f)
	}
}

// ArtifactRecord holds the three submission links. Empty means absent.
type ArtifactRecord struct {
	Lovable  string `json:"lovable,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Deployed string `json:"deployed,omitempty"`
}

// Get returns the value of field f.
func (a ArtifactRecord) Get(f ArtifactField) string {
	switch f {
	case FieldLovable:
		return a.Lovable
	case FieldGitHub:
		return a.GitHub
	case FieldDeployed:
		return a.Deployed
	default:
		return ""
	}
}

// HasAllLinks reports whether all three links are present.
func (a ArtifactRecord) HasAllLinks() bool {
	return a.Lovable != "" && a.GitHub != "" && a.Deployed != ""
}

// IsEmpty reports whether no link is present.
func (a ArtifactRecord) IsEmpty() bool {
	return a.Lovable == "" && a.GitHub == "" && a.Deployed == ""
}

// Status is the derived project phase.
type Status string

const (
	StatusNotStarted Status = "not-started"
	StatusInProgress Status = "in-progress"
	StatusShipped    Status = "shipped"
)

// ParseStatus validates a persisted status string.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusNotStarted, StatusInProgress, StatusShipped:
		return st, nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}

// Label renders the badge text, e.g. "not-started" -> "Not Started".
func (s Status) Label() string {
	// A Caser holds state; one per call.
	return cases.Title(language.English).String(strings.ReplaceAll(string(s), "-", " "))
}
