package tracker

import (
	"strings"
)

// Project describes the tracked project for the submission block.
type Project struct {
	Title    string
	Label    string
	Features []string
}

// DefaultProject is used when no configuration overrides it.
var DefaultProject = Project{
	Title: "Job Notification Tracker",
	Label: "Project 1",
	Features: []string{
		"Intelligent match scoring",
		"Daily digest simulation",
		"Status tracking",
		"Test checklist enforced",
	},
}

// ShippedMessage is shown on the proof view once the project is shipped.
func (p Project) ShippedMessage() string {
	return p.Label + " Shipped Successfully."
}

const submissionRule = "------------------------------------------"

// SubmissionText formats the final submission block. Absent links render
// as empty lines; nothing is validated here.
func SubmissionText(p Project, a ArtifactRecord) string {
	var b strings.Builder
	b.WriteString(submissionRule + "\n")
	b.WriteString(p.Title + " — Final Submission\n")
	for _, f := range ArtifactFields {
		b.WriteString("\n" + f.Label() + ":\n")
		b.WriteString(a.Get(f) + "\n")
	}
	b.WriteString("\nCore Features:\n")
	for _, feat := range p.Features {
		b.WriteString("- " + feat + "\n")
	}
	b.WriteString(submissionRule)
	return b.String()
}
