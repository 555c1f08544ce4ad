package tracker

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// InvalidURLMessage is shown next to a field that fails validation.
const InvalidURLMessage = "Please enter a valid URL"

// ValidationError reports one submitted field that failed the URL rule.
type ValidationError struct {
	Field   ArtifactField `json:"field"`
	Value   string        `json:"value"`
	Message string        `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every failing field of one submission.
type ValidationErrors []ValidationError

func (es ValidationErrors) Error() string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.Error()
	}
	return fmt.Sprintf("%d invalid field(s): %s", len(es), strings.Join(parts, "; "))
}

// Fields returns the failing field names in form order.
func (es ValidationErrors) Fields() []ArtifactField {
	out := make([]ArtifactField, len(es))
	for i, e := range es {
		out[i] = e.Field
	}
	return out
}

// NormalizeInput trims surrounding whitespace and applies NFC so visually
// identical links compare equal.
func NormalizeInput(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// IsValidURL reports whether s is an absolute URL with scheme http or https
// and a host. The empty string is invalid.
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if !u.IsAbs() || u.Host == "" {
		return false
	}
	// url.Parse lowercases the scheme.
	return u.Scheme == "http" || u.Scheme == "https"
}

// ValidateArtifacts normalises and validates the three submitted links.
// Every field is checked; on failure the returned error is ValidationErrors
// with one entry per invalid field and the record is zero.
func ValidateArtifacts(lovable, github, deployed string) (ArtifactRecord, error) {
	rec := ArtifactRecord{
		Lovable:  NormalizeInput(lovable),
		GitHub:   NormalizeInput(github),
		Deployed: NormalizeInput(deployed),
	}

	var errs ValidationErrors
	for _, f := range ArtifactFields {
		v := rec.Get(f)
		if !IsValidURL(v) {
			errs = append(errs, ValidationError{Field: f, Value: v, Message: InvalidURLMessage})
		}
	}
	if len(errs) > 0 {
		return ArtifactRecord{}, errs
	}
	return rec, nil
}
