package harness

// Outcome values recorded for each executed action.
const (
	OutcomeOK              = "ok"
	OutcomeInvalidLinks    = "invalid_links"
	OutcomeUnknownItem     = "unknown_item"
	OutcomeCopyDisabled    = "copy_disabled"
	OutcomeClipboardFailed = "clipboard_failed"
	OutcomeCorruptRecord   = "corrupt_record"
)

// TraceEvent is the observable result of one action.
type TraceEvent struct {
	Step          int      `json:"step"` // 1-based index into the flow
	Action        string   `json:"action"`
	Target        string   `json:"target,omitempty"` // "test 3", or the key for put
	Outcome       string   `json:"outcome"`
	Status        string   `json:"status,omitempty"` // derived status, for load and submit
	InvalidFields []string `json:"invalid_fields,omitempty"`
	Notifications []string `json:"notifications,omitempty"`
	Seq           int64    `json:"seq"` // store write seq after the action
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expect clause and assertion held.
	Pass bool `json:"pass"`

	// Trace has one event per executed flow action, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expect and assertion failures.
	Errors []string `json:"errors,omitempty"`

	// Records is the final store contents, key to raw value.
	Records map[string]string `json:"records"`

	// Copies is every text the clipboard accepted.
	Copies []string `json:"copies,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Trace:   []TraceEvent{},
		Errors:  []string{},
		Records: make(map[string]string),
	}
}

// AddError adds a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

func (r *Result) addEvent(e TraceEvent) {
	r.Trace = append(r.Trace, e)
}
