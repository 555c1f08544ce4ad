package cli

import (
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/shipcheck/internal/config"
	"github.com/roach88/shipcheck/internal/store"
	"github.com/roach88/shipcheck/internal/tracker"
	"github.com/roach88/shipcheck/internal/view"
)

// session is one command invocation: the equivalent of a page load against
// the profile database.
type session struct {
	id        string
	opts      *RootOptions
	cfg       *config.Config
	store     *store.Store
	records   *store.Records
	logger    *slog.Logger
	formatter *OutputFormatter
}

// openSession loads config and opens the database. Failures are reported
// through the formatter and returned as an ExitError.
func openSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	id := uuid.Must(uuid.NewV7()).String()

	s := &session{
		id:   id,
		opts: opts,
		formatter: &OutputFormatter{
			Format:    opts.Format,
			Writer:    cmd.OutOrStdout(),
			ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
			Verbose:   opts.Verbose,
			Session:   id,
		},
		logger: newLogger(cmd.ErrOrStderr(), opts.Verbose).With("session", id),
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, s.report(ErrCodeConfig, ExitCommandError, "failed to load config", err, nil)
	}
	s.cfg = cfg

	path := cfg.Database
	if opts.Database != "" {
		path = opts.Database
	}
	s.formatter.VerboseLog("Opening database %s", path)
	s.logger.Debug("opening database", "path", path, "prefix", cfg.KeyPrefix)

	st, err := store.Open(path)
	if err != nil {
		return nil, s.report(ErrCodeStore, ExitCommandError, "failed to open database", err, nil)
	}
	s.store = st
	s.records = store.NewRecords(st, cfg.KeyPrefix)

	return s, nil
}

// newLogger writes text logs to w. Warnings and above by default, everything
// with --verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (s *session) Close() error {
	return s.store.Close()
}

func (s *session) checklist() *view.Checklist {
	return view.NewChecklist(s.records, s.logger)
}

func (s *session) proof() *view.Proof {
	opts := []view.ProofOption{
		view.WithProject(s.cfg.TrackerProject()),
		view.WithLogger(s.logger),
	}
	if s.opts.Clipboard != nil {
		opts = append(opts, view.WithClipboard(s.opts.Clipboard))
	}
	return view.NewProof(s.records, opts...)
}

// fail classifies err, reports it, and returns the matching ExitError.
func (s *session) fail(err error) error {
	var (
		verrs   tracker.ValidationErrors
		clipErr *view.ClipboardError
	)
	switch {
	case errors.As(err, &verrs):
		return s.report(ErrCodeValidation, ExitFailure, "artifacts not saved", err, verrs)
	case errors.As(err, &clipErr):
		return s.report(ErrCodeClipboard, ExitFailure, view.MsgCopyFailed, err, nil)
	case errors.Is(err, store.ErrCorruptRecord):
		return s.report(ErrCodeCorrupt, ExitCommandError, "stored data is corrupt", err, nil)
	case errors.Is(err, view.ErrUnknownItem):
		return s.report(ErrCodeUnknownItem, ExitFailure, "unknown item", err, nil)
	case errors.Is(err, view.ErrCopyDisabled):
		return s.report(ErrCodeCopyDisabled, ExitFailure, "copy disabled", err, nil)
	default:
		return s.report(ErrCodeGeneric, ExitCommandError, "command failed", err, nil)
	}
}

func (s *session) report(code string, exit int, message string, err error, details interface{}) error {
	_ = s.formatter.Error(code, message+": "+err.Error(), details)
	return reported(WrapExitError(exit, message, err))
}

func reported(e *ExitError) *ExitError {
	e.Reported = true
	return e
}
