// Package setter runs one daily lineup pass: fetch, adjust, choose, submit, report.
package setter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/lineup"
	"github.com/preston-bernstein/nhl-lineup-service/internal/domain/players"
	core "github.com/preston-bernstein/nhl-lineup-service/internal/lineup"
	"github.com/preston-bernstein/nhl-lineup-service/internal/logging"
	"github.com/preston-bernstein/nhl-lineup-service/internal/metrics"
	"github.com/preston-bernstein/nhl-lineup-service/internal/notify"
	"github.com/preston-bernstein/nhl-lineup-service/internal/providers"
	"github.com/preston-bernstein/nhl-lineup-service/internal/timeutil"
)

const maxRecordedMessage = 2000

// TokenSource checks that API credentials are usable before any upstream call.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// HistoryWriter persists the outcome of each run.
type HistoryWriter interface {
	WriteRecord(rec lineup.Record) error
}

// Deps are the collaborators of a Service. Tokens, Schedule, Notifier,
// History and Metrics are optional.
type Deps struct {
	Tokens    TokenSource
	Roster    providers.RosterProvider
	Schedule  providers.ScheduleProvider
	Submitter providers.LineupSubmitter
	Notifier  notify.Notifier
	History   HistoryWriter
	Metrics   *metrics.Recorder
	Logger    *slog.Logger
}

// Options configure what a Service sets.
type Options struct {
	TeamKey  string
	Slots    lineup.SlotTable
	DryRun   bool
	Location *time.Location
}

// SubmitError is returned when the upstream answers a submission with a non-200 status.
type SubmitError struct {
	StatusCode int
	Body       string
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("lineup submission rejected with status %d", e.StatusCode)
}

// Result describes one run.
type Result struct {
	RunID         string            `json:"runId"`
	Date          string            `json:"date"`
	Outcome       string            `json:"outcome"`
	Changed       bool              `json:"changed"`
	Submitted     bool              `json:"submitted"`
	DryRun        bool              `json:"dryRun"`
	ScheduleKnown bool              `json:"scheduleKnown"`
	StatusCode    int               `json:"statusCode,omitempty"`
	Message       string            `json:"message,omitempty"`
	Moves         []core.Move       `json:"moves,omitempty"`
	Assignment    lineup.Assignment `json:"assignment"`
	Players       []players.Player  `json:"-"`
}

// RunOption adjusts a single run.
type RunOption func(*runSettings)

type runSettings struct {
	dryRun bool
}

// WithDryRun computes the lineup without submitting it.
func WithDryRun(dryRun bool) RunOption {
	return func(s *runSettings) { s.dryRun = dryRun }
}

// DryRunRequested reports whether opts ask for a dry run, starting from def.
func DryRunRequested(def bool, opts ...RunOption) bool {
	settings := runSettings{dryRun: def}
	for _, opt := range opts {
		opt(&settings)
	}
	return settings.dryRun
}

// Service sequences the lineup collaborators.
type Service struct {
	deps  Deps
	opts  Options
	now   func() time.Time
	newID func() string
}

// NewService constructs a Service. An empty slot table falls back to the default.
func NewService(deps Deps, opts Options) *Service {
	if len(opts.Slots) == 0 {
		opts.Slots = lineup.DefaultSlots()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &Service{
		deps:  deps,
		opts:  opts,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// TeamKey returns the team this service manages.
func (s *Service) TeamKey() string {
	return s.opts.TeamKey
}

// Run performs one lineup pass for date (YYYY-MM-DD; empty means today).
func (s *Service) Run(ctx context.Context, date string, opts ...RunOption) (res Result, err error) {
	settings := runSettings{dryRun: DryRunRequested(s.opts.DryRun, opts...)}

	start := s.now()
	res = Result{
		RunID:  s.newID(),
		Date:   timeutil.ResolveDate(date, start, s.opts.Location),
		DryRun: settings.dryRun,
	}

	ctx, logger := logging.ForRun(ctx, s.deps.Logger, res.RunID, s.opts.TeamKey, res.Date)

	defer func() {
		if err != nil && res.Outcome == "" {
			res.Outcome = metrics.OutcomeFailed
		}
		s.finish(logger, res, err, start)
	}()

	if s.deps.Roster == nil {
		return res, providers.ErrProviderUnavailable
	}

	if s.deps.Tokens != nil {
		if _, err := s.deps.Tokens.AccessToken(ctx); err != nil {
			s.notifyFailure(ctx, 0, "Authentication failed: "+err.Error())
			return res, fmt.Errorf("access token: %w", err)
		}
	}

	roster, err := s.deps.Roster.FetchRoster(ctx, s.opts.TeamKey)
	if err != nil {
		s.notifyFailure(ctx, statusOf(err), "Roster fetch failed: "+err.Error())
		return res, fmt.Errorf("fetch roster: %w", err)
	}
	res.Players = roster

	active := s.activeTeams(ctx, logger, res.Date)
	res.ScheduleKnown = len(active) > 0
	if !res.ScheduleKnown {
		logging.Warn(logger, "schedule unknown, ranks not adjusted")
	}

	a := core.Choose(core.AdjustForSchedule(roster, active), s.opts.Slots)
	res.Assignment = a
	res.Moves = core.Moves(roster, a)
	res.Changed = len(res.Moves) > 0

	if !res.Changed {
		res.Outcome = metrics.OutcomeUnchanged
		logging.Info(logger, "lineup already optimal", logging.FieldCount, len(roster))
		return res, nil
	}
	if settings.dryRun {
		res.Outcome = metrics.OutcomeDryRun
		logging.Info(logger, "dry run, lineup not submitted", "moves", len(res.Moves))
		return res, nil
	}
	if s.deps.Submitter == nil {
		return res, providers.ErrProviderUnavailable
	}

	status, body, err := s.deps.Submitter.SubmitLineup(ctx, s.opts.TeamKey, res.Date, a)
	res.StatusCode = status
	res.Message = body
	if err != nil {
		s.notifyFailure(ctx, status, "Submission failed: "+err.Error())
		return res, fmt.Errorf("submit lineup: %w", err)
	}
	s.deps.Metrics.RecordSubmission(status)

	if status != http.StatusOK {
		res.Outcome = metrics.OutcomeRejected
		s.notifyFailure(ctx, status, body)
		return res, &SubmitError{StatusCode: status, Body: body}
	}

	res.Submitted = true
	res.Outcome = metrics.OutcomeSubmitted
	logging.Info(logger, "lineup submitted", "moves", len(res.Moves), logging.FieldStatusCode, status)
	if s.deps.Notifier != nil {
		// Delivery problems are logged by the notifier and never fail the run.
		_ = s.deps.Notifier.NotifySuccess(ctx, a)
	}
	return res, nil
}

func (s *Service) activeTeams(ctx context.Context, logger *slog.Logger, date string) map[string]struct{} {
	if s.deps.Schedule == nil {
		return nil
	}
	active, err := s.deps.Schedule.ActiveTeams(ctx, date)
	if err != nil {
		logging.Warn(logger, "schedule lookup failed", "err", err)
		return nil
	}
	return active
}

func (s *Service) notifyFailure(ctx context.Context, status int, message string) {
	if s.deps.Notifier == nil {
		return
	}
	_ = s.deps.Notifier.NotifyFailure(ctx, status, message)
}

func (s *Service) finish(logger *slog.Logger, res Result, runErr error, start time.Time) {
	duration := s.now().Sub(start)
	s.deps.Metrics.RecordRun(duration, res.Outcome, runErr)

	if runErr != nil {
		logging.Error(logger, "lineup run failed", runErr,
			logging.FieldDurationMS, duration.Milliseconds(),
			logging.FieldOutcome, res.Outcome,
		)
	} else {
		logging.Info(logger, "lineup run complete",
			logging.FieldDurationMS, duration.Milliseconds(),
			logging.FieldOutcome, res.Outcome,
		)
	}

	if s.deps.History == nil {
		return
	}
	if err := s.deps.History.WriteRecord(res.record(s.opts.TeamKey, runErr)); err != nil {
		logging.Warn(logger, "lineup history write failed", "err", err)
	}
}

func (r Result) record(teamKey string, runErr error) lineup.Record {
	rec := lineup.Record{
		RunID:         r.RunID,
		Date:          r.Date,
		TeamKey:       teamKey,
		Outcome:       r.Outcome,
		Changed:       r.Changed,
		Submitted:     r.Submitted,
		DryRun:        r.DryRun,
		ScheduleKnown: r.ScheduleKnown,
		StatusCode:    r.StatusCode,
		Message:       notify.Truncate(r.Message, maxRecordedMessage),
		Assignment:    r.Assignment,
	}
	if runErr != nil {
		rec.Error = runErr.Error()
	}
	return rec
}

func statusOf(err error) int {
	if stErr, ok := providers.AsStatusError(err); ok {
		return stErr.StatusCode
	}
	if rl, ok := providers.AsRateLimitError(err); ok {
		return rl.StatusCode
	}
	return 0
}

// IsSubmitError reports whether err is a rejected submission.
func IsSubmitError(err error) bool {
	var subErr *SubmitError
	return errors.As(err, &subErr)
}
