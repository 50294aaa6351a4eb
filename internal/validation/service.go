package validation

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/devsecquest/internal/logging"
	"github.com/abhisek/devsecquest/internal/rules"
)

// DefaultAwardPoints is the score granted for a passing submission.
const DefaultAwardPoints = 100

// Outcome is the result of validating one submission.
// Passed is true exactly when Findings is empty.
type Outcome struct {
	Passed        bool            `json:"passed"`
	Findings      []rules.Finding `json:"findings"`
	PointsAwarded int             `json:"pointsAwarded"`
}

// Messages returns the finding messages in rule order.
func (o Outcome) Messages() []string {
	out := make([]string, len(o.Findings))
	for i, f := range o.Findings {
		out[i] = f.Message
	}
	return out
}

// RuleIDs returns the IDs of the rules that fired, in rule order.
func (o Outcome) RuleIDs() []string {
	out := make([]string, len(o.Findings))
	for i, f := range o.Findings {
		out[i] = f.RuleID
	}
	return out
}

// ChallengeCompleter records that a challenge was completed.
type ChallengeCompleter interface {
	MarkCompleted(ctx context.Context, name string, at time.Time) (int64, error)
}

// Recorder observes validations. metrics.Collector satisfies it.
type Recorder interface {
	ObserveValidation(passed bool, ruleIDs []string, elapsed time.Duration)
	ObservePersistenceError()
}

// Service turns submissions into scoring decisions and reports passes to the
// challenge store.
type Service struct {
	engine         *rules.Engine
	completer      ChallengeCompleter
	awardPoints    int
	challengeName  string
	persistTimeout time.Duration
	logger         zerolog.Logger
	recorder       Recorder
	now            func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithAwardPoints sets the points granted for a pass.
func WithAwardPoints(n int) Option {
	return func(s *Service) { s.awardPoints = n }
}

// WithChallengeName sets the challenge marked completed on a pass.
func WithChallengeName(name string) Option {
	return func(s *Service) { s.challengeName = name }
}

// WithPersistTimeout bounds the completion update.
func WithPersistTimeout(d time.Duration) Option {
	return func(s *Service) { s.persistTimeout = d }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.logger = logging.Component(l, "validation") }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithClock overrides the completion timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a validation service. completer may be nil, in which
// case passes are scored but not recorded.
func NewService(engine *rules.Engine, completer ChallengeCompleter, opts ...Option) *Service {
	s := &Service{
		engine:         engine,
		completer:      completer,
		awardPoints:    DefaultAwardPoints,
		challengeName:  CICDChallengeName,
		persistTimeout: 5 * time.Second,
		logger:         zerolog.Nop(),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Evaluate scores doc without side effects. A nil doc yields ErrMissingInput.
func (s *Service) Evaluate(doc *string) (Outcome, error) {
	if doc == nil {
		return Outcome{}, ErrMissingInput
	}

	start := time.Now()
	findings := s.engine.Evaluate(*doc)
	outcome := Outcome{Findings: findings}
	if len(findings) == 0 {
		outcome.Passed = true
		outcome.PointsAwarded = s.awardPoints
	}

	if s.recorder != nil {
		s.recorder.ObserveValidation(outcome.Passed, outcome.RuleIDs(), time.Since(start))
	}
	return outcome, nil
}

// ValidateSubmission scores doc and, on a pass, marks the challenge completed.
// A store failure is returned as *PersistenceError together with the
// unchanged Outcome.
func (s *Service) ValidateSubmission(ctx context.Context, doc *string) (Outcome, error) {
	outcome, err := s.Evaluate(doc)
	if err != nil {
		return outcome, err
	}

	s.logger.Debug().
		Bool("passed", outcome.Passed).
		Strs("rules", outcome.RuleIDs()).
		Msg("submission evaluated")

	if !outcome.Passed || s.completer == nil {
		return outcome, nil
	}

	if err := s.recordCompletion(ctx); err != nil {
		if s.recorder != nil {
			s.recorder.ObservePersistenceError()
		}
		s.logger.Warn().Err(err).Str("challenge", s.challengeName).Msg("failed to record challenge completion")
		return outcome, &PersistenceError{Challenge: s.challengeName, Err: err}
	}
	return outcome, nil
}

// Rules returns the rules this service evaluates.
func (s *Service) Rules() []rules.Rule {
	return s.engine.Rules()
}

func (s *Service) recordCompletion(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.persistTimeout)
	defer cancel()

	n, err := s.completer.MarkCompleted(ctx, s.challengeName, s.now())
	if err != nil {
		return err
	}
	if n == 0 {
		s.logger.Debug().Str("challenge", s.challengeName).Msg("no challenge record to complete")
	}
	return nil
}
