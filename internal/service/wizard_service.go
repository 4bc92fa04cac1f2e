package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/proffreport/profreport-backend/internal/catalog"
	"github.com/proffreport/profreport-backend/internal/config"
	"github.com/proffreport/profreport-backend/internal/gateway"
	"github.com/proffreport/profreport-backend/internal/model"
	"github.com/proffreport/profreport-backend/internal/questionnaire"
	"github.com/proffreport/profreport-backend/internal/wizard"
	"github.com/rs/zerolog"
)

// User-facing submission failure messages.
const (
	msgSendFailed   = "Ошибка при отправке данных"
	msgSubmitFailed = "Ошибка при отправке"
)

// submitLockMargin keeps the lock alive a little past the submit timeout.
const submitLockMargin = 5 * time.Second

// SessionStore persists wizard states between requests.
type SessionStore interface {
	Save(ctx context.Context, st *model.WizardState) error
	Load(ctx context.Context, sessionID string) (*model.WizardState, error)
	Delete(ctx context.Context, sessionID string) error
	AcquireSubmitLock(ctx context.Context, sessionID string, ttl time.Duration) (bool, error)
	ReleaseSubmitLock(ctx context.Context, sessionID string) error
}

// QuestionnaireSender delivers transformed payloads on the direct path.
type QuestionnaireSender interface {
	Send(ctx context.Context, payload model.SubmissionPayload) error
}

// Queue accepts background jobs.
type Queue interface {
	Push(ctx context.Context, queue string, v any) error
}

// SubmissionError is a failed payment submission. The wizard stays on the
// payment stage and Message is shown to the visitor.
type SubmissionError struct {
	Message string
	View    *WizardView
}

func (e *SubmissionError) Error() string { return "submission failed: " + e.Message }

// SectionView is the heading shown above the current question.
type SectionView struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// WizardView is everything a client needs to render the current stage.
type WizardView struct {
	SessionID  string             `json:"session_id"`
	TestType   model.TestType     `json:"test_type"`
	Title      string             `json:"title"`
	Price      int                `json:"price"`
	Stage      model.Stage        `json:"stage"`
	Index      int                `json:"index"`
	Total      int                `json:"total"`
	Progress   int                `json:"progress"`
	IsLast     bool               `json:"is_last"`
	CanGoBack  bool               `json:"can_go_back"`
	Section    *SectionView       `json:"section,omitempty"`
	Question   *model.Question    `json:"question,omitempty"`
	Answer     *model.AnswerValue `json:"answer,omitempty"`
	Answers    model.Answers      `json:"answers"`
	Submitting bool               `json:"submitting"`
	Error      string             `json:"error,omitempty"`
}

// WizardDeps groups the collaborators of WizardService.
type WizardDeps struct {
	Catalog       *catalog.Catalog
	Store         SessionStore
	Tokens        *TokenService
	Access        *AccessService
	Sender        QuestionnaireSender
	Submitter     gateway.Submitter
	Queue         Queue
	SubmitTimeout time.Duration
	ExitRedirect  string
}

// WizardService runs wizard operations against stored sessions. Each call
// loads the state, applies one controller transition and saves it back.
type WizardService struct {
	deps WizardDeps
	log  zerolog.Logger
	now  func() time.Time
}

// NewWizardService creates a new WizardService.
func NewWizardService(deps WizardDeps, log zerolog.Logger) *WizardService {
	return &WizardService{
		deps: deps,
		log:  log.With().Str("component", "wizard_service").Logger(),
		now:  time.Now,
	}
}

// CreateSession mounts a fresh wizard for testType and returns its bearer token.
func (s *WizardService) CreateSession(ctx context.Context, testType model.TestType) (string, *WizardView, error) {
	cfg, err := s.deps.Catalog.Test(testType)
	if err != nil {
		return "", nil, err
	}

	st := model.NewWizardState(uuid.New().String(), testType, s.now().UTC())
	if err := s.deps.Store.Save(ctx, st); err != nil {
		return "", nil, fmt.Errorf("save session: %w", err)
	}

	token, err := s.deps.Tokens.Issue(st.SessionID, testType)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().
		Str("session_id", st.SessionID).
		Str("test_type", string(testType)).
		Msg("Wizard session created")

	return token, buildView(wizard.NewController(cfg, st)), nil
}

// GetSession returns the current view of a session.
func (s *WizardService) GetSession(ctx context.Context, sessionID string) (*WizardView, error) {
	ctrl, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return buildView(ctrl), nil
}

// Start leaves the start screen once consent is given.
func (s *WizardService) Start(ctx context.Context, sessionID string, consent bool) (*WizardView, error) {
	return s.mutate(ctx, sessionID, func(c *wizard.Controller) error {
		return c.Start(consent)
	})
}

// Answer records the answer to the current question.
func (s *WizardService) Answer(ctx context.Context, sessionID string, v model.AnswerValue) (*WizardView, error) {
	return s.mutate(ctx, sessionID, func(c *wizard.Controller) error {
		return c.Answer(v)
	})
}

// Advance moves to the next question or to payment.
func (s *WizardService) Advance(ctx context.Context, sessionID string) (*WizardView, error) {
	return s.mutate(ctx, sessionID, func(c *wizard.Controller) error {
		return c.Advance()
	})
}

// Retreat goes back one question.
func (s *WizardService) Retreat(ctx context.Context, sessionID string) (*WizardView, error) {
	return s.mutate(ctx, sessionID, func(c *wizard.Controller) error {
		return c.Retreat()
	})
}

// Exit abandons the test, deletes the session and returns where to send the
// visitor.
func (s *WizardService) Exit(ctx context.Context, sessionID string) (string, error) {
	ctrl, err := s.load(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if err := ctrl.Exit(); err != nil {
		return "", err
	}
	if err := s.deps.Store.Delete(ctx, sessionID); err != nil {
		return "", fmt.Errorf("delete session: %w", err)
	}

	s.log.Info().Str("session_id", sessionID).Msg("Wizard session abandoned")
	return s.deps.ExitRedirect, nil
}

// SubmitPayment sends the finished questionnaire down the path selected by
// the access code. The form is expected to be validated by the caller.
//
// Only one submission per session runs at a time; the lock and the
// submitting flag are released on every exit path.
func (s *WizardService) SubmitPayment(ctx context.Context, sessionID string, req model.PaymentRequest) (*WizardView, error) {
	locked, err := s.deps.Store.AcquireSubmitLock(ctx, sessionID, s.deps.SubmitTimeout+submitLockMargin)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, wizard.ErrSubmissionInFlight
	}
	defer func() {
		if err := s.deps.Store.ReleaseSubmitLock(context.WithoutCancel(ctx), sessionID); err != nil {
			s.log.Error().Err(err).Str("session_id", sessionID).Msg("Failed to release submit lock")
		}
	}()

	// The state is read under the lock so a submission that finished while
	// this request waited is seen as success, not resent.
	ctrl, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if ctrl.State().Stage != model.StagePayment {
		return nil, wizard.ErrWrongStage
	}

	// Holding the lock while the stored flag is set means a previous
	// request died mid-submission.
	if ctrl.State().Submitting {
		s.log.Warn().Str("session_id", sessionID).Msg("Clearing stale submitting flag")
		ctrl.FailSubmit("")
	}
	if err := ctrl.BeginSubmit(); err != nil {
		return nil, err
	}
	if err := s.deps.Store.Save(ctx, ctrl.State()); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	submitCtx, cancel := context.WithTimeout(ctx, s.deps.SubmitTimeout)
	path, dropped, failure := s.deliver(submitCtx, ctrl, req)
	cancel()

	if failure != "" {
		ctrl.FailSubmit(failure)
	} else {
		ctrl.CompleteSubmit()
	}

	saveCtx := context.WithoutCancel(ctx)
	if err := s.deps.Store.Save(saveCtx, ctrl.State()); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	view := buildView(ctrl)
	log := s.log.With().
		Str("session_id", sessionID).
		Str("path", string(path)).
		Logger()

	if failure != "" {
		log.Warn().Str("reason", failure).Msg("Payment submission failed")
		return view, &SubmissionError{Message: failure, View: view}
	}

	log.Info().Msg("Questionnaire submitted")
	s.archive(saveCtx, ctrl, req, path, dropped)
	return view, nil
}

// deliver runs one of the two gateway paths and returns the user-facing
// failure message, empty on success.
func (s *WizardService) deliver(ctx context.Context, ctrl *wizard.Controller, req model.PaymentRequest) (model.SubmissionPath, int, string) {
	st := ctrl.State()
	cfg, err := s.deps.Catalog.Test(st.TestType)
	if err != nil {
		s.log.Error().Err(err).Str("test_type", string(st.TestType)).Msg("Session refers to unknown test")
		return model.SubmissionPathStandard, 0, msgSubmitFailed
	}

	if s.deps.Access.Grants(req.Code) {
		res := questionnaire.Transform(model.UserIdentity{Name: req.Name, Email: req.Email}, st.Answers, cfg)
		if len(res.Dropped) > 0 {
			ids := make([]string, 0, len(res.Dropped))
			for _, d := range res.Dropped {
				ids = append(ids, d.QuestionID+":"+string(d.Reason))
			}
			s.log.Warn().
				Str("session_id", st.SessionID).
				Int("dropped", len(res.Dropped)).
				Strs("answers", ids).
				Msg("Answers left out of questionnaire payload")
		}

		if err := s.deps.Sender.Send(ctx, res.Payload); err != nil {
			s.log.Error().Err(err).Str("session_id", st.SessionID).Msg("Questionnaire delivery failed")
			return model.SubmissionPathDirect, len(res.Dropped), msgSendFailed
		}
		return model.SubmissionPathDirect, len(res.Dropped), ""
	}

	result := s.deps.Submitter.Submit(ctx, model.StandardPayload{
		TestType: cfg.TestType,
		Email:    req.Email,
		Tariff:   cfg.Tariff,
		Answers:  st.Answers,
		Consent:  true,
	})
	if !result.Success {
		if result.Error != "" {
			return model.SubmissionPathStandard, 0, result.Error
		}
		return model.SubmissionPathStandard, 0, msgSubmitFailed
	}
	return model.SubmissionPathStandard, 0, ""
}

func (s *WizardService) archive(ctx context.Context, ctrl *wizard.Controller, req model.PaymentRequest, path model.SubmissionPath, dropped int) {
	if s.deps.Queue == nil {
		return
	}
	st := ctrl.State()
	cfg, _ := s.deps.Catalog.Test(st.TestType)

	rec := model.SubmissionRecord{
		SessionID:   st.SessionID,
		TestType:    st.TestType,
		Name:        req.Name,
		Email:       req.Email,
		Path:        path,
		Answered:    len(st.Answers),
		Dropped:     dropped,
		SubmittedAt: s.now().UTC(),
	}
	if cfg != nil {
		rec.Tariff = cfg.Tariff
	}

	if err := s.deps.Queue.Push(ctx, config.WorkerKey.SubmissionLogQueue, rec); err != nil {
		s.log.Error().Err(err).Str("session_id", st.SessionID).Msg("Failed to enqueue submission record")
	}
}

func (s *WizardService) load(ctx context.Context, sessionID string) (*wizard.Controller, error) {
	st, err := s.deps.Store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cfg, err := s.deps.Catalog.Test(st.TestType)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	return wizard.NewController(cfg, st), nil
}

// mutate applies fn and persists the result. A refused transition leaves the
// stored state untouched.
func (s *WizardService) mutate(ctx context.Context, sessionID string, fn func(*wizard.Controller) error) (*WizardView, error) {
	ctrl, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(ctrl); err != nil {
		return nil, err
	}
	if err := s.deps.Store.Save(ctx, ctrl.State()); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return buildView(ctrl), nil
}

func buildView(c *wizard.Controller) *WizardView {
	st := c.State()
	v := &WizardView{
		SessionID:  st.SessionID,
		TestType:   st.TestType,
		Stage:      st.Stage,
		Index:      st.Index,
		Total:      c.Total(),
		Answers:    st.Answers,
		Submitting: st.Submitting,
		Error:      st.LastError,
	}
	if cfg := c.Config(); cfg != nil {
		v.Title = cfg.Title
		v.Price = cfg.Price
	}

	if st.Stage != model.StageTest {
		return v
	}

	v.Progress = c.Progress()
	v.IsLast = c.IsLast()
	v.CanGoBack = st.Index > 0
	if sec := c.CurrentSection(); sec != nil {
		v.Section = &SectionView{ID: sec.ID, Title: sec.Title, Subtitle: sec.Subtitle}
	}
	if q := c.CurrentQuestion(); q != nil {
		v.Question = q
		if a, ok := c.Answers().Get(q.ID); ok {
			v.Answer = &a
		}
	}
	return v
}
