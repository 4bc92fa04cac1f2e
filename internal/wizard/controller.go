// Package wizard implements the linear start → test → payment → success flow
// of a test attempt. It is pure state: loading and saving is up to the caller.
package wizard

import (
	"math"

	"github.com/proffreport/profreport-backend/internal/model"
)

// Controller drives one wizard state. It is not safe for concurrent use; a
// state has exactly one owner at a time.
type Controller struct {
	cfg       *model.TestConfig
	questions []*model.Question
	state     *model.WizardState
	answers   *AnswerStore
}

// NewController attaches cfg to an existing state.
func NewController(cfg *model.TestConfig, state *model.WizardState) *Controller {
	store := NewAnswerStore(state.Answers)
	state.Answers = store.Record()
	return &Controller{
		cfg:       cfg,
		questions: cfg.Questions(),
		state:     state,
		answers:   store,
	}
}

// State returns the live state.
func (c *Controller) State() *model.WizardState { return c.state }

// Config returns the test the controller drives.
func (c *Controller) Config() *model.TestConfig { return c.cfg }

// Answers returns the answer store.
func (c *Controller) Answers() *AnswerStore { return c.answers }

// Total is the number of questions across all sections.
func (c *Controller) Total() int { return len(c.questions) }

// Progress is the percentage shown in the test stage, 100 at the last question.
func (c *Controller) Progress() int {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(c.state.Index+1) / float64(total) * 100))
}

// CurrentQuestion returns the question at the current index, or nil outside
// the test stage.
func (c *Controller) CurrentQuestion() *model.Question {
	if c.state.Stage != model.StageTest {
		return nil
	}
	if c.state.Index < 0 || c.state.Index >= len(c.questions) {
		return nil
	}
	return c.questions[c.state.Index]
}

// CurrentSection returns the section of the current question.
func (c *Controller) CurrentSection() *model.Section {
	q := c.CurrentQuestion()
	if q == nil {
		return nil
	}
	return c.cfg.SectionOf(q.ID)
}

// IsLast reports whether the current question is the final one.
func (c *Controller) IsLast() bool {
	return c.state.Stage == model.StageTest && c.state.Index == len(c.questions)-1
}

// Start leaves the start screen. Consent is mandatory.
func (c *Controller) Start(consent bool) error {
	if c.state.Stage != model.StageStart {
		return guard(GuardWrongStage, "cannot start from %s", c.state.Stage)
	}
	if !consent {
		return ErrConsentRequired
	}
	if len(c.questions) == 0 {
		return guard(GuardWrongStage, "test %s has no questions", c.cfg.TestType)
	}
	c.state.Stage = model.StageTest
	c.state.Index = 0
	return nil
}

// Answer records v for the current question after checking it against the
// question type and options. Checkbox selections are deduplicated.
func (c *Controller) Answer(v model.AnswerValue) error {
	q := c.CurrentQuestion()
	if q == nil {
		return guard(GuardWrongStage, "answers are only accepted during the test")
	}

	if q.Type.IsMulti() != v.IsMulti {
		return guard(GuardInvalidAnswer, "question %s expects a %s answer", q.ID, q.Type)
	}

	if !v.IsMulti {
		if !q.HasOption(v.Single) {
			return guard(GuardInvalidAnswer, "%q is not an option of %s", v.Single, q.ID)
		}
		c.answers.Set(q.ID, v)
		return nil
	}

	seen := make(map[model.OptionValue]bool, len(v.Multi))
	selected := make([]model.OptionValue, 0, len(v.Multi))
	for _, m := range v.Multi {
		if !q.HasOption(m) {
			return guard(GuardInvalidAnswer, "%q is not an option of %s", m, q.ID)
		}
		if seen[m] {
			continue
		}
		seen[m] = true
		selected = append(selected, m)
	}
	c.answers.Set(q.ID, model.MultiAnswer(selected...))
	return nil
}

// Advance moves to the next question, or to payment after the last one. The
// current question must be answered.
func (c *Controller) Advance() error {
	q := c.CurrentQuestion()
	if q == nil {
		return guard(GuardWrongStage, "cannot advance from %s", c.state.Stage)
	}
	if !c.answers.Answered(q.ID) {
		return ErrAnswerRequired
	}

	if c.state.Index < len(c.questions)-1 {
		c.state.Index++
		return nil
	}
	c.state.Stage = model.StagePayment
	return nil
}

// Retreat goes back one question. It is a no-op on the first question.
func (c *Controller) Retreat() error {
	if c.state.Stage != model.StageTest {
		return guard(GuardWrongStage, "cannot go back from %s", c.state.Stage)
	}
	if c.state.Index > 0 {
		c.state.Index--
	}
	return nil
}

// Exit abandons the test. Answers are discarded; the caller is expected to
// drop the state entirely.
func (c *Controller) Exit() error {
	if c.state.Stage != model.StageTest {
		return guard(GuardWrongStage, "cannot exit from %s", c.state.Stage)
	}
	c.answers = NewAnswerStore(nil)
	c.state.Answers = c.answers.Record()
	c.state.Index = 0
	c.state.Stage = model.StageStart
	return nil
}

// BeginSubmit marks a payment submission as in flight.
func (c *Controller) BeginSubmit() error {
	if c.state.Stage != model.StagePayment {
		return guard(GuardWrongStage, "cannot submit from %s", c.state.Stage)
	}
	if c.state.Submitting {
		return ErrSubmissionInFlight
	}
	c.state.Submitting = true
	c.state.LastError = ""
	return nil
}

// CompleteSubmit clears the in-flight flag and finishes the wizard.
func (c *Controller) CompleteSubmit() {
	c.state.Submitting = false
	c.state.LastError = ""
	c.state.Stage = model.StageSuccess
}

// FailSubmit clears the in-flight flag and keeps the wizard on payment so the
// visitor can retry. Answers are left untouched.
func (c *Controller) FailSubmit(message string) {
	c.state.Submitting = false
	c.state.LastError = message
}

// Unanswered lists question IDs that have no answer yet.
func (c *Controller) Unanswered() []string {
	var out []string
	for _, q := range c.questions {
		if !c.answers.Answered(q.ID) {
			out = append(out, q.ID)
		}
	}
	return out
}
