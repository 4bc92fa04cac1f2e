package wizard

import (
	"errors"
	"testing"
	"time"

	"github.com/proffreport/profreport-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scale(n int) []model.Option {
	opts := make([]model.Option, 0, n)
	for i := 1; i <= n; i++ {
		v := model.OptionValue(string(rune('0' + i)))
		opts = append(opts, model.Option{Label: string(v), Value: v})
	}
	return opts
}

func sampleConfig() *model.TestConfig {
	return &model.TestConfig{
		TestType: model.TestTypeSchool,
		Tariff:   model.TariffBasic,
		Sections: []model.Section{
			{
				ID: "values",
				Questions: []model.Question{
					{ID: "values_1", Question: "Насколько важна стабильность?", Type: model.QuestionTypeLikert, Options: scale(7)},
				},
			},
			{
				ID: "interests",
				Questions: []model.Question{
					{ID: "riasec_2", Question: "Что ближе?", Type: model.QuestionTypeRadio, Options: []model.Option{
						{Label: "X", Value: "x"}, {Label: "Y", Value: "y"},
					}},
					{ID: "klimov_3", Question: "Что интересно?", Type: model.QuestionTypeCheckbox, Options: []model.Option{
						{Label: "P", Value: "p"}, {Label: "Q", Value: "q"},
					}},
				},
			},
		},
	}
}

func newTestController(t *testing.T) *Controller {
	t.Helper()
	return NewController(sampleConfig(), model.NewWizardState("s1", model.TestTypeSchool, time.Now()))
}

func started(t *testing.T) *Controller {
	t.Helper()
	c := newTestController(t)
	require.NoError(t, c.Start(true))
	return c
}

func TestStartRequiresConsent(t *testing.T) {
	c := newTestController(t)

	err := c.Start(false)
	require.ErrorIs(t, err, ErrConsentRequired)
	assert.Equal(t, model.StageStart, c.State().Stage)

	require.NoError(t, c.Start(true))
	assert.Equal(t, model.StageTest, c.State().Stage)
	assert.Equal(t, 0, c.State().Index)
}

func TestStartTwiceIsWrongStage(t *testing.T) {
	c := started(t)
	assert.ErrorIs(t, c.Start(true), ErrWrongStage)
}

func TestAdvanceWithoutAnswerKeepsPosition(t *testing.T) {
	c := started(t)

	err := c.Advance()
	require.ErrorIs(t, err, ErrAnswerRequired)
	assert.Equal(t, 0, c.State().Index)
	assert.Equal(t, model.StageTest, c.State().Stage)

	var ge *GuardError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, GuardAnswerRequired, ge.Code)
}

func TestFullWalkReachesPayment(t *testing.T) {
	c := started(t)

	require.NoError(t, c.Answer(model.SingleAnswer("5")))
	require.NoError(t, c.Advance())
	require.NoError(t, c.Answer(model.SingleAnswer("y")))
	require.NoError(t, c.Advance())
	assert.True(t, c.IsLast())
	assert.Equal(t, 100, c.Progress())

	require.NoError(t, c.Answer(model.MultiAnswer("p", "q")))
	require.NoError(t, c.Advance())

	assert.Equal(t, model.StagePayment, c.State().Stage)
	assert.Empty(t, c.Unanswered())
	assert.Nil(t, c.CurrentQuestion())
}

func TestProgress(t *testing.T) {
	c := started(t)
	assert.Equal(t, 3, c.Total())
	assert.Equal(t, 33, c.Progress())

	require.NoError(t, c.Answer(model.SingleAnswer("1")))
	require.NoError(t, c.Advance())
	assert.Equal(t, 67, c.Progress())
	assert.Equal(t, "interests", c.CurrentSection().ID)
}

func TestRetreat(t *testing.T) {
	c := started(t)

	require.NoError(t, c.Retreat())
	assert.Equal(t, 0, c.State().Index)

	require.NoError(t, c.Answer(model.SingleAnswer("2")))
	require.NoError(t, c.Advance())
	require.NoError(t, c.Retreat())
	assert.Equal(t, 0, c.State().Index)

	v, ok := c.Answers().Get("values_1")
	require.True(t, ok)
	assert.Equal(t, model.SingleAnswer("2"), v)
}

func TestAnswerValidation(t *testing.T) {
	c := started(t)

	assert.ErrorIs(t, c.Answer(model.SingleAnswer("9")), ErrInvalidAnswer)
	assert.ErrorIs(t, c.Answer(model.MultiAnswer("1")), ErrInvalidAnswer)
	assert.Equal(t, 0, c.Answers().Len())

	require.NoError(t, c.Answer(model.SingleAnswer("1")))
	require.NoError(t, c.Answer(model.SingleAnswer("7")))
	v, _ := c.Answers().Get("values_1")
	assert.Equal(t, model.OptionValue("7"), v.Single)
}

func TestCheckboxAnswerDedupAndEmptySet(t *testing.T) {
	c := started(t)
	require.NoError(t, c.Answer(model.SingleAnswer("1")))
	require.NoError(t, c.Advance())
	require.NoError(t, c.Answer(model.SingleAnswer("x")))
	require.NoError(t, c.Advance())

	require.NoError(t, c.Answer(model.MultiAnswer("q", "p", "q")))
	v, _ := c.Answers().Get("klimov_3")
	assert.Equal(t, []model.OptionValue{"q", "p"}, v.Multi)

	require.NoError(t, c.Answer(model.MultiAnswer()))
	assert.ErrorIs(t, c.Advance(), ErrAnswerRequired)
	assert.Equal(t, model.StageTest, c.State().Stage)
}

func TestExitDiscardsAnswers(t *testing.T) {
	c := started(t)
	require.NoError(t, c.Answer(model.SingleAnswer("1")))
	require.NoError(t, c.Advance())

	require.NoError(t, c.Exit())
	assert.Equal(t, 0, c.Answers().Len())
	assert.Empty(t, c.State().Answers)
	assert.ErrorIs(t, c.Exit(), ErrWrongStage)
}

func TestSubmitLifecycle(t *testing.T) {
	c := newTestController(t)
	assert.ErrorIs(t, c.BeginSubmit(), ErrWrongStage)

	c.State().Stage = model.StagePayment
	require.NoError(t, c.BeginSubmit())
	assert.True(t, c.State().Submitting)
	assert.ErrorIs(t, c.BeginSubmit(), ErrSubmissionInFlight)

	c.FailSubmit("Ошибка при отправке")
	assert.False(t, c.State().Submitting)
	assert.Equal(t, model.StagePayment, c.State().Stage)
	assert.Equal(t, "Ошибка при отправке", c.State().LastError)

	require.NoError(t, c.BeginSubmit())
	assert.Empty(t, c.State().LastError)
	c.CompleteSubmit()
	assert.False(t, c.State().Submitting)
	assert.Equal(t, model.StageSuccess, c.State().Stage)
}

func TestAnswerStore(t *testing.T) {
	s := NewAnswerStore(nil)
	_, ok := s.Get("values_1")
	assert.False(t, ok)

	s.Set("values_1", model.SingleAnswer("3"))
	s.Set("values_1", model.SingleAnswer("4"))
	v, ok := s.Get("values_1")
	require.True(t, ok)
	assert.Equal(t, model.OptionValue("4"), v.Single)
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Answered("values_1"))
}
