package catalog

import (
	"testing"
	"testing/fstest"

	"github.com/proffreport/profreport-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	tests := c.Tests()
	require.Len(t, tests, 3)
	assert.Equal(t, model.TestTypeSchool, tests[0].TestType)
	assert.Equal(t, model.TestTypeAdult, tests[2].TestType)

	cfg, err := c.Test(model.TestTypeSchool)
	require.NoError(t, err)
	assert.Equal(t, model.TariffBasic, cfg.Tariff)
	assert.Equal(t, cfg.TotalQuestions(), tests[0].TotalQuestions)

	q := cfg.FindQuestion("values_1")
	require.NotNil(t, q)
	assert.Len(t, q.Options, 7)
	assert.Equal(t, model.OptionValue("5"), q.Options[4].Value)
	assert.Equal(t, model.QuestionTypeCheckbox, cfg.FindQuestion("klimov_1").Type)

	assert.NotEmpty(t, c.FAQ())
}

func TestUnknownTest(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	_, err = c.Test("kindergarten")
	assert.ErrorIs(t, err, ErrTestNotFound)
}

func TestLoadFSRejectsDuplicateIDs(t *testing.T) {
	fsys := fstest.MapFS{
		"tests/bad.yaml": {Data: []byte(`
testType: adult
tariff: pro
sections:
  - id: s
    questions:
      - { id: values_1, type: radio, options: [{ label: A, value: a }] }
      - { id: values_1, type: radio, options: [{ label: B, value: b }] }
`)},
	}

	_, err := LoadFS(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate question id")
}

func TestValidate(t *testing.T) {
	base := func() *model.TestConfig {
		return &model.TestConfig{
			TestType: model.TestTypeAdult,
			Tariff:   model.TariffPro,
			Sections: []model.Section{{Questions: []model.Question{
				{ID: "values_1", Type: model.QuestionTypeRadio, Options: []model.Option{{Label: "A", Value: "a"}}},
			}}},
		}
	}

	require.NoError(t, Validate(base()))

	cfg := base()
	cfg.Tariff = "gold"
	assert.Error(t, Validate(cfg))

	cfg = base()
	cfg.Sections[0].Questions[0].Options = nil
	assert.Error(t, Validate(cfg))

	cfg = base()
	cfg.Sections[0].Questions[0].Type = "slider"
	assert.Error(t, Validate(cfg))

	cfg = base()
	cfg.Sections = nil
	assert.Error(t, Validate(cfg))

	_, err := New(nil, base())
	assert.NoError(t, err)
}
