package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerValueUnmarshal(t *testing.T) {
	var answers Answers
	require.NoError(t, json.Unmarshal([]byte(`{"values_1": 5, "riasec_2": "y", "klimov_3": ["p", "q"], "klimov_4": []}`), &answers))

	assert.Equal(t, SingleAnswer("5"), answers["values_1"])
	assert.Equal(t, SingleAnswer("y"), answers["riasec_2"])
	assert.Equal(t, MultiAnswer("p", "q"), answers["klimov_3"])
	assert.True(t, answers["klimov_4"].IsMulti)
	assert.True(t, answers["klimov_4"].IsEmpty())
}

func TestAnswerValueRejectsObjects(t *testing.T) {
	var v AnswerValue
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &v))
	assert.Error(t, json.Unmarshal([]byte(`true`), &v))
}

func TestAnswerValueMarshal(t *testing.T) {
	b, err := json.Marshal(Answers{"a_1": SingleAnswer("3"), "b_2": MultiAnswer()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a_1":"3","b_2":[]}`, string(b))
}

func TestTestConfigLookups(t *testing.T) {
	cfg := &TestConfig{
		Sections: []Section{
			{ID: "s1", Questions: []Question{{ID: "values_1"}, {ID: "values_2"}}},
			{ID: "s2", Questions: []Question{{ID: "riasec_3"}}},
		},
	}

	assert.Equal(t, 3, cfg.TotalQuestions())
	assert.Len(t, cfg.Questions(), 3)
	assert.Equal(t, "s2", cfg.SectionOf("riasec_3").ID)
	assert.Nil(t, cfg.FindQuestion("nope_1"))
	assert.Equal(t, "values_2", cfg.FindQuestion("values_2").ID)
}
