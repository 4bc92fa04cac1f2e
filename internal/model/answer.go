package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// OptionValue is the stored value of an option. Configuration and clients may
// spell it as a number (scale points) or a string; both normalise to a string.
type OptionValue string

func (v *OptionValue) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = OptionValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("option value must be a string or number: %w", err)
	}
	*v = OptionValue(n.String())
	return nil
}

func (v *OptionValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: option value must be a scalar", node.Line)
	}
	*v = OptionValue(node.Value)
	return nil
}

// AnswerValue is a stored answer: a single value for likert/radio questions or
// a set of values for checkbox questions.
type AnswerValue struct {
	Single  OptionValue
	Multi   []OptionValue
	IsMulti bool
}

// SingleAnswer builds a scalar answer.
func SingleAnswer(v OptionValue) AnswerValue {
	return AnswerValue{Single: v}
}

// MultiAnswer builds a set-valued answer.
func MultiAnswer(vs ...OptionValue) AnswerValue {
	if vs == nil {
		vs = []OptionValue{}
	}
	return AnswerValue{Multi: vs, IsMulti: true}
}

// IsEmpty reports whether the answer carries no selection at all.
func (a AnswerValue) IsEmpty() bool {
	if a.IsMulti {
		return len(a.Multi) == 0
	}
	return a.Single == ""
}

// Contains reports whether v is selected.
func (a AnswerValue) Contains(v OptionValue) bool {
	if !a.IsMulti {
		return a.Single == v
	}
	for _, m := range a.Multi {
		if m == v {
			return true
		}
	}
	return false
}

func (a AnswerValue) MarshalJSON() ([]byte, error) {
	if a.IsMulti {
		vs := a.Multi
		if vs == nil {
			vs = []OptionValue{}
		}
		return json.Marshal(vs)
	}
	return json.Marshal(a.Single)
}

func (a *AnswerValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var vs []OptionValue
		if err := json.Unmarshal(b, &vs); err != nil {
			return err
		}
		*a = MultiAnswer(vs...)
		return nil
	}
	var v OptionValue
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*a = SingleAnswer(v)
	return nil
}

// Answers maps question identifiers to answers.
type Answers map[string]AnswerValue
