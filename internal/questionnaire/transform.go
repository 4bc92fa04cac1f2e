// Package questionnaire turns wizard answers into the report backend format.
package questionnaire

import (
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/proffreport/profreport-backend/internal/model"
)

// Category prefixes in routing priority order.
const (
	PrefixValues      = "values_"
	PrefixRIASEC      = "riasec_"
	PrefixKlimov      = "klimov_"
	PrefixPersonality = "personality_"
)

// LabelSeparator joins labels of multi-choice answers.
const LabelSeparator = ", "

// DropReason explains why an answer is missing from the payload.
type DropReason string

const (
	DropUnknownQuestion DropReason = "unknown_question"
	DropUnknownCategory DropReason = "unknown_category"
)

// Drop is an answer left out of the payload.
type Drop struct {
	QuestionID string     `json:"question_id"`
	Reason     DropReason `json:"reason"`
}

// Result is the payload plus whatever could not be placed in it.
type Result struct {
	Payload model.SubmissionPayload
	Dropped []Drop
}

// Transform builds the questionnaire payload from answers. Answers without a
// question definition or with an unrecognised category prefix are reported in
// Result.Dropped instead of the payload.
func Transform(user model.UserIdentity, answers model.Answers, cfg *model.TestConfig) Result {
	res := Result{
		Payload: model.SubmissionPayload{
			User:                    user,
			Values:                  []model.QuestionnaireItem{},
			RIASEC:                  []model.QuestionnaireItem{},
			ObjectsOfActivityKlimov: []model.QuestionnaireItem{},
			PersonalQualities:       []model.QuestionnaireItem{},
		},
	}

	ids := make([]string, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	p := &res.Payload
	for _, id := range ids {
		q := cfg.FindQuestion(id)
		if q == nil {
			res.Dropped = append(res.Dropped, Drop{QuestionID: id, Reason: DropUnknownQuestion})
			continue
		}

		item := model.QuestionnaireItem{
			Number:   Number(id),
			Question: q.Question,
			Answer:   Label(q, answers[id]),
		}

		switch {
		case strings.HasPrefix(id, PrefixValues):
			p.Values = append(p.Values, item)
		case strings.HasPrefix(id, PrefixRIASEC):
			p.RIASEC = append(p.RIASEC, item)
		case strings.HasPrefix(id, PrefixKlimov):
			p.ObjectsOfActivityKlimov = append(p.ObjectsOfActivityKlimov, item)
		case strings.HasPrefix(id, PrefixPersonality):
			p.PersonalQualities = append(p.PersonalQualities, item)
		default:
			res.Dropped = append(res.Dropped, Drop{QuestionID: id, Reason: DropUnknownCategory})
		}
	}

	for _, items := range [][]model.QuestionnaireItem{p.Values, p.RIASEC, p.ObjectsOfActivityKlimov, p.PersonalQualities} {
		slices.SortStableFunc(items, func(a, b model.QuestionnaireItem) int {
			return a.Number - b.Number
		})
	}

	return res
}

// Label resolves the human-readable answer. Scalar answers map to their
// option label; sets map to labels in option-list order, with values that are
// not options appended as-is.
func Label(q *model.Question, v model.AnswerValue) string {
	if !v.IsMulti {
		if label, ok := q.OptionLabel(v.Single); ok {
			return label
		}
		return string(v.Single)
	}

	labels := make([]string, 0, len(v.Multi))
	for _, opt := range q.Options {
		if v.Contains(opt.Value) {
			labels = append(labels, opt.Label)
		}
	}
	for _, m := range v.Multi {
		if !q.HasOption(m) {
			labels = append(labels, string(m))
		}
	}
	return strings.Join(labels, LabelSeparator)
}

// Number extracts the ordering key: the leading digits after the first
// underscore of a question ID. IDs without one, or with a number too large
// for int, yield 0.
func Number(questionID string) int {
	_, rest, ok := strings.Cut(questionID, "_")
	if !ok {
		return 0
	}
	end := strings.IndexFunc(rest, func(r rune) bool { return r < '0' || r > '9' })
	if end < 0 {
		end = len(rest)
	}
	n, err := strconv.Atoi(rest[:end])
	if err != nil {
		return 0
	}
	return n
}
