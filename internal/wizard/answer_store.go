package wizard

import "github.com/proffreport/profreport-backend/internal/model"

// AnswerStore is the in-memory record of a visitor's answers. It has a single
// writer and no delete operation.
type AnswerStore struct {
	answers model.Answers
}

// NewAnswerStore wraps answers; a nil map starts an empty record.
func NewAnswerStore(answers model.Answers) *AnswerStore {
	if answers == nil {
		answers = model.Answers{}
	}
	return &AnswerStore{answers: answers}
}

// Set inserts or overwrites the answer for questionID.
func (s *AnswerStore) Set(questionID string, v model.AnswerValue) {
	s.answers[questionID] = v
}

// Get returns the answer for questionID; ok is false when it is unset.
func (s *AnswerStore) Get(questionID string) (model.AnswerValue, bool) {
	v, ok := s.answers[questionID]
	return v, ok
}

// Answered reports whether questionID holds a non-empty answer.
func (s *AnswerStore) Answered(questionID string) bool {
	v, ok := s.answers[questionID]
	return ok && !v.IsEmpty()
}

// Len returns the number of recorded answers.
func (s *AnswerStore) Len() int {
	return len(s.answers)
}

// Record exposes the underlying mapping.
func (s *AnswerStore) Record() model.Answers {
	return s.answers
}
