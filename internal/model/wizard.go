package model

import "time"

// Stage is a top-level mode of the test wizard.
type Stage string

const (
	StageStart   Stage = "start"
	StageTest    Stage = "test"
	StagePayment Stage = "payment"
	StageSuccess Stage = "success"
)

// WizardState is everything the wizard remembers about one visitor's attempt.
type WizardState struct {
	SessionID  string    `json:"session_id"`
	TestType   TestType  `json:"test_type"`
	Stage      Stage     `json:"stage"`
	Index      int       `json:"index"`
	Answers    Answers   `json:"answers"`
	Submitting bool      `json:"submitting"`
	LastError  string    `json:"last_error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewWizardState returns the state of a freshly mounted wizard.
func NewWizardState(sessionID string, testType TestType, now time.Time) *WizardState {
	return &WizardState{
		SessionID: sessionID,
		TestType:  testType,
		Stage:     StageStart,
		Answers:   Answers{},
		CreatedAt: now,
	}
}

// StartTestRequest carries the consent checkbox of the start screen.
type StartTestRequest struct {
	Consent bool `json:"consent"`
}

// AnswerRequest records the answer to the current question.
type AnswerRequest struct {
	Value AnswerValue `json:"value"`
}

// PaymentRequest is the payment form of the wizard.
type PaymentRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=120"`
	Email   string `json:"email" binding:"required,email"`
	Code    string `json:"code" binding:"omitempty,max=64"`
	Consent bool   `json:"consent" binding:"accepted"`
}
