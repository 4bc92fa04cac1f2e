package model

import "time"

// UserIdentity is the person a report is addressed to.
type UserIdentity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// QuestionnaireItem is one answered question in the report backend format.
type QuestionnaireItem struct {
	Number   int    `json:"number"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// SubmissionPayload is the body of POST {base}/questionnaire.
type SubmissionPayload struct {
	User                    UserIdentity        `json:"user"`
	Values                  []QuestionnaireItem `json:"values"`
	RIASEC                  []QuestionnaireItem `json:"RIASEC"`
	ObjectsOfActivityKlimov []QuestionnaireItem `json:"objectsOfActivityKlimov"`
	PersonalQualities       []QuestionnaireItem `json:"personalQualities"`
}

// StandardPayload is handed to the payment submitter.
type StandardPayload struct {
	TestType TestType `json:"testType"`
	Email    string   `json:"email"`
	Tariff   Tariff   `json:"tariff"`
	Answers  Answers  `json:"answers"`
	Consent  bool     `json:"consent"`
}

// SubmitResult is the outcome reported by the payment submitter.
type SubmitResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// SubmissionPath names which gateway path delivered a questionnaire.
type SubmissionPath string

const (
	SubmissionPathDirect   SubmissionPath = "direct"
	SubmissionPathStandard SubmissionPath = "standard"
)

// SubmissionRecord is the audit row written after a successful submission.
type SubmissionRecord struct {
	SessionID   string         `json:"session_id"`
	TestType    TestType       `json:"test_type"`
	Tariff      Tariff         `json:"tariff"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Path        SubmissionPath `json:"path"`
	Answered    int            `json:"answered"`
	Dropped     int            `json:"dropped"`
	SubmittedAt time.Time      `json:"submitted_at"`
}
