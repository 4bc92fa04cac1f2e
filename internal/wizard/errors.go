package wizard

import "fmt"

// GuardCode identifies why a wizard transition was refused.
type GuardCode string

const (
	GuardConsentRequired    GuardCode = "CONSENT_REQUIRED"
	GuardAnswerRequired     GuardCode = "ANSWER_REQUIRED"
	GuardInvalidAnswer      GuardCode = "INVALID_ANSWER"
	GuardWrongStage         GuardCode = "WRONG_STAGE"
	GuardSubmissionInFlight GuardCode = "SUBMISSION_IN_FLIGHT"
)

// GuardError is a refused transition. The wizard state is unchanged when one
// is returned.
type GuardError struct {
	Code   GuardCode
	Detail string
}

func (e *GuardError) Error() string {
	if e.Detail == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

// Is matches guard errors by code so callers can use errors.Is with the
// sentinels below.
func (e *GuardError) Is(target error) bool {
	t, ok := target.(*GuardError)
	return ok && t.Code == e.Code
}

var (
	ErrConsentRequired    = &GuardError{Code: GuardConsentRequired}
	ErrAnswerRequired     = &GuardError{Code: GuardAnswerRequired}
	ErrInvalidAnswer      = &GuardError{Code: GuardInvalidAnswer}
	ErrWrongStage         = &GuardError{Code: GuardWrongStage}
	ErrSubmissionInFlight = &GuardError{Code: GuardSubmissionInFlight}
)

func guard(code GuardCode, format string, args ...any) *GuardError {
	return &GuardError{Code: code, Detail: fmt.Sprintf(format, args...)}
}
