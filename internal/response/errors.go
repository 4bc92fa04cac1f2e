package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Session tokens ────────────────────────────────────────────────
	ErrTokenRequired ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid  ErrCode = "TOKEN_INVALID"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrTestNotFound    ErrCode = "TEST_NOT_FOUND"
	ErrSessionNotFound ErrCode = "SESSION_NOT_FOUND"

	// ─── Wizard guards ─────────────────────────────────────────────────
	ErrConsentRequired    ErrCode = "CONSENT_REQUIRED"
	ErrAnswerRequired     ErrCode = "ANSWER_REQUIRED"
	ErrInvalidAnswer      ErrCode = "INVALID_ANSWER"
	ErrWrongStage         ErrCode = "WRONG_STAGE"
	ErrSubmissionInFlight ErrCode = "SUBMISSION_IN_FLIGHT"

	// ─── Submission ────────────────────────────────────────────────────
	ErrSubmissionFailed ErrCode = "SUBMISSION_FAILED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Session tokens ────────────────────────────────────────────────
	case ErrTokenRequired:
		return "Сессия теста не найдена. Начните тест заново."
	case ErrTokenInvalid:
		return "Сессия теста недействительна или истекла."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Проверьте правильность заполнения полей."
	case ErrInvalidPayload:
		return "Некорректный запрос."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Ресурс не найден."
	case ErrTestNotFound:
		return "Такого теста не существует."
	case ErrSessionNotFound:
		return "Сессия теста не найдена или истекла."

	// ─── Wizard guards ─────────────────────────────────────────────────
	case ErrConsentRequired:
		return "Необходимо дать согласие на обработку персональных данных"
	case ErrAnswerRequired:
		return "Пожалуйста, выберите ответ"
	case ErrInvalidAnswer:
		return "Такого варианта ответа нет."
	case ErrWrongStage:
		return "Это действие недоступно на текущем этапе."
	case ErrSubmissionInFlight:
		return "Заявка уже обрабатывается."

	// ─── Submission ────────────────────────────────────────────────────
	case ErrSubmissionFailed:
		return "Ошибка при отправке"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Слишком много запросов. Попробуйте позже."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Внутренняя ошибка сервера."
	default:
		return "Непредвиденная ошибка."
	}
}
