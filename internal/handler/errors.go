package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/proffreport/profreport-backend/internal/catalog"
	"github.com/proffreport/profreport-backend/internal/repository"
	"github.com/proffreport/profreport-backend/internal/response"
	"github.com/proffreport/profreport-backend/internal/service"
	"github.com/proffreport/profreport-backend/internal/wizard"
	"github.com/rs/zerolog"
)

var guardResponses = map[wizard.GuardCode]struct {
	status int
	code   response.ErrCode
}{
	wizard.GuardConsentRequired:    {http.StatusUnprocessableEntity, response.ErrConsentRequired},
	wizard.GuardAnswerRequired:     {http.StatusUnprocessableEntity, response.ErrAnswerRequired},
	wizard.GuardInvalidAnswer:      {http.StatusUnprocessableEntity, response.ErrInvalidAnswer},
	wizard.GuardWrongStage:         {http.StatusConflict, response.ErrWrongStage},
	wizard.GuardSubmissionInFlight: {http.StatusConflict, response.ErrSubmissionInFlight},
}

// failWizard maps service and wizard errors onto the API envelope.
func failWizard(c *gin.Context, log zerolog.Logger, err error) {
	var guardErr *wizard.GuardError
	var subErr *service.SubmissionError

	switch {
	case errors.As(err, &guardErr):
		if r, ok := guardResponses[guardErr.Code]; ok {
			response.Fail(c, r.status, r.code)
			return
		}
	case errors.As(err, &subErr):
		response.FailWithData(c, http.StatusBadGateway, response.ErrSubmissionFailed, subErr.Message, subErr.View)
		return
	case errors.Is(err, repository.ErrSessionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
		return
	case errors.Is(err, catalog.ErrTestNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrTestNotFound)
		return
	}

	log.Error().Err(err).Str("request_id", response.RequestID(c)).Msg("Wizard request failed")
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}
