package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/proffreport/profreport-backend/internal/model"
	"github.com/proffreport/profreport-backend/internal/response"
	"github.com/proffreport/profreport-backend/internal/service"
	"github.com/proffreport/profreport-backend/internal/validator"
	"github.com/rs/zerolog"
)

type ContactHandler struct {
	contactService *service.ContactService
	log            zerolog.Logger
}

func NewContactHandler(contactService *service.ContactService, log zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		log:            log.With().Str("component", "contact_handler").Logger(),
	}
}

// Submit godoc
// POST /api/v1/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var req model.ContactRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.contactService.Submit(c.Request.Context(), req, c.ClientIP()); err != nil {
		h.log.Error().Err(err).Str("request_id", response.RequestID(c)).Msg("Contact submission failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{"message": "Спасибо! Мы свяжемся с вами в ближайшее время."})
}
