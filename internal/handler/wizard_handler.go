package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/proffreport/profreport-backend/internal/middleware"
	"github.com/proffreport/profreport-backend/internal/model"
	"github.com/proffreport/profreport-backend/internal/response"
	"github.com/proffreport/profreport-backend/internal/service"
	"github.com/proffreport/profreport-backend/internal/validator"
	"github.com/rs/zerolog"
)

// WizardHandler exposes the test wizard. Every route except CreateSession
// runs behind RequireWizardToken.
type WizardHandler struct {
	wizardService *service.WizardService
	log           zerolog.Logger
}

func NewWizardHandler(wizardService *service.WizardService, log zerolog.Logger) *WizardHandler {
	return &WizardHandler{
		wizardService: wizardService,
		log:           log.With().Str("component", "wizard_handler").Logger(),
	}
}

// CreateSession godoc
// POST /api/v1/tests/:test_type/sessions
func (h *WizardHandler) CreateSession(c *gin.Context) {
	testType := model.TestType(c.Param("test_type"))
	if !testType.Valid() {
		response.Fail(c, http.StatusNotFound, response.ErrTestNotFound)
		return
	}

	token, view, err := h.wizardService.CreateSession(c.Request.Context(), testType)
	if err != nil {
		failWizard(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"token": token, "wizard": view})
}

// GetState godoc
// GET /api/v1/wizard
func (h *WizardHandler) GetState(c *gin.Context) {
	view, err := h.wizardService.GetSession(c.Request.Context(), sessionID(c))
	h.respond(c, view, err)
}

// Start godoc
// POST /api/v1/wizard/start
func (h *WizardHandler) Start(c *gin.Context) {
	var req model.StartTestRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	view, err := h.wizardService.Start(c.Request.Context(), sessionID(c), req.Consent)
	h.respond(c, view, err)
}

// Answer godoc
// PUT /api/v1/wizard/answer
func (h *WizardHandler) Answer(c *gin.Context) {
	var req model.AnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	view, err := h.wizardService.Answer(c.Request.Context(), sessionID(c), req.Value)
	h.respond(c, view, err)
}

// Next godoc
// POST /api/v1/wizard/next
func (h *WizardHandler) Next(c *gin.Context) {
	view, err := h.wizardService.Advance(c.Request.Context(), sessionID(c))
	h.respond(c, view, err)
}

// Back godoc
// POST /api/v1/wizard/back
func (h *WizardHandler) Back(c *gin.Context) {
	view, err := h.wizardService.Retreat(c.Request.Context(), sessionID(c))
	h.respond(c, view, err)
}

// Exit godoc
// POST /api/v1/wizard/exit
func (h *WizardHandler) Exit(c *gin.Context) {
	redirect, err := h.wizardService.Exit(c.Request.Context(), sessionID(c))
	if err != nil {
		failWizard(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"redirect": redirect})
}

// Payment godoc
// POST /api/v1/wizard/payment
func (h *WizardHandler) Payment(c *gin.Context) {
	var req model.PaymentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	view, err := h.wizardService.SubmitPayment(c.Request.Context(), sessionID(c), req)
	h.respond(c, view, err)
}

func (h *WizardHandler) respond(c *gin.Context, view *service.WizardView, err error) {
	if err != nil {
		failWizard(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

func sessionID(c *gin.Context) string {
	if claims := middleware.GetWizardClaims(c); claims != nil {
		return claims.SessionID
	}
	return ""
}
