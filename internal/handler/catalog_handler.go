package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/proffreport/profreport-backend/internal/catalog"
	"github.com/proffreport/profreport-backend/internal/model"
	"github.com/proffreport/profreport-backend/internal/response"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(c *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

// ListTests godoc
// GET /api/v1/tests
func (h *CatalogHandler) ListTests(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"tests": h.catalog.Tests()})
}

// GetTest godoc
// GET /api/v1/tests/:test_type
func (h *CatalogHandler) GetTest(c *gin.Context) {
	cfg, err := h.catalog.Test(model.TestType(c.Param("test_type")))
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrTestNotFound)
		return
	}
	response.Success(c, http.StatusOK, cfg)
}

// GetFAQ godoc
// GET /api/v1/faq
func (h *CatalogHandler) GetFAQ(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"items": h.catalog.FAQ()})
}
