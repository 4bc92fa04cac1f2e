package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/proffreport/profreport-backend/internal/response"
	"github.com/proffreport/profreport-backend/internal/service"
)

// ContextKeyWizardClaims is the Gin context key for wizard token claims.
const ContextKeyWizardClaims = "wizard_claims"

// RequireWizardToken validates the wizard session bearer token.
func RequireWizardToken(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		claims, err := tokens.Validate(tokenStr)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		c.Set(ContextKeyWizardClaims, claims)
		c.Next()
	}
}

// GetWizardClaims retrieves the wizard claims from the Gin context.
func GetWizardClaims(c *gin.Context) *service.WizardClaims {
	val, exists := c.Get(ContextKeyWizardClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*service.WizardClaims)
	if !ok {
		return nil
	}
	return claims
}

func bearerToken(c *gin.Context) string {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
