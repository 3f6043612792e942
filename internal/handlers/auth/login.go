package auth

import (
	"net/http"

	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/handlers/common"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/service"
	"github.com/gin-gonic/gin"
)

// Login exchanges email and password for a session token.
// The token goes back verbatim in the Authorization header, without "Bearer ".
func (h *Handler) Login(c *gin.Context) {
	var in service.LoginInput
	if !common.BindJSON(c, &in) {
		return
	}
	tok, err := h.accounts.Login(c.Request.Context(), in)
	if err != nil {
		common.WriteError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":      tok.Value,
		"expires_in": int(h.accounts.TokenTTL().Seconds()),
	})
}
