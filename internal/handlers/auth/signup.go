package auth

import (
	"net/http"

	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/handlers/common"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/service"
	"github.com/gin-gonic/gin"
)

// Signup registers a user. No token is issued; the client logs in next.
func (h *Handler) Signup(c *gin.Context) {
	var in service.SignupInput
	if !common.BindJSON(c, &in) {
		return
	}
	if _, err := h.accounts.Signup(c.Request.Context(), in); err != nil {
		common.WriteError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully"})
}
