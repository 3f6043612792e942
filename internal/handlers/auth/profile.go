package auth

import (
	"net/http"

	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/errdefs"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/handlers/common"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Profile echoes the claims of the caller's token.
func (h *Handler) Profile(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		common.WriteError(c, h.logger, errdefs.ErrUnauthenticated)
		return
	}
	id = h.accounts.Profile(id)
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to your profile",
		"user": gin.H{
			"id":   id.SubjectID,
			"role": id.Role,
			"iat":  id.IssuedAt.Unix(),
			"exp":  id.ExpiresAt.Unix(),
		},
	})
}
