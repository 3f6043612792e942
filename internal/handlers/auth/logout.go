package auth

import (
	"net/http"

	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/errdefs"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/handlers/common"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Logout acknowledges the request. The token stays valid until it expires;
// discarding it is up to the client.
func (h *Handler) Logout(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		common.WriteError(c, h.logger, errdefs.ErrUnauthenticated)
		return
	}
	h.accounts.Logout(c.Request.Context(), id)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
