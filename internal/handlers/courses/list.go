package courses

import (
	"net/http"

	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/handlers/common"
	"github.com/gin-gonic/gin"
)

// List returns every course with its instructor resolved. No token needed.
func (h *Handler) List(c *gin.Context) {
	views, err := h.courses.ListCourses(c.Request.Context())
	if err != nil {
		common.WriteError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": views})
}
