package courses

import (
	"net/http"

	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/errdefs"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/handlers/common"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/middleware"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/service"
	"github.com/gin-gonic/gin"
)

// Enroll adds the calling student to the course named by courseId.
func (h *Handler) Enroll(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		common.WriteError(c, h.logger, errdefs.ErrUnauthenticated)
		return
	}
	// role is checked before the body is parsed
	if err := h.courses.AuthorizeEnroll(id); err != nil {
		common.WriteError(c, h.logger, err)
		return
	}
	var in service.EnrollInput
	if !common.BindJSON(c, &in) {
		return
	}
	if err := h.courses.Enroll(c.Request.Context(), id, in); err != nil {
		common.WriteError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Enrolled in course successfully"})
}
