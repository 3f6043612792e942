package courses

import (
	"net/http"

	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/errdefs"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/handlers/common"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/middleware"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/service"
	"github.com/gin-gonic/gin"
)

// Create adds a course owned by the calling instructor.
func (h *Handler) Create(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		common.WriteError(c, h.logger, errdefs.ErrUnauthenticated)
		return
	}
	// role is checked before the body is parsed
	if err := h.courses.AuthorizeCreate(id); err != nil {
		common.WriteError(c, h.logger, err)
		return
	}
	var in service.CreateCourseInput
	if !common.BindJSON(c, &in) {
		return
	}
	course, err := h.courses.CreateCourse(c.Request.Context(), id, in)
	if err != nil {
		common.WriteError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Course created successfully",
		"course": gin.H{
			"id":           course.ID,
			"title":        course.Title,
			"description":  course.Description,
			"instructorId": course.InstructorID,
			"students":     course.Students,
			"createdAt":    course.CreatedAt,
		},
	})
}
