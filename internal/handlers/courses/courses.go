// Package courses serves course creation, listing and enrollment.
package courses

import (
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/service"
	"go.uber.org/zap"
)

type Handler struct {
	courses *service.CourseService
	logger  *zap.Logger
}

func New(courses *service.CourseService, logger *zap.Logger) *Handler {
	return &Handler{courses: courses, logger: logger}
}
