// Package users serves the standalone user-creation API under /api/users.
package users

import (
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/service"
	"go.uber.org/zap"
)

type Handler struct {
	users  *service.UserService
	logger *zap.Logger
}

func New(users *service.UserService, logger *zap.Logger) *Handler {
	return &Handler{users: users, logger: logger}
}
