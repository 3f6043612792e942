// Package auth serves signup, login, profile and logout. Each endpoint
// lives in its own file.
package auth

import (
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/service"
	"go.uber.org/zap"
)

// Handler wires the account endpoints to the account service.
type Handler struct {
	accounts *service.AccountService
	logger   *zap.Logger
}

func New(accounts *service.AccountService, logger *zap.Logger) *Handler {
	return &Handler{accounts: accounts, logger: logger}
}
