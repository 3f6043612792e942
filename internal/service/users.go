package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/auth"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/errdefs"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/model"
	"go.uber.org/zap"
)

type CreateUserInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserService backs the standalone user-creation API. Its accounts are
// keyed by username and are separate from the email-based course users.
type UserService struct {
	accounts AccountStore
	hasher   auth.Hasher
	logger   *zap.Logger
}

func NewUserService(accounts AccountStore, hasher auth.Hasher, logger *zap.Logger) *UserService {
	return &UserService{accounts: accounts, hasher: hasher, logger: logger}
}

func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*model.Account, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := validateInput(in, "username and password are required"); err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(in.Password)
	if errors.Is(err, errdefs.ErrValidation) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	a, err := s.accounts.CreateAccount(ctx, &model.Account{Username: in.Username, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, errdefs.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: username already taken", errdefs.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("create account: %w", err)
	}
	s.logger.Info("account created", zap.String("account_id", a.ID), zap.String("username", a.Username))
	return a, nil
}
