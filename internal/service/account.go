package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/auth"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/errdefs"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/metrics"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/model"
	"go.uber.org/zap"
)

type SignupInput struct {
	Email    string     `json:"email" validate:"required"`
	Password string     `json:"password" validate:"required"`
	Role     model.Role `json:"role" validate:"required,oneof=student instructor"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AccountService runs signup, login, profile and logout.
type AccountService struct {
	creds   *Credentials
	tokens  *auth.TokenService
	metrics metrics.Recorder
	logger  *zap.Logger
}

func NewAccountService(creds *Credentials, tokens *auth.TokenService, rec metrics.Recorder, logger *zap.Logger) *AccountService {
	return &AccountService{creds: creds, tokens: tokens, metrics: rec, logger: logger}
}

// Signup creates a user; it does not log them in.
func (s *AccountService) Signup(ctx context.Context, in SignupInput) (*model.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validateInput(in, "please provide email, password, and role"); err != nil {
		s.metrics.RecordSignup(metrics.OutcomeRejected)
		return nil, err
	}

	_, err := s.creds.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		s.metrics.RecordSignup(metrics.OutcomeRejected)
		return nil, fmt.Errorf("%w: user already exists", errdefs.ErrAlreadyExists)
	case !errors.Is(err, errdefs.ErrUserNotFound):
		s.metrics.RecordSignup(metrics.OutcomeFailure)
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	u, err := s.creds.CreateUser(ctx, in.Email, in.Password, in.Role)
	if err != nil {
		if errors.Is(err, errdefs.ErrValidation) {
			s.metrics.RecordSignup(metrics.OutcomeRejected)
			return nil, err
		}
		if errors.Is(err, errdefs.ErrAlreadyExists) {
			s.metrics.RecordSignup(metrics.OutcomeRejected)
			return nil, fmt.Errorf("%w: user already exists", errdefs.ErrAlreadyExists)
		}
		s.metrics.RecordSignup(metrics.OutcomeFailure)
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.metrics.RecordSignup(metrics.OutcomeSuccess)
	s.logger.Info("user signed up", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
	return u, nil
}

// Login checks the password and issues a session token.
func (s *AccountService) Login(ctx context.Context, in LoginInput) (auth.Token, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validateInput(in, "please provide email and password"); err != nil {
		s.metrics.RecordLogin(metrics.OutcomeRejected)
		return auth.Token{}, err
	}

	u, err := s.creds.Authenticate(ctx, in.Email, in.Password)
	if err != nil {
		if errors.Is(err, errdefs.ErrUserNotFound) || errors.Is(err, errdefs.ErrInvalidCredentials) {
			s.metrics.RecordLogin(metrics.OutcomeRejected)
			return auth.Token{}, err
		}
		s.metrics.RecordLogin(metrics.OutcomeFailure)
		return auth.Token{}, fmt.Errorf("authenticate: %w", err)
	}

	tok, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		s.metrics.RecordLogin(metrics.OutcomeFailure)
		return auth.Token{}, err
	}
	s.metrics.RecordLogin(metrics.OutcomeSuccess)
	s.logger.Info("user logged in", zap.String("user_id", u.ID))
	return tok, nil
}

// Profile echoes the token's claims; the store is not consulted.
func (s *AccountService) Profile(id model.Identity) model.Identity {
	return id
}

// Logout only acknowledges: tokens are stateless and expire on their own.
func (s *AccountService) Logout(ctx context.Context, id model.Identity) {
	s.logger.Info("user logged out", zap.String("user_id", id.SubjectID))
}

// TokenTTL is the lifetime of tokens issued by Login.
func (s *AccountService) TokenTTL() time.Duration { return s.tokens.TTL() }
