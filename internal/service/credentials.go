package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/auth"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/errdefs"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/model"
)

// Credentials is the credential store: the only path by which passwords
// reach persistence, and only after hashing.
type Credentials struct {
	users  UserStore
	hasher auth.Hasher
}

func NewCredentials(users UserStore, hasher auth.Hasher) *Credentials {
	return &Credentials{users: users, hasher: hasher}
}

// CreateUser hashes the password and persists the user. A taken email
// yields errdefs.ErrAlreadyExists.
func (c *Credentials) CreateUser(ctx context.Context, email, password string, role model.Role) (*model.User, error) {
	hash, err := c.hasher.Hash(password)
	if errors.Is(err, errdefs.ErrValidation) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return c.users.CreateUser(ctx, &model.User{Email: email, PasswordHash: hash, Role: role})
}

func (c *Credentials) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return c.users.FindUserByEmail(ctx, email)
}

// Authenticate returns the user when password matches the stored hash.
func (c *Credentials) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	u, err := c.users.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	ok, err := c.hasher.Compare(u.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("compare password: %w", err)
	}
	if !ok {
		return nil, errdefs.ErrInvalidCredentials
	}
	return u, nil
}
