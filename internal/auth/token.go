package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/errdefs"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/model"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = time.Hour

const issuer = "course-api"

// Claims is the signed payload of a session token.
type Claims struct {
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Signer produces and checks signed tokens.
type Signer interface {
	Sign(c Claims) (string, error)
	Parse(token string) (Claims, error)
}

// JWTSigner signs HS256 JWTs with a shared secret.
type JWTSigner struct {
	secret []byte
	now    func() time.Time
}

// NewJWTSigner returns an HS256 signer. now may be nil.
func NewJWTSigner(secret string, now func() time.Time) *JWTSigner {
	if now == nil {
		now = time.Now
	}
	return &JWTSigner{secret: []byte(secret), now: now}
}

func (s *JWTSigner) Sign(c Claims) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return tok.SignedString(s.secret)
}

// Parse checks signature, algorithm and expiry against the signer's clock.
func (s *JWTSigner) Parse(token string) (Claims, error) {
	var c Claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, err
	}
	return c, nil
}

// Token is an issued session token.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// TokenService issues and verifies session tokens.
type TokenService struct {
	signer Signer
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService wires a signer with a lifetime and clock. Zero ttl means DefaultTokenTTL.
func NewTokenService(signer Signer, ttl time.Duration, now func() time.Time) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	if now == nil {
		now = time.Now
	}
	return &TokenService{signer: signer, ttl: ttl, now: now}
}

// TTL returns the lifetime of issued tokens.
func (s *TokenService) TTL() time.Duration { return s.ttl }

func (s *TokenService) Issue(subjectID string, role model.Role) (Token, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	c := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	v, err := s.signer.Sign(c)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}
	return Token{Value: v, ExpiresAt: exp}, nil
}

// Verify returns the identity carried by a valid, unexpired token.
func (s *TokenService) Verify(token string) (model.Identity, error) {
	c, err := s.signer.Parse(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.Identity{}, fmt.Errorf("%w: token expired", errdefs.ErrInvalidToken)
		}
		return model.Identity{}, fmt.Errorf("%w: %v", errdefs.ErrInvalidToken, err)
	}
	if c.Subject == "" || !c.Role.Valid() {
		return model.Identity{}, fmt.Errorf("%w: missing subject or role", errdefs.ErrInvalidToken)
	}
	id := model.Identity{SubjectID: c.Subject, Role: c.Role}
	if c.IssuedAt != nil {
		id.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		id.ExpiresAt = c.ExpiresAt.Time
	}
	return id, nil
}
