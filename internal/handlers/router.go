// Package handlers assembles the gin engine. Endpoint logic lives in the
// auth, courses and users subpackages.
package handlers

import (
	"fmt"

	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/handlers/auth"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/handlers/courses"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/handlers/users"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/metrics"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/middleware"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type Deps struct {
	Accounts *service.AccountService
	Courses  *service.CourseService
	Users    *service.UserService
	Verifier middleware.Verifier
	Health   Pinger
	Logger   *zap.Logger

	// Optional.
	Metrics     metrics.Recorder
	Gatherer    prometheus.Gatherer
	AuthLimiter *middleware.RateLimiter
	CORSOrigin  string
	// TrustedProxies may set the client IP through X-Forwarded-For.
	// Nil trusts none.
	TrustedProxies []string
}

func NewRouter(d Deps) (*gin.Engine, error) {
	if d.Metrics == nil {
		d.Metrics = metrics.Nop{}
	}
	if d.CORSOrigin == "" {
		d.CORSOrigin = "*"
	}

	r := gin.New()
	if err := r.SetTrustedProxies(d.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(middleware.Metrics(d.Metrics))
	r.Use(middleware.CORS(d.CORSOrigin))

	authH := auth.New(d.Accounts, d.Logger)
	courseH := courses.New(d.Courses, d.Logger)
	userH := users.New(d.Users, d.Logger)

	// Public, rate limited per client IP
	public := r.Group("/")
	if d.AuthLimiter != nil {
		public.Use(d.AuthLimiter.Middleware())
	}
	{
		public.POST("/signup", authH.Signup)
		public.POST("/login", authH.Login)
	}

	// Public
	r.GET("/courses", courseH.List)
	r.POST("/api/users", userH.Create)
	r.GET("/healthz", Health(d.Health, d.Logger))
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler(d.Gatherer)))
	}

	// Authenticated
	authed := r.Group("/")
	authed.Use(middleware.TokenAuth(d.Verifier))
	{
		authed.GET("/profile", authH.Profile)
		authed.POST("/logout", authH.Logout)
		authed.POST("/course", courseH.Create)
		authed.POST("/enroll", courseH.Enroll)
	}
	return r, nil
}
