// Package store defines the persistence contract shared by the MongoDB,
// MySQL and in-memory backends and picks one from configuration.
package store

import (
	"context"
	"fmt"

	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/config"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/db"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/model"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/mongodb"
	"go.uber.org/zap"
)

// Store persists users, courses and standalone accounts.
//
// CreateUser and CreateAccount return errdefs.ErrAlreadyExists on a duplicate key.
// FindUserByEmail returns errdefs.ErrUserNotFound when nothing matches.
// AddStudent is a single conditional update: errdefs.ErrCourseNotFound for an
// unknown or malformed course id, errdefs.ErrAlreadyEnrolled when the student is present.
type Store interface {
	CreateUser(ctx context.Context, u *model.User) (*model.User, error)
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	FindUsersByIDs(ctx context.Context, ids []string) (map[string]*model.User, error)

	CreateCourse(ctx context.Context, c *model.Course) (*model.Course, error)
	ListCourses(ctx context.Context) ([]*model.Course, error)
	AddStudent(ctx context.Context, courseID, studentID string) error

	CreateAccount(ctx context.Context, a *model.Account) (*model.Account, error)

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Open connects the backend selected by cfg.StoreDriver.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		s, err := mongodb.Open(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
		logger.Info("connected to MongoDB", zap.String("database", cfg.MongoDatabase))
		return s, nil
	case config.DriverMySQL:
		s, err := db.Open(ctx, cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("mysql: %w", err)
		}
		logger.Info("connected to MySQL", zap.String("host", cfg.DBHost), zap.String("database", cfg.DBName))
		return s, nil
	case config.DriverMemory:
		logger.Warn("using in-memory store; data is lost on restart")
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
