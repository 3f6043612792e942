package service

import (
	"context"
	"time"

	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/auth"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserStore) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockCourseStore struct {
	mock.Mock
}

func (m *MockCourseStore) CreateCourse(ctx context.Context, c *model.Course) (*model.Course, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Course), args.Error(1)
}

func (m *MockCourseStore) ListCourses(ctx context.Context) ([]*model.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Course), args.Error(1)
}

func (m *MockCourseStore) AddStudent(ctx context.Context, courseID, studentID string) error {
	return m.Called(ctx, courseID, studentID).Error(0)
}

type MockUserLookup struct {
	mock.Mock
}

func (m *MockUserLookup) FindUsersByIDs(ctx context.Context, ids []string) (map[string]*model.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*model.User), args.Error(1)
}

type MockAccountStore struct {
	mock.Mock
}

func (m *MockAccountStore) CreateAccount(ctx context.Context, a *model.Account) (*model.Account, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) RecordRequest(method, route string, status int, latency time.Duration) {
	m.Called(method, route, status, latency)
}
func (m *MockRecorder) RecordSignup(outcome string)     { m.Called(outcome) }
func (m *MockRecorder) RecordLogin(outcome string)      { m.Called(outcome) }
func (m *MockRecorder) RecordEnrollment(outcome string) { m.Called(outcome) }

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context) ([]model.CourseView, bool) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]model.CourseView), args.Bool(1)
}
func (m *MockCache) Set(ctx context.Context, v []model.CourseView) { m.Called(ctx, v) }
func (m *MockCache) Invalidate(ctx context.Context)                { m.Called(ctx) }

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func testTokens() *auth.TokenService {
	now := func() time.Time { return fixedNow }
	return auth.NewTokenService(auth.NewJWTSigner("test-secret", now), time.Hour, now)
}

// passthrough hashes by prefixing, enough to tell hashes from plaintext.
type passthrough struct{}

func (passthrough) Hash(pw string) (string, error) { return "hashed:" + pw, nil }
func (passthrough) Compare(hash, pw string) (bool, error) {
	return hash == "hashed:"+pw, nil
}
