package store

import (
	"context"
	"sync"
	"time"

	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/errdefs"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/model"
	"github.com/google/uuid"
)

// Memory is a process-local Store for development and tests.
type Memory struct {
	mu       sync.RWMutex
	users    map[string]*model.User // by id
	byEmail  map[string]string
	courses  []*model.Course
	accounts map[string]*model.Account // by username
	now      func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		users:    make(map[string]*model.User),
		byEmail:  make(map[string]string),
		accounts: make(map[string]*model.Account),
		now:      time.Now,
	}
}

func (m *Memory) CreateUser(_ context.Context, u *model.User) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[u.Email]; ok {
		return nil, errdefs.ErrAlreadyExists
	}
	cp := *u
	cp.ID = uuid.NewString()
	cp.CreatedAt = m.now().UTC()
	m.users[cp.ID] = &cp
	m.byEmail[cp.Email] = cp.ID
	out := cp
	return &out, nil
}

func (m *Memory) FindUserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byEmail[email]
	if !ok {
		return nil, errdefs.ErrUserNotFound
	}
	out := *m.users[id]
	return &out, nil
}

func (m *Memory) FindUsersByIDs(_ context.Context, ids []string) (map[string]*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]*model.User, len(ids))
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			cp := *u
			out[id] = &cp
		}
	}
	return out, nil
}

func (m *Memory) CreateCourse(_ context.Context, c *model.Course) (*model.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	cp.ID = uuid.NewString()
	cp.Students = []string{}
	cp.CreatedAt = m.now().UTC()
	m.courses = append(m.courses, &cp)
	return copyCourse(&cp), nil
}

func (m *Memory) ListCourses(_ context.Context) ([]*model.Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Course, 0, len(m.courses))
	for _, c := range m.courses {
		out = append(out, copyCourse(c))
	}
	return out, nil
}

func (m *Memory) AddStudent(_ context.Context, courseID, studentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.courses {
		if c.ID != courseID {
			continue
		}
		if c.HasStudent(studentID) {
			return errdefs.ErrAlreadyEnrolled
		}
		c.Students = append(c.Students, studentID)
		return nil
	}
	return errdefs.ErrCourseNotFound
}

func (m *Memory) CreateAccount(_ context.Context, a *model.Account) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[a.Username]; ok {
		return nil, errdefs.ErrAlreadyExists
	}
	cp := *a
	cp.ID = uuid.NewString()
	cp.CreatedAt = m.now().UTC()
	m.accounts[cp.Username] = &cp
	out := cp
	return &out, nil
}

func (m *Memory) Ping(context.Context) error  { return nil }
func (m *Memory) Close(context.Context) error { return nil }

func copyCourse(c *model.Course) *model.Course {
	cp := *c
	cp.Students = append([]string{}, c.Students...)
	return &cp
}
