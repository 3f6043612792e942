package store

import (
	"context"
	"sync"
	"testing"

	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/errdefs"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_Users(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	u, err := m.CreateUser(ctx, &model.User{Email: "a@x.com", PasswordHash: "h", Role: model.RoleStudent})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)

	_, err = m.CreateUser(ctx, &model.User{Email: "a@x.com", PasswordHash: "h2", Role: model.RoleInstructor})
	assert.ErrorIs(t, err, errdefs.ErrAlreadyExists)

	got, err := m.FindUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, model.RoleStudent, got.Role)

	_, err = m.FindUserByEmail(ctx, "missing@x.com")
	assert.ErrorIs(t, err, errdefs.ErrUserNotFound)

	byID, err := m.FindUsersByIDs(ctx, []string{u.ID, "unknown"})
	require.NoError(t, err)
	assert.Len(t, byID, 1)
	assert.Equal(t, "a@x.com", byID[u.ID].Email)
}

func TestMemory_Enrollment(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	c, err := m.CreateCourse(ctx, &model.Course{Title: "Go", Description: "Intro", InstructorID: "i1"})
	require.NoError(t, err)
	assert.Empty(t, c.Students)

	require.NoError(t, m.AddStudent(ctx, c.ID, "s1"))
	assert.ErrorIs(t, m.AddStudent(ctx, c.ID, "s1"), errdefs.ErrAlreadyEnrolled)
	assert.ErrorIs(t, m.AddStudent(ctx, "nope", "s1"), errdefs.ErrCourseNotFound)

	list, err := m.ListCourses(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"s1"}, list[0].Students)
}

func TestMemory_ConcurrentEnrollKeepsOneEntry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	c, err := m.CreateCourse(ctx, &model.Course{Title: "Go", Description: "Intro", InstructorID: "i1"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	added := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if m.AddStudent(ctx, c.ID, "s1") == nil {
				mu.Lock()
				added++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, added)
	list, _ := m.ListCourses(ctx)
	assert.Equal(t, []string{"s1"}, list[0].Students)
}

func TestMemory_Accounts(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	a, err := m.CreateAccount(ctx, &model.Account{Username: "bob", PasswordHash: "h"})
	require.NoError(t, err)
	assert.Equal(t, "bob", a.Username)

	_, err = m.CreateAccount(ctx, &model.Account{Username: "bob", PasswordHash: "h"})
	assert.ErrorIs(t, err, errdefs.ErrAlreadyExists)
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	c, err := m.CreateCourse(ctx, &model.Course{Title: "Go", Description: "Intro", InstructorID: "i1"})
	require.NoError(t, err)

	c.Students = append(c.Students, "intruder")
	list, _ := m.ListCourses(ctx)
	assert.Empty(t, list[0].Students)
}
