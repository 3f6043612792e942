package service

import (
	"context"
	"errors"
	"testing"

	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/errdefs"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/metrics"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/model"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/sanitize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	instructor = model.Identity{SubjectID: "i1", Role: model.RoleInstructor}
	student    = model.Identity{SubjectID: "s1", Role: model.RoleStudent}
)

type courseDeps struct {
	courses *MockCourseStore
	users   *MockUserLookup
	cache   *MockCache
	rec     *MockRecorder
}

func newCourses() (*CourseService, courseDeps) {
	d := courseDeps{new(MockCourseStore), new(MockUserLookup), new(MockCache), new(MockRecorder)}
	return NewCourseService(d.courses, d.users, d.cache, sanitize.NewText(), d.rec, zap.NewNop()), d
}

func TestCreateCourse(t *testing.T) {
	ctx := context.Background()

	t.Run("instructor creates sanitized course", func(t *testing.T) {
		svc, d := newCourses()
		d.courses.On("CreateCourse", ctx, mock.MatchedBy(func(c *model.Course) bool {
			return c.Title == "Go 101" && c.Description == "intro" && c.InstructorID == "i1" && len(c.Students) == 0
		})).Return(&model.Course{ID: "c1", Title: "Go 101", Description: "intro", InstructorID: "i1", Students: []string{}}, nil)
		d.cache.On("Invalidate", ctx).Once()

		c, err := svc.CreateCourse(ctx, instructor, CreateCourseInput{Title: " <b>Go 101</b> ", Description: "<script>x</script>intro"})
		require.NoError(t, err)
		assert.Equal(t, "c1", c.ID)
		d.courses.AssertExpectations(t)
		d.cache.AssertExpectations(t)
	})

	t.Run("student is forbidden", func(t *testing.T) {
		svc, d := newCourses()
		_, err := svc.CreateCourse(ctx, student, CreateCourseInput{Title: "t", Description: "d"})
		require.ErrorIs(t, err, errdefs.ErrForbidden)
		d.courses.AssertNotCalled(t, "CreateCourse", mock.Anything, mock.Anything)
	})

	t.Run("empty after sanitizing", func(t *testing.T) {
		svc, _ := newCourses()
		_, err := svc.CreateCourse(ctx, instructor, CreateCourseInput{Title: "<img src=x>", Description: "d"})
		require.ErrorIs(t, err, errdefs.ErrValidation)
	})
}

func TestListCourses(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves instructors and caches", func(t *testing.T) {
		svc, d := newCourses()
		d.cache.On("Get", ctx).Return(nil, false)
		d.courses.On("ListCourses", ctx).Return([]*model.Course{
			{ID: "c1", Title: "A", InstructorID: "i1", Students: []string{"s1"}},
			{ID: "c2", Title: "B", InstructorID: "i1"},
			{ID: "c3", Title: "C", InstructorID: "gone"},
		}, nil)
		d.users.On("FindUsersByIDs", ctx, []string{"i1", "gone"}).Return(map[string]*model.User{
			"i1": {ID: "i1", Email: "i@x.io", Role: model.RoleInstructor},
		}, nil)
		d.cache.On("Set", ctx, mock.Anything).Once()

		views, err := svc.ListCourses(ctx)
		require.NoError(t, err)
		require.Len(t, views, 3)
		assert.Equal(t, &model.InstructorRef{ID: "i1", Email: "i@x.io", Role: model.RoleInstructor}, views[0].Instructor)
		assert.Equal(t, []string{"s1"}, views[0].Students)
		assert.Equal(t, []string{}, views[1].Students)
		assert.Nil(t, views[2].Instructor)
		d.cache.AssertExpectations(t)
	})

	t.Run("served from cache", func(t *testing.T) {
		svc, d := newCourses()
		cached := []model.CourseView{{ID: "c1"}}
		d.cache.On("Get", ctx).Return(cached, true)

		views, err := svc.ListCourses(ctx)
		require.NoError(t, err)
		assert.Equal(t, cached, views)
		d.courses.AssertNotCalled(t, "ListCourses", mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		svc, d := newCourses()
		d.cache.On("Get", ctx).Return(nil, false)
		d.courses.On("ListCourses", ctx).Return(nil, errors.New("down"))

		_, err := svc.ListCourses(ctx)
		require.Error(t, err)
	})
}

func TestEnroll(t *testing.T) {
	ctx := context.Background()

	t.Run("student enrolls", func(t *testing.T) {
		svc, d := newCourses()
		d.courses.On("AddStudent", ctx, "c1", "s1").Return(nil)
		d.rec.On("RecordEnrollment", metrics.OutcomeSuccess).Once()
		d.cache.On("Invalidate", ctx).Once()

		require.NoError(t, svc.Enroll(ctx, student, EnrollInput{CourseID: "c1"}))
		d.courses.AssertExpectations(t)
		d.rec.AssertExpectations(t)
		d.cache.AssertExpectations(t)
	})

	t.Run("instructor is forbidden", func(t *testing.T) {
		svc, d := newCourses()
		d.rec.On("RecordEnrollment", metrics.OutcomeRejected).Once()
		err := svc.Enroll(ctx, instructor, EnrollInput{CourseID: "c1"})
		require.ErrorIs(t, err, errdefs.ErrForbidden)
	})

	t.Run("missing course id", func(t *testing.T) {
		svc, d := newCourses()
		d.rec.On("RecordEnrollment", metrics.OutcomeRejected).Once()
		err := svc.Enroll(ctx, student, EnrollInput{CourseID: "  "})
		require.ErrorIs(t, err, errdefs.ErrValidation)
	})

	for _, sentinel := range []error{errdefs.ErrCourseNotFound, errdefs.ErrAlreadyEnrolled} {
		t.Run(sentinel.Error(), func(t *testing.T) {
			svc, d := newCourses()
			d.courses.On("AddStudent", ctx, "c1", "s1").Return(sentinel)
			d.rec.On("RecordEnrollment", metrics.OutcomeRejected).Once()

			err := svc.Enroll(ctx, student, EnrollInput{CourseID: "c1"})
			require.ErrorIs(t, err, sentinel)
			d.cache.AssertNotCalled(t, "Invalidate", mock.Anything)
		})
	}
}

func TestListCoursesDoesNotCacheAcrossAWrite(t *testing.T) {
	ctx := context.Background()
	svc, d := newCourses()
	d.cache.On("Get", ctx).Return(nil, false)
	d.courses.On("AddStudent", ctx, "c1", "s1").Return(nil)
	d.rec.On("RecordEnrollment", metrics.OutcomeSuccess).Once()
	d.cache.On("Invalidate", ctx).Once()
	// an enrollment lands between the store read and the cache write
	d.courses.On("ListCourses", ctx).Run(func(mock.Arguments) {
		require.NoError(t, svc.Enroll(ctx, student, EnrollInput{CourseID: "c1"}))
	}).Return([]*model.Course{{ID: "c1", InstructorID: "i1"}}, nil).Once()
	d.users.On("FindUsersByIDs", ctx, []string{"i1"}).Return(map[string]*model.User{}, nil)

	views, err := svc.ListCourses(ctx)
	require.NoError(t, err)
	assert.Len(t, views, 1)
	d.cache.AssertExpectations(t)
	d.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)

	// the next read after the write is cached again
	d.courses.On("ListCourses", ctx).Return([]*model.Course{{ID: "c1", InstructorID: "i1", Students: []string{"s1"}}}, nil)
	d.cache.On("Set", ctx, mock.Anything).Once()
	_, err = svc.ListCourses(ctx)
	require.NoError(t, err)
	d.cache.AssertCalled(t, "Set", ctx, mock.Anything)
}

func TestAuthorize(t *testing.T) {
	svc, d := newCourses()
	assert.NoError(t, svc.AuthorizeCreate(instructor))
	assert.ErrorIs(t, svc.AuthorizeCreate(student), errdefs.ErrForbidden)

	d.rec.On("RecordEnrollment", metrics.OutcomeRejected).Once()
	assert.NoError(t, svc.AuthorizeEnroll(student))
	assert.ErrorIs(t, svc.AuthorizeEnroll(instructor), errdefs.ErrForbidden)
	d.rec.AssertExpectations(t)
}
