package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/cache"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/errdefs"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/metrics"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/model"
	"go.uber.org/zap"
)

type Sanitizer interface {
	Clean(s string) string
}

type CreateCourseInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type EnrollInput struct {
	CourseID string `json:"courseId" validate:"required"`
}

// CourseService creates, lists and enrolls in courses.
type CourseService struct {
	courses   CourseStore
	users     UserLookup
	cache     cache.CourseCache
	sanitizer Sanitizer
	metrics   metrics.Recorder
	logger    *zap.Logger

	// gen counts invalidations; a listing read before the latest one is
	// not written back to the cache.
	genMu sync.Mutex
	gen   uint64
}

func NewCourseService(courses CourseStore, users UserLookup, cc cache.CourseCache, s Sanitizer, rec metrics.Recorder, logger *zap.Logger) *CourseService {
	if cc == nil {
		cc = cache.Nop{}
	}
	return &CourseService{courses: courses, users: users, cache: cc, sanitizer: s, metrics: rec, logger: logger}
}

// AuthorizeCreate fails with errdefs.ErrForbidden unless caller is an instructor.
func (s *CourseService) AuthorizeCreate(caller model.Identity) error {
	if caller.Role != model.RoleInstructor {
		return fmt.Errorf("%w: only instructors can create courses", errdefs.ErrForbidden)
	}
	return nil
}

// AuthorizeEnroll fails with errdefs.ErrForbidden unless caller is a student.
func (s *CourseService) AuthorizeEnroll(caller model.Identity) error {
	if caller.Role != model.RoleStudent {
		s.metrics.RecordEnrollment(metrics.OutcomeRejected)
		return fmt.Errorf("%w: only students can enroll in courses", errdefs.ErrForbidden)
	}
	return nil
}

// CreateCourse stores a new course owned by the calling instructor.
func (s *CourseService) CreateCourse(ctx context.Context, caller model.Identity, in CreateCourseInput) (*model.Course, error) {
	if err := s.AuthorizeCreate(caller); err != nil {
		return nil, err
	}
	in.Title = s.sanitizer.Clean(in.Title)
	in.Description = s.sanitizer.Clean(in.Description)
	if err := validateInput(in, "please provide title and description"); err != nil {
		return nil, err
	}

	c, err := s.courses.CreateCourse(ctx, &model.Course{
		Title:        in.Title,
		Description:  in.Description,
		InstructorID: caller.SubjectID,
		Students:     []string{},
	})
	if err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	s.invalidate(ctx)
	s.logger.Info("course created", zap.String("course_id", c.ID), zap.String("instructor_id", c.InstructorID))
	return c, nil
}

// ListCourses returns every course with its instructor resolved to
// id, email and role. A dangling instructor reference resolves to nil.
func (s *CourseService) ListCourses(ctx context.Context) ([]model.CourseView, error) {
	if views, ok := s.cache.Get(ctx); ok {
		return views, nil
	}
	gen := s.generation()

	courses, err := s.courses.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	ids := make([]string, 0, len(courses))
	seen := make(map[string]struct{}, len(courses))
	for _, c := range courses {
		if _, ok := seen[c.InstructorID]; ok || c.InstructorID == "" {
			continue
		}
		seen[c.InstructorID] = struct{}{}
		ids = append(ids, c.InstructorID)
	}
	instructors, err := s.users.FindUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve instructors: %w", err)
	}

	views := make([]model.CourseView, 0, len(courses))
	for _, c := range courses {
		v := model.CourseView{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			Students:    c.Students,
			CreatedAt:   c.CreatedAt,
		}
		if v.Students == nil {
			v.Students = []string{}
		}
		if u, ok := instructors[c.InstructorID]; ok {
			v.Instructor = &model.InstructorRef{ID: u.ID, Email: u.Email, Role: u.Role}
		}
		views = append(views, v)
	}
	s.remember(ctx, gen, views)
	return views, nil
}

// Enroll adds the calling student to a course's roster. The store does the
// membership check and the append as one step, so a student appears at
// most once even under concurrent requests.
func (s *CourseService) Enroll(ctx context.Context, caller model.Identity, in EnrollInput) error {
	if err := s.AuthorizeEnroll(caller); err != nil {
		return err
	}
	in.CourseID = strings.TrimSpace(in.CourseID)
	if err := validateInput(in, "please provide a courseId"); err != nil {
		s.metrics.RecordEnrollment(metrics.OutcomeRejected)
		return err
	}

	err := s.courses.AddStudent(ctx, in.CourseID, caller.SubjectID)
	switch {
	case err == nil:
	case errors.Is(err, errdefs.ErrCourseNotFound), errors.Is(err, errdefs.ErrAlreadyEnrolled):
		s.metrics.RecordEnrollment(metrics.OutcomeRejected)
		return err
	default:
		s.metrics.RecordEnrollment(metrics.OutcomeFailure)
		return fmt.Errorf("enroll: %w", err)
	}

	s.metrics.RecordEnrollment(metrics.OutcomeSuccess)
	s.invalidate(ctx)
	s.logger.Info("student enrolled", zap.String("course_id", in.CourseID), zap.String("student_id", caller.SubjectID))
	return nil
}

func (s *CourseService) generation() uint64 {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	return s.gen
}

func (s *CourseService) invalidate(ctx context.Context) {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	s.gen++
	s.cache.Invalidate(ctx)
}

// remember caches views only if no write happened since they were read.
func (s *CourseService) remember(ctx context.Context, gen uint64, views []model.CourseView) {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	if s.gen != gen {
		return
	}
	s.cache.Set(ctx, views)
}
