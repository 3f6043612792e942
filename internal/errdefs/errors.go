package errdefs

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrUnauthenticated    = errors.New("access denied")
	ErrForbidden          = errors.New("access denied")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyExists      = errors.New("already exists")
	ErrCourseNotFound     = errors.New("course not found")
	ErrAlreadyEnrolled    = errors.New("already enrolled in this course")
)
