// Package service holds the account, course and user-creation flows. It
// depends only on narrow store interfaces, a Hasher and the TokenService.
package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/errdefs"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/model"
	"github.com/go-playground/validator/v10"
)

type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) (*model.User, error)
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
}

type UserLookup interface {
	FindUsersByIDs(ctx context.Context, ids []string) (map[string]*model.User, error)
}

type CourseStore interface {
	CreateCourse(ctx context.Context, c *model.Course) (*model.Course, error)
	ListCourses(ctx context.Context) ([]*model.Course, error)
	AddStudent(ctx context.Context, courseID, studentID string) error
}

type AccountStore interface {
	CreateAccount(ctx context.Context, a *model.Account) (*model.Account, error)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// validateInput reports a missing field with the flow's own message and
// any other rule failure by field name.
func validateInput(in any, missing string) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", errdefs.ErrValidation, err)
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return fmt.Errorf("%w: %s", errdefs.ErrValidation, missing)
		}
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "oneof":
		return fmt.Errorf("%w: %s must be one of %s", errdefs.ErrValidation, fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Errorf("%w: %s is invalid", errdefs.ErrValidation, fe.Field())
	}
}
