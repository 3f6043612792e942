package model

import "time"

// Role is the privilege level a user picks at signup.
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleInstructor
}

// User is a course API user. PasswordHash never holds plaintext.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Course is owned by an instructor and holds the ids of enrolled students.
type Course struct {
	ID           string
	Title        string
	Description  string
	InstructorID string
	Students     []string
	CreatedAt    time.Time
}

// HasStudent reports whether id is already enrolled.
func (c *Course) HasStudent(id string) bool {
	for _, s := range c.Students {
		if s == id {
			return true
		}
	}
	return false
}

// InstructorRef is the resolved instructor shown in course listings.
type InstructorRef struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// CourseView is a course with its instructor resolved.
type CourseView struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Instructor  *InstructorRef `json:"instructorId"`
	Students    []string       `json:"students"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// Account belongs to the standalone user-creation API.
type Account struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is what a verified token asserts about its bearer.
type Identity struct {
	SubjectID string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}
