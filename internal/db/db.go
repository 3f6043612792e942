package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/errdefs"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/model"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

const errDuplicateEntry = 1062

type DB struct {
	*sqlx.DB
}

// Open connects to MySQL, waiting for the server to come up, and ensures the schema.
func Open(ctx context.Context, dsn string) (*DB, error) {
	xdb, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	xdb.SetConnMaxLifetime(2 * time.Hour)
	xdb.SetMaxIdleConns(10)
	xdb.SetMaxOpenConns(50)

	if err := waitForPing(ctx, xdb, 60); err != nil {
		_ = xdb.Close()
		return nil, err
	}
	d := New(xdb)
	if err := d.EnsureSchema(ctx); err != nil {
		_ = xdb.Close()
		return nil, err
	}
	return d, nil
}

// New wraps an existing connection without touching the schema.
func New(xdb *sqlx.DB) *DB { return &DB{DB: xdb} }

func waitForPing(ctx context.Context, xdb *sqlx.DB, attempts int) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = xdb.PingContext(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
	return fmt.Errorf("database not reachable: %w", err)
}

func (d *DB) Ping(ctx context.Context) error { return d.DB.PingContext(ctx) }

func (d *DB) Close(context.Context) error { return d.DB.Close() }

// Rows

type userRow struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r userRow) toModel() *model.User {
	return &model.User{
		ID:           formatID(r.ID),
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Role:         model.Role(r.Role),
		CreatedAt:    r.CreatedAt,
	}
}

type courseRow struct {
	ID           int64     `db:"id"`
	Title        string    `db:"title"`
	Description  string    `db:"description"`
	InstructorID int64     `db:"instructor_id"`
	CreatedAt    time.Time `db:"created_at"`
}

type enrollmentRow struct {
	CourseID  int64 `db:"course_id"`
	StudentID int64 `db:"student_id"`
}

// Users

func (d *DB) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	now := time.Now().UTC()
	res, err := d.ExecContext(ctx,
		"INSERT INTO users (email,password_hash,role,created_at) VALUES (?,?,?,?)",
		u.Email, u.PasswordHash, string(u.Role), now)
	if err != nil {
		return nil, mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	out := *u
	out.ID = formatID(id)
	out.CreatedAt = now
	return &out, nil
}

func (d *DB) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var r userRow
	err := d.GetContext(ctx, &r, "SELECT id,email,password_hash,role,created_at FROM users WHERE email=?", email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errdefs.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return r.toModel(), nil
}

func (d *DB) FindUsersByIDs(ctx context.Context, ids []string) (map[string]*model.User, error) {
	nums := make([]int64, 0, len(ids))
	for _, id := range ids {
		if n, ok := parseID(id); ok {
			nums = append(nums, n)
		}
	}
	out := make(map[string]*model.User, len(nums))
	if len(nums) == 0 {
		return out, nil
	}
	q, args, err := sqlx.In("SELECT id,email,password_hash,role,created_at FROM users WHERE id IN (?)", nums)
	if err != nil {
		return nil, err
	}
	var rows []userRow
	if err := d.SelectContext(ctx, &rows, d.Rebind(q), args...); err != nil {
		return nil, err
	}
	for _, r := range rows {
		u := r.toModel()
		out[u.ID] = u
	}
	return out, nil
}

// Courses

func (d *DB) CreateCourse(ctx context.Context, c *model.Course) (*model.Course, error) {
	instructor, ok := parseID(c.InstructorID)
	if !ok {
		return nil, fmt.Errorf("invalid instructor id %q", c.InstructorID)
	}
	now := time.Now().UTC()
	res, err := d.ExecContext(ctx,
		"INSERT INTO courses (title,description,instructor_id,created_at) VALUES (?,?,?,?)",
		c.Title, c.Description, instructor, now)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	out := *c
	out.ID = formatID(id)
	out.Students = []string{}
	out.CreatedAt = now
	return &out, nil
}

// ListCourses returns courses in creation order with their students in enrollment order.
func (d *DB) ListCourses(ctx context.Context) ([]*model.Course, error) {
	var rows []courseRow
	if err := d.SelectContext(ctx, &rows,
		"SELECT id,title,description,instructor_id,created_at FROM courses ORDER BY id ASC"); err != nil {
		return nil, err
	}
	var enrolled []enrollmentRow
	if err := d.SelectContext(ctx, &enrolled,
		"SELECT course_id,student_id FROM course_students ORDER BY enrolled_at ASC, student_id ASC"); err != nil {
		return nil, err
	}
	students := make(map[int64][]string, len(rows))
	for _, e := range enrolled {
		students[e.CourseID] = append(students[e.CourseID], formatID(e.StudentID))
	}

	out := make([]*model.Course, 0, len(rows))
	for _, r := range rows {
		s := students[r.ID]
		if s == nil {
			s = []string{}
		}
		out = append(out, &model.Course{
			ID:           formatID(r.ID),
			Title:        r.Title,
			Description:  r.Description,
			InstructorID: formatID(r.InstructorID),
			Students:     s,
			CreatedAt:    r.CreatedAt,
		})
	}
	return out, nil
}

// AddStudent inserts the enrollment only if the course exists; the
// (course_id, student_id) primary key makes a repeat a no-op.
func (d *DB) AddStudent(ctx context.Context, courseID, studentID string) error {
	cid, ok := parseID(courseID)
	if !ok {
		return errdefs.ErrCourseNotFound
	}
	sid, ok := parseID(studentID)
	if !ok {
		return fmt.Errorf("invalid student id %q", studentID)
	}
	res, err := d.ExecContext(ctx,
		"INSERT IGNORE INTO course_students (course_id,student_id) SELECT id, ? FROM courses WHERE id=?",
		sid, cid)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var count int
	if err := d.GetContext(ctx, &count, "SELECT COUNT(*) FROM courses WHERE id=?", cid); err != nil {
		return err
	}
	if count == 0 {
		return errdefs.ErrCourseNotFound
	}
	return errdefs.ErrAlreadyEnrolled
}

// Accounts

func (d *DB) CreateAccount(ctx context.Context, a *model.Account) (*model.Account, error) {
	now := time.Now().UTC()
	res, err := d.ExecContext(ctx,
		"INSERT INTO accounts (username,password_hash,created_at) VALUES (?,?,?)",
		a.Username, a.PasswordHash, now)
	if err != nil {
		return nil, mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	out := *a
	out.ID = formatID(id)
	out.CreatedAt = now
	return &out, nil
}

func mapError(err error) error {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == errDuplicateEntry {
		return errdefs.ErrAlreadyExists
	}
	return err
}

func parseID(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func formatID(n int64) string { return strconv.FormatInt(n, 10) }
