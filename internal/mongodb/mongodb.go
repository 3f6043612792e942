// Package mongodb stores users, courses and accounts in MongoDB collections.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/errdefs"
	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection    = "users"
	coursesCollection  = "courses"
	accountsCollection = "accounts"
)

type Store struct {
	client   *mongo.Client
	users    *mongo.Collection
	courses  *mongo.Collection
	accounts *mongo.Collection
	now      func() time.Time
}

// Open connects, pings and ensures the unique indexes.
func Open(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	s := New(client.Database(database))
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

// New uses an already connected database.
func New(db *mongo.Database) *Store {
	return &Store{
		client:   db.Client(),
		users:    db.Collection(usersCollection),
		courses:  db.Collection(coursesCollection),
		accounts: db.Collection(accountsCollection),
		now:      time.Now,
	}
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	unique := func(field string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
	}
	if _, err := s.users.Indexes().CreateOne(ctx, unique("email")); err != nil {
		return fmt.Errorf("users index: %w", err)
	}
	if _, err := s.accounts.Indexes().CreateOne(ctx, unique("username")); err != nil {
		return fmt.Errorf("accounts index: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error { return s.client.Ping(ctx, readpref.Primary()) }

func (s *Store) Close(ctx context.Context) error { return s.client.Disconnect(ctx) }

// Documents

type userDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	Role      string             `bson:"role"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d userDoc) toModel() *model.User {
	return &model.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.Password,
		Role:         model.Role(d.Role),
		CreatedAt:    d.CreatedAt,
	}
}

type courseDoc struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Title        string               `bson:"title"`
	Description  string               `bson:"description"`
	InstructorID primitive.ObjectID   `bson:"instructorId"`
	Students     []primitive.ObjectID `bson:"students"`
	CreatedAt    time.Time            `bson:"created_at"`
}

func (d courseDoc) toModel() *model.Course {
	students := make([]string, 0, len(d.Students))
	for _, s := range d.Students {
		students = append(students, s.Hex())
	}
	return &model.Course{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Description:  d.Description,
		InstructorID: d.InstructorID.Hex(),
		Students:     students,
		CreatedAt:    d.CreatedAt,
	}
}

type accountDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"created_at"`
}

// Users

func (s *Store) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	doc := userDoc{
		ID:        primitive.NewObjectID(),
		Email:     u.Email,
		Password:  u.PasswordHash,
		Role:      string(u.Role),
		CreatedAt: s.now().UTC(),
	}
	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		return nil, mapWriteError(err)
	}
	return doc.toModel(), nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var doc userDoc
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errdefs.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}

func (s *Store) FindUsersByIDs(ctx context.Context, ids []string) (map[string]*model.User, error) {
	oids := objectIDs(ids)
	out := make(map[string]*model.User, len(oids))
	if len(oids) == 0 {
		return out, nil
	}
	cur, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	for _, d := range docs {
		u := d.toModel()
		out[u.ID] = u
	}
	return out, nil
}

// Courses

func (s *Store) CreateCourse(ctx context.Context, c *model.Course) (*model.Course, error) {
	instructor, err := primitive.ObjectIDFromHex(c.InstructorID)
	if err != nil {
		return nil, fmt.Errorf("invalid instructor id %q: %w", c.InstructorID, err)
	}
	doc := courseDoc{
		ID:           primitive.NewObjectID(),
		Title:        c.Title,
		Description:  c.Description,
		InstructorID: instructor,
		Students:     []primitive.ObjectID{},
		CreatedAt:    s.now().UTC(),
	}
	if _, err := s.courses.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return doc.toModel(), nil
}

// ListCourses returns courses in _id order, which is creation order for generated ids.
func (s *Store) ListCourses(ctx context.Context) ([]*model.Course, error) {
	cur, err := s.courses.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []courseDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*model.Course, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

// AddStudent pushes the student only when it is not already in the array,
// so two concurrent enrollments cannot both append.
func (s *Store) AddStudent(ctx context.Context, courseID, studentID string) error {
	cid, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return errdefs.ErrCourseNotFound
	}
	sid, err := primitive.ObjectIDFromHex(studentID)
	if err != nil {
		return fmt.Errorf("invalid student id %q: %w", studentID, err)
	}

	res, err := s.courses.UpdateOne(ctx,
		bson.M{"_id": cid, "students": bson.M{"$ne": sid}},
		bson.M{"$push": bson.M{"students": sid}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := s.courses.CountDocuments(ctx, bson.M{"_id": cid})
	if err != nil {
		return err
	}
	if n == 0 {
		return errdefs.ErrCourseNotFound
	}
	return errdefs.ErrAlreadyEnrolled
}

// Accounts

func (s *Store) CreateAccount(ctx context.Context, a *model.Account) (*model.Account, error) {
	doc := accountDoc{
		ID:        primitive.NewObjectID(),
		Username:  a.Username,
		Password:  a.PasswordHash,
		CreatedAt: s.now().UTC(),
	}
	if _, err := s.accounts.InsertOne(ctx, doc); err != nil {
		return nil, mapWriteError(err)
	}
	return &model.Account{
		ID:           doc.ID.Hex(),
		Username:     doc.Username,
		PasswordHash: doc.Password,
		CreatedAt:    doc.CreatedAt,
	}, nil
}

func mapWriteError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return errdefs.ErrAlreadyExists
	}
	return err
}

func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}
