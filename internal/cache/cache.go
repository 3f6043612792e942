package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/model"
	"github.com/redis/go-redis/v9"
)

const coursesKey = "courses:all"

// CourseCache holds the resolved course listing between writes.
type CourseCache interface {
	Get(ctx context.Context) ([]model.CourseView, bool)
	Set(ctx context.Context, courses []model.CourseView)
	Invalidate(ctx context.Context)
}

// Nop never hits.
type Nop struct{}

func (Nop) Get(context.Context) ([]model.CourseView, bool) { return nil, false }
func (Nop) Set(context.Context, []model.CourseView)        {}
func (Nop) Invalidate(context.Context)                     {}

// Client is the part of *redis.Client the cache needs.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisCourseCache stores the listing as JSON under a single key.
type RedisCourseCache struct {
	rdb Client
	ttl time.Duration
}

func NewRedisCourseCache(rdb Client, ttl time.Duration) *RedisCourseCache {
	return &RedisCourseCache{rdb: rdb, ttl: ttl}
}

// NewRedisClient parses a redis:// URL into a client.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}

// Get treats any redis or decode failure as a miss.
func (r *RedisCourseCache) Get(ctx context.Context) ([]model.CourseView, bool) {
	val, err := r.rdb.Get(ctx, coursesKey).Bytes()
	if errors.Is(err, redis.Nil) || err != nil {
		return nil, false
	}
	var out []model.CourseView
	if err := json.Unmarshal(val, &out); err != nil {
		return nil, false
	}
	return out, true
}

func (r *RedisCourseCache) Set(ctx context.Context, courses []model.CourseView) {
	b, err := json.Marshal(courses)
	if err != nil {
		return
	}
	r.rdb.Set(ctx, coursesKey, b, r.ttl)
}

func (r *RedisCourseCache) Invalidate(ctx context.Context) {
	r.rdb.Del(ctx, coursesKey)
}
