package lumiere

import (
	"database/sql"
	"log"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested course does not exist.
var ErrNotFound = sql.ErrNoRows

// CourseCache is an in-memory cache of the course library with TTL.
type CourseCache struct {
	mu      sync.RWMutex
	courses []Course
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewCourseCache creates a CourseCache backed by the given Store.
func NewCourseCache(s *Store, ttl time.Duration) *CourseCache {
	return &CourseCache{store: s, ttl: ttl}
}

func (c *CourseCache) valid() bool {
	return c.courses != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *CourseCache) Invalidate() {
	c.mu.Lock()
	c.courses = nil
	c.mu.Unlock()
}

func (c *CourseCache) load() error {
	if c.valid() {
		return nil
	}
	courses, err := c.store.ListCourses()
	if err != nil {
		return err
	}
	if courses == nil {
		courses = []Course{}
	}
	c.courses = courses
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns the cached library after ensuring it is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *CourseCache) ensureLoaded() ([]Course, error) {
	c.mu.RLock()
	if c.valid() {
		courses := c.courses
		c.mu.RUnlock()
		return courses, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, err
	}
	return c.courses, nil
}

// ListCourses returns the course library, newest first. An empty library or
// a failed store read falls back to the built-in sample course so the home
// page is never blank.
func (c *CourseCache) ListCourses() ([]Course, error) {
	courses, err := c.ensureLoaded()
	if err != nil {
		log.Printf("lumiere: course list unavailable, serving sample: %v", err)
		return []Course{SampleCourse()}, nil
	}
	if len(courses) == 0 {
		return []Course{SampleCourse()}, nil
	}
	return courses, nil
}

// GetCourse returns a single course by id from the cache. The sample course
// id resolves even when the library is empty or the store read fails.
func (c *CourseCache) GetCourse(id string) (Course, error) {
	courses, err := c.ensureLoaded()
	if err != nil {
		log.Printf("lumiere: course read unavailable: %v", err)
		if sample := SampleCourse(); sample.ID == id {
			return sample, nil
		}
		return Course{}, ErrNotFound
	}
	for _, course := range courses {
		if course.ID == id {
			return course, nil
		}
	}
	if sample := SampleCourse(); sample.ID == id {
		return sample, nil
	}
	return Course{}, ErrNotFound
}
