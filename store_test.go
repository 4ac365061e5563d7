package lumiere

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test_courses.db")

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testCourse(id string, createdAt int64) Course {
	return Course{
		ID:          id,
		Title:       "Course " + id,
		Description: "A course about " + id,
		CoverImage:  "https://example.com/" + id + ".jpg",
		AuthorID:    "author-1",
		CreatedAt:   createdAt,
		Blocks: []CourseBlock{
			{ID: id + "-h", Type: BlockHeader, Content: "Act 1", Metadata: &BlockMeta{Description: "intro"}},
			{ID: id + "-t", Type: BlockText, Content: "Some **bold** prose."},
		},
	}
}

func TestSaveAndGetCourse(t *testing.T) {
	s := setupTestStore(t)

	c := testCourse("c1", 100)
	if err := s.SaveCourse(c); err != nil {
		t.Fatalf("SaveCourse failed: %v", err)
	}

	got, err := s.GetCourse("c1")
	if err != nil {
		t.Fatalf("GetCourse failed: %v", err)
	}
	if got.Title != c.Title || len(got.Blocks) != 2 {
		t.Errorf("round trip = %+v", got)
	}
	if got.Blocks[0].Metadata == nil || got.Blocks[0].Metadata.Description != "intro" {
		t.Errorf("block metadata did not survive, got %+v", got.Blocks[0].Metadata)
	}
}

func TestSaveCourseUpserts(t *testing.T) {
	s := setupTestStore(t)

	c := testCourse("c1", 100)
	if err := s.SaveCourse(c); err != nil {
		t.Fatalf("SaveCourse failed: %v", err)
	}
	c.Title = "Revised"
	c.Blocks = c.Blocks[:1]
	if err := s.SaveCourse(c); err != nil {
		t.Fatalf("second SaveCourse failed: %v", err)
	}

	got, err := s.GetCourse("c1")
	if err != nil {
		t.Fatalf("GetCourse failed: %v", err)
	}
	if got.Title != "Revised" || len(got.Blocks) != 1 {
		t.Errorf("upsert should replace the whole document, got %+v", got)
	}
}

func TestSaveCourseRequiresID(t *testing.T) {
	s := setupTestStore(t)
	if err := s.SaveCourse(Course{Title: "no id"}); err == nil {
		t.Error("saving a course without an id should fail")
	}
}

func TestListCoursesNewestFirst(t *testing.T) {
	s := setupTestStore(t)

	for _, c := range []Course{testCourse("old", 10), testCourse("new", 30), testCourse("mid", 20)} {
		if err := s.SaveCourse(c); err != nil {
			t.Fatalf("SaveCourse failed: %v", err)
		}
	}

	courses, err := s.ListCourses()
	if err != nil {
		t.Fatalf("ListCourses failed: %v", err)
	}
	var ids []string
	for _, c := range courses {
		ids = append(ids, c.ID)
	}
	want := []string{"new", "mid", "old"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("order = %v, want %v", ids, want)
		}
	}
}

func TestDeleteCourse(t *testing.T) {
	s := setupTestStore(t)

	if err := s.SaveCourse(testCourse("c1", 1)); err != nil {
		t.Fatalf("SaveCourse failed: %v", err)
	}
	if err := s.DeleteCourse("c1"); err != nil {
		t.Fatalf("DeleteCourse failed: %v", err)
	}
	if _, err := s.GetCourse("c1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetCourse after delete = %v, want ErrNotFound", err)
	}
}

func TestCourseCacheFallsBackToSample(t *testing.T) {
	s := setupTestStore(t)
	cache := NewCourseCache(s, time.Minute)

	courses, err := cache.ListCourses()
	if err != nil {
		t.Fatalf("ListCourses failed: %v", err)
	}
	if len(courses) != 1 || courses[0].ID != "demo-1" {
		t.Errorf("empty library should serve the sample course, got %+v", courses)
	}

	if _, err := cache.GetCourse("demo-1"); err != nil {
		t.Errorf("sample course should resolve by id: %v", err)
	}
}

func TestCourseCacheFallsBackToSampleOnReadFailure(t *testing.T) {
	s := setupTestStore(t)
	cache := NewCourseCache(s, time.Minute)
	s.Close()

	courses, err := cache.ListCourses()
	if err != nil {
		t.Fatalf("ListCourses with a broken store should not error: %v", err)
	}
	if len(courses) != 1 || courses[0].ID != "demo-1" {
		t.Errorf("broken store should serve the sample course, got %+v", courses)
	}

	if _, err := cache.GetCourse("demo-1"); err != nil {
		t.Errorf("sample course should resolve by id despite the broken store: %v", err)
	}
	if _, err := cache.GetCourse("c1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id with a broken store = %v, want ErrNotFound", err)
	}
}

func TestCourseCacheInvalidate(t *testing.T) {
	s := setupTestStore(t)
	cache := NewCourseCache(s, time.Minute)

	if _, err := cache.ListCourses(); err != nil {
		t.Fatalf("warm-up failed: %v", err)
	}
	if err := s.SaveCourse(testCourse("c1", 1)); err != nil {
		t.Fatalf("SaveCourse failed: %v", err)
	}

	// Stale until invalidated.
	courses, _ := cache.ListCourses()
	if len(courses) != 1 || courses[0].ID != "demo-1" {
		t.Fatalf("cache should still be serving the warm-up result, got %+v", courses)
	}

	cache.Invalidate()
	courses, err := cache.ListCourses()
	if err != nil {
		t.Fatalf("ListCourses after invalidate failed: %v", err)
	}
	if len(courses) != 1 || courses[0].ID != "c1" {
		t.Errorf("after invalidate got %+v", courses)
	}
}
