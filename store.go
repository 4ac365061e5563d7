package lumiere

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store wraps a SQLite database holding whole-document course records. Each
// course is saved and loaded as one JSON document, so a publish replaces the
// entire prior state and concurrent edits resolve last-write-wins.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Enable WAL mode for concurrent read/write access, set a busy timeout
	// so writers wait instead of returning SQLITE_BUSY immediately, and tune
	// performance: synchronous=NORMAL is safe with WAL and avoids an fsync
	// per transaction; larger cache and mmap reduce disk I/O.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
		PRAGMA mmap_size=268435456;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS courses (
    id TEXT PRIMARY KEY,
    data TEXT NOT NULL,
    author_id TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL DEFAULT 0
);
`)
	return err
}

// ListCourses returns every course, newest first.
func (s *Store) ListCourses() ([]Course, error) {
	rows, err := s.db.Query(`SELECT data FROM courses ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []Course
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var c Course
		if err := json.Unmarshal([]byte(data), &c); err != nil {
			return nil, fmt.Errorf("lumiere: decode course record: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// ListCoursesBy returns the given author's courses, newest first.
func (s *Store) ListCoursesBy(authorID string) ([]Course, error) {
	rows, err := s.db.Query(`SELECT data FROM courses WHERE author_id = ? ORDER BY created_at DESC, id`, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []Course
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var c Course
		if err := json.Unmarshal([]byte(data), &c); err != nil {
			return nil, fmt.Errorf("lumiere: decode course record: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// GetCourse returns a single course by id.
func (s *Store) GetCourse(id string) (Course, error) {
	var data string
	if err := s.db.QueryRow(`SELECT data FROM courses WHERE id = ?`, id).Scan(&data); err != nil {
		return Course{}, err
	}
	var c Course
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return Course{}, fmt.Errorf("lumiere: decode course record: %w", err)
	}
	return c, nil
}

// SaveCourse upserts a course as one JSON document.
func (s *Store) SaveCourse(c Course) error {
	if c.ID == "" {
		return fmt.Errorf("lumiere: save course: missing id")
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("lumiere: encode course record: %w", err)
	}
	_, err = s.db.Exec(`INSERT OR REPLACE INTO courses (id, data, author_id, created_at) VALUES (?, ?, ?, ?)`,
		c.ID, string(data), c.AuthorID, c.CreatedAt)
	return err
}

// DeleteCourse removes a course by id.
func (s *Store) DeleteCourse(id string) error {
	_, err := s.db.Exec(`DELETE FROM courses WHERE id = ?`, id)
	return err
}
