package analytics

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store provides database operations for viewing analytics.
type Store struct {
	db *sql.DB
}

// NewStore creates a new analytics store.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS section_views (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			course_id TEXT NOT NULL,
			section_index INTEGER NOT NULL,
			progress REAL NOT NULL DEFAULT 0,
			visitor_id TEXT NOT NULL,
			ip_hash TEXT NOT NULL,
			timestamp DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_section_views_course ON section_views(course_id);
		CREATE INDEX IF NOT EXISTS idx_section_views_timestamp ON section_views(timestamp);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

// GetSetting returns a setting value, or "" when absent.
func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetSetting upserts a setting.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}

// RecordSectionView stores one section-reached event.
func (s *Store) RecordSectionView(v SectionView) error {
	_, err := s.db.Exec(`INSERT INTO section_views (course_id, section_index, progress, visitor_id, ip_hash, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`,
		v.CourseID, v.SectionIndex, v.Progress, v.VisitorID, v.IPHash, v.Timestamp)
	return err
}

// CourseStats aggregates viewing data for one course: distinct visitors per
// section and the overall totals.
func (s *Store) CourseStats(courseID string) (CourseStats, error) {
	stats := CourseStats{CourseID: courseID}

	err := s.db.QueryRow(`SELECT COUNT(DISTINCT visitor_id), COUNT(*) FROM section_views WHERE course_id = ?`, courseID).
		Scan(&stats.UniqueVisitors, &stats.TotalViews)
	if err != nil {
		return stats, err
	}

	rows, err := s.db.Query(`SELECT section_index, COUNT(DISTINCT visitor_id)
		FROM section_views WHERE course_id = ?
		GROUP BY section_index ORDER BY section_index`, courseID)
	if err != nil {
		return stats, err
	}
	defer rows.Close()

	for rows.Next() {
		var sec SectionStat
		if err := rows.Scan(&sec.SectionIndex, &sec.Visitors); err != nil {
			return stats, err
		}
		stats.Sections = append(stats.Sections, sec)
	}
	return stats, rows.Err()
}

// DeleteOlderThan removes events older than the given number of days and
// returns how many were deleted.
func (s *Store) DeleteOlderThan(days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	res, err := s.db.Exec(`DELETE FROM section_views WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// StartCleanupScheduler periodically prunes old events. The returned stop
// function ends the scheduler.
func (s *Store) StartCleanupScheduler(retentionDays int, interval time.Duration) func() {
	done := make(chan struct{})
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.DeleteOlderThan(retentionDays)
			case <-done:
				return
			}
		}
	}()
	return func() { close(done) }
}
