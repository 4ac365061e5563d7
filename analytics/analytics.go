// Package analytics provides privacy-first course viewing analytics.
// It records which sections of a course learners actually reach, keyed by
// anonymous salted hashes instead of raw IP addresses.
package analytics

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// salt holds the per-installation random salt for IP hashing, protected by sync.Once.
var salt struct {
	once  sync.Once
	value string
}

// InitSalt loads or generates a persistent salt for IP hashing.
// Must be called once at startup before any requests are served.
func InitSalt(store *Store) error {
	var initErr error
	salt.once.Do(func() {
		s, err := store.GetSetting("hash_salt")
		if err != nil {
			initErr = fmt.Errorf("read hash salt: %w", err)
			return
		}
		if s == "" {
			b := make([]byte, 32)
			if _, err := rand.Read(b); err != nil {
				initErr = fmt.Errorf("generate salt: %w", err)
				return
			}
			s = hex.EncodeToString(b)
			if err := store.SetSetting("hash_salt", s); err != nil {
				initErr = fmt.Errorf("store hash salt: %w", err)
				return
			}
		}
		salt.value = s
	})
	return initErr
}

func getSalt() string {
	return salt.value
}

// SectionView is one learner reaching one section of a course.
type SectionView struct {
	ID           int64     `json:"-"`
	CourseID     string    `json:"course_id"`
	SectionIndex int       `json:"section_index"`
	Progress     float64   `json:"progress"` // overall scroll fraction when recorded
	VisitorID    string    `json:"visitor_id"`
	IPHash       string    `json:"-"`
	Timestamp    time.Time `json:"timestamp"`
}

// ViewRequest is the beacon payload sent from the course page.
type ViewRequest struct {
	CourseID     string  `json:"course_id"`
	SectionIndex int     `json:"section_index"`
	Progress     float64 `json:"progress"`
}

// CourseStats holds aggregated viewing data for one course.
type CourseStats struct {
	CourseID       string        `json:"course_id"`
	UniqueVisitors int           `json:"unique_visitors"`
	TotalViews     int           `json:"total_views"`
	Sections       []SectionStat `json:"sections"`
}

// SectionStat is how many distinct visitors reached a section.
type SectionStat struct {
	SectionIndex int `json:"section_index"`
	Visitors     int `json:"visitors"`
}

// HashIP creates a salted SHA-256 hash of an IP address.
func HashIP(ip string) string {
	h := sha256.New()
	h.Write([]byte(getSalt() + ip))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// GenerateVisitorID creates a salted visitor ID from IP and User-Agent.
func GenerateVisitorID(ip, userAgent string) string {
	h := sha256.New()
	h.Write([]byte(getSalt() + ip + "|" + userAgent))
	return hex.EncodeToString(h.Sum(nil))[:16]
}
