package lumiere

import (
	"strings"
	"time"
)

// SiteConfig holds all configuration for a Lumière deployment.
type SiteConfig struct {
	Name        string // Site name (default "Lumière")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Site owner name for JSON-LD

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/courses.db")

	AnalyticsEnabled      bool   // Enable viewing analytics (default false)
	AnalyticsDatabasePath string // Analytics SQLite path (default "data/analytics.db")

	AllowedEmails []string // Creator allow-list; empty means no one can author
	AdminPassword string   // Required: studio login password
	SessionSecret string   // Required: session encryption secret
	CookieSecure  bool     // Set true for HTTPS

	CourseCacheTTL time.Duration // Course cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Lumière"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/courses.db"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.CourseCacheTTL == 0 {
		c.CourseCacheTTL = 5 * time.Minute
	}
}

// EmailAllowed reports whether an email may sign in to the studio.
// Comparison is case-insensitive.
func (c SiteConfig) EmailAllowed(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	for _, allowed := range c.AllowedEmails {
		if strings.ToLower(strings.TrimSpace(allowed)) == email {
			return true
		}
	}
	return false
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithAssistant replaces the built-in assistant implementation.
func WithAssistant(assist Assistant) Option {
	return func(a *App) {
		if assist != nil {
			a.assist = assist
		}
	}
}
