// Package lumiere is a cinematic course platform built with Go, Echo, and
// templ. Courses are block-based documents authored in the creator studio
// and presented as a scroll-driven viewing experience.
//
// Applications provide templ components via the ViewFuncs struct; lumiere
// handles handlers, middleware, persistence, and the authoring state
// machine.
package lumiere

import (
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/kristoffermer/Lumiere/analytics"
)

// ViewFuncs holds the templ components the framework calls when rendering
// pages. This is the inversion-of-control mechanism that lets applications
// own and customize all templates.
type ViewFuncs struct {
	Home        func(courses []Course, ident *Identity, cfg SiteConfig) templ.Component
	CoursePage  func(course Course, sections []CourseSection, cfg SiteConfig) templ.Component
	StudioLogin func(showError bool, csrfToken string) templ.Component
	StudioPage  func(draft Course, csrfToken string) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

// App is the central Lumière application. It wires together the store,
// cache, studio, handlers, middleware, and the provided templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *CourseCache
	Views  ViewFuncs

	assist         Assistant
	drafts         *draftRegistry
	loginLimiter   *LoginLimiter
	analyticsStore *analytics.Store
	customRoutes   []func(*App)
	staticDir      string
}

// New creates a Lumière App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		assist:    StudioAssistant{},
		staticDir: "public",
	}
	a.drafts = newDraftRegistry()

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the database, cache, middleware, routes, and starts the
// server.
func (a *App) Start() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("lumiere: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("lumiere: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("lumiere: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewCourseCache(a.Store, a.Config.CourseCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	if a.Config.AnalyticsEnabled {
		analyticsStore, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("lumiere: init analytics: %w", err)
		}
		a.analyticsStore = analyticsStore
		if err := analytics.InitSalt(analyticsStore); err != nil {
			return fmt.Errorf("lumiere: init analytics salt: %w", err)
		}
		stopCleanup := analyticsStore.StartCleanupScheduler(365, 24*time.Hour)
		defer stopCleanup()
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Serve embedded framework assets under /public/, falling through to
	// the application's static dir for everything else.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/viewer.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.GET("/public/studio.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.GET("/public/lumiere.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/course/:id/", a.handleCourse)
	e.POST("/api/chat/:id", a.handleChat)

	// Studio routes
	e.GET("/studio/", a.handleStudio)
	e.POST("/studio/login/", a.handleStudioLogin)
	e.POST("/studio/logout/", handleStudioLogout)
	e.GET("/studio/edit/:id/", a.handleStudioEdit)
	e.POST("/studio/meta/", a.handleDraftMeta)
	e.POST("/studio/architect/", a.handleArchitect)
	e.POST("/studio/publish/", a.handlePublish)
	e.POST("/studio/cover/upload/", a.handleCoverUpload)
	e.POST("/studio/cover/generate/", a.handleCoverGenerate)
	e.POST("/studio/analyze/", a.handleVideoAnalyze)
	e.POST("/studio/blocks/append/", a.handleBlockAppend)
	e.POST("/studio/blocks/video/", a.handleVideoAppend)
	e.POST("/studio/blocks/:id/content/", a.handleBlockContent)
	e.POST("/studio/blocks/:id/meta/", a.handleBlockMeta)
	e.POST("/studio/blocks/:id/snippet/", a.handleBlockSnippet)
	e.POST("/studio/blocks/:id/delete/", a.handleBlockDelete)
	e.POST("/studio/blocks/:id/image/", a.handleBlockImage)
	e.POST("/studio/blocks/:id/tabs/add/", a.handleTabAdd)
	e.POST("/studio/blocks/:id/tabs/:index/", a.handleTabUpdate)
	e.POST("/studio/blocks/:id/tabs/:index/delete/", a.handleTabDelete)
	e.POST("/studio/blocks/:id/tabs/:index/move/", a.handleTabMove)
	e.POST("/studio/drag/start/", a.handleDragStart)
	e.POST("/studio/drag/enter/", a.handleDragEnter)
	e.POST("/studio/drag/end/", a.handleDragEnd)
	e.DELETE("/studio/course/:id/", a.handleCourseDelete)

	// Analytics routes
	if a.Config.AnalyticsEnabled && a.analyticsStore != nil {
		handler := analytics.NewHandler(a.analyticsStore)
		creatorOnly := func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				if !a.IsCreator(c) {
					return c.Redirect(http.StatusSeeOther, "/studio/")
				}
				return next(c)
			}
		}
		handler.RegisterRoutes(e, creatorOnly)
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		a.Store.Close()
	}
	if a.analyticsStore != nil {
		a.analyticsStore.Close()
	}
	return nil
}

// MustEnv returns the value of the environment variable key, or fatally
// exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("lumiere: required environment variable %s is not set", key)
	}
	return v
}
