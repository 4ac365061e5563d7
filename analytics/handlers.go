package analytics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler handles analytics HTTP requests.
type Handler struct {
	store          *Store
	collectLimiter *viewLimiter
}

// NewHandler creates a new analytics handler.
// The collect endpoint is rate-limited to 60 requests per IP per minute.
func NewHandler(store *Store) *Handler {
	return &Handler{
		store:          store,
		collectLimiter: newViewLimiter(60, time.Minute),
	}
}

// Input validation limits for the collect endpoint.
const (
	maxCourseIDLen  = 128
	maxSectionIndex = 1024
)

func validateViewRequest(req *ViewRequest) error {
	if req.CourseID == "" || len(req.CourseID) > maxCourseIDLen {
		return fmt.Errorf("invalid course_id")
	}
	if req.SectionIndex < 0 || req.SectionIndex > maxSectionIndex {
		return fmt.Errorf("section_index out of range")
	}
	if req.Progress < 0 || req.Progress > 1 {
		return fmt.Errorf("progress out of range")
	}
	return nil
}

// Collect handles section-view beacons from course pages.
func (h *Handler) Collect(c echo.Context) error {
	// Rate limit by IP to prevent analytics flooding.
	if !h.collectLimiter.allow(c.RealIP()) {
		return c.NoContent(http.StatusTooManyRequests)
	}

	// Honor Do Not Track.
	if c.Request().Header.Get("DNT") == "1" {
		return c.NoContent(http.StatusNoContent)
	}

	var req ViewRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request")
	}
	if err := validateViewRequest(&req); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request")
	}

	ip := c.RealIP()
	view := SectionView{
		CourseID:     req.CourseID,
		SectionIndex: req.SectionIndex,
		Progress:     req.Progress,
		VisitorID:    GenerateVisitorID(ip, c.Request().UserAgent()),
		IPHash:       HashIP(ip),
		Timestamp:    time.Now().UTC(),
	}
	if err := h.store.RecordSectionView(view); err != nil {
		c.Logger().Errorf("record section view: %v", err)
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.NoContent(http.StatusNoContent)
}

// Stats returns aggregated viewing data for one course as JSON.
func (h *Handler) Stats(c echo.Context) error {
	stats, err := h.store.CourseStats(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// RegisterRoutes wires the analytics endpoints: the public collect beacon
// and the auth-guarded per-course stats.
func (h *Handler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.POST("/api/analytics/view", h.Collect)
	e.GET("/studio/analytics/:id", h.Stats, auth)
}
