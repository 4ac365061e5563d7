package lumiere

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *App) handleHome(c echo.Context) error {
	courses, err := a.Cache.ListCourses()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(courses, a.CurrentIdentity(c), a.Config))
}

func (a *App) handleCourse(c echo.Context) error {
	course, err := a.Cache.GetCourse(c.Param("id"))
	if err != nil {
		if err == ErrNotFound {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	return Render(c, a.Views.CoursePage(course, Segment(course.Blocks), a.Config))
}

type chatRequest struct {
	History []string `json:"history"`
	Message string   `json:"message"`
}

// handleChat answers a learner question about a course through the
// assistant.
func (a *App) handleChat(c echo.Context) error {
	if _, err := a.Cache.GetCourse(c.Param("id")); err != nil {
		if err == ErrNotFound {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request")
	}
	reply := a.assist.Chat(c.Request().Context(), req.History, req.Message)
	return c.JSON(http.StatusOK, map[string]string{"reply": reply})
}

func (a *App) handleSitemap(c echo.Context) error {
	courses, err := a.Cache.ListCourses()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, courses)
}

func (a *App) handleFeed(c echo.Context) error {
	courses, err := a.Cache.ListCourses()
	if err != nil {
		return err
	}
	return a.renderRSS(c, courses)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
