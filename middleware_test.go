package lumiere

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// sessionCookieFor seeds a creator session for email and returns the cookie
// a browser would replay on the next request.
func sessionCookieFor(t *testing.T, e *echo.Echo, email string) string {
	t.Helper()
	e.POST("/seed/", func(c echo.Context) error {
		return setCreatorSession(c, Identity{ID: "u1", Email: email, DisplayName: "Test"})
	})
	req := httptest.NewRequest(http.MethodPost, "/seed/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	cookie := rec.Header().Get("Set-Cookie")
	if cookie == "" {
		t.Fatal("seeding the session produced no cookie")
	}
	return cookie
}

func identityApp() *echo.Echo {
	app := &App{Config: SiteConfig{
		AllowedEmails: []string{"kept@example.com"},
		SessionSecret: "test-secret-test-secret-32bytes!",
	}}
	e := echo.New()
	e.Use(session.Middleware(app.newSessionStore()))
	e.GET("/who/", func(c echo.Context) error {
		if ident := app.CurrentIdentity(c); ident != nil {
			return c.String(http.StatusOK, ident.Email)
		}
		return c.NoContent(http.StatusUnauthorized)
	})
	return e
}

func TestCurrentIdentityAllowsListedEmail(t *testing.T) {
	e := identityApp()
	cookie := sessionCookieFor(t, e, "kept@example.com")

	req := httptest.NewRequest(http.MethodGet, "/who/", nil)
	req.Header.Set("Cookie", cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "kept@example.com" {
		t.Errorf("allow-listed session = %d %q, want 200 with the email", rec.Code, rec.Body.String())
	}
}

func TestCurrentIdentityRejectsDelistedEmail(t *testing.T) {
	// A session minted while the email was allow-listed must stop working
	// once the email is no longer on the list, for the cookie's full life.
	e := identityApp()
	cookie := sessionCookieFor(t, e, "gone@example.com")

	req := httptest.NewRequest(http.MethodGet, "/who/", nil)
	req.Header.Set("Cookie", cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("delisted session = %d, want 401", rec.Code)
	}
}
