package lumiere

import (
	"crypto/subtle"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// draftRegistry holds one working Editor per signed-in creator, keyed by
// email. A creator always resumes the draft they left.
type draftRegistry struct {
	mu      sync.Mutex
	editors map[string]*Editor
}

func newDraftRegistry() *draftRegistry {
	return &draftRegistry{editors: make(map[string]*Editor)}
}

func (r *draftRegistry) get(email string, assist Assistant) *Editor {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.editors[email]; ok {
		return e
	}
	e := NewEditor(assist)
	r.editors[email] = e
	return e
}

func (r *draftRegistry) replace(email string, e *Editor) {
	r.mu.Lock()
	r.editors[email] = e
	r.mu.Unlock()
}

func (r *draftRegistry) drop(email string) {
	r.mu.Lock()
	delete(r.editors, email)
	r.mu.Unlock()
}

// editor returns the current creator's draft editor, or nil when the
// request is not authenticated.
func (a *App) editor(c echo.Context) *Editor {
	ident := a.CurrentIdentity(c)
	if ident == nil {
		return nil
	}
	return a.drafts.get(ident.Email, a.assist)
}

func (a *App) handleStudio(c echo.Context) error {
	ed := a.editor(c)
	if ed == nil {
		return Render(c, a.Views.StudioLogin(false, CsrfToken(c)))
	}
	return Render(c, a.Views.StudioPage(ed.Snapshot(), CsrfToken(c)))
}

func (a *App) handleStudioLogin(c echo.Context) error {
	if !a.loginLimiter.Check(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	pass := c.FormValue("password")

	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1
	if !passOK || !a.Config.EmailAllowed(email) {
		a.loginLimiter.Record(c.RealIP())
		return Render(c, a.Views.StudioLogin(true, CsrfToken(c)))
	}

	ident := Identity{
		ID:          uuid.NewSHA1(uuid.NameSpaceOID, []byte(email)).String(),
		Email:       email,
		DisplayName: strings.SplitN(email, "@", 2)[0],
	}
	if err := setCreatorSession(c, ident); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/studio/")
}

func handleStudioLogout(c echo.Context) error {
	if err := clearCreatorSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// handleStudioEdit loads an existing course into the creator's draft slot.
func (a *App) handleStudioEdit(c echo.Context) error {
	ident := a.CurrentIdentity(c)
	if ident == nil {
		return c.Redirect(http.StatusSeeOther, "/studio/")
	}
	course, err := a.Store.GetCourse(c.Param("id"))
	if err != nil {
		if err == ErrNotFound {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	a.drafts.replace(ident.Email, NewEditorFor(course, a.assist))
	return c.Redirect(http.StatusSeeOther, "/studio/")
}

func (a *App) handleDraftMeta(c echo.Context) error {
	ed := a.editor(c)
	if ed == nil {
		return c.Redirect(http.StatusSeeOther, "/studio/")
	}
	ed.SetTitle(strings.TrimSpace(c.FormValue("title")))
	ed.SetDescription(strings.TrimSpace(c.FormValue("description")))
	ed.SetCategory(strings.TrimSpace(c.FormValue("category")))
	return c.Redirect(http.StatusSeeOther, "/studio/")
}

func (a *App) handleArchitect(c echo.Context) error {
	ed := a.editor(c)
	if ed == nil {
		return c.Redirect(http.StatusSeeOther, "/studio/")
	}
	outline := a.assist.SuggestStructure(c.Request().Context(), c.FormValue("topic"))
	ed.ApplyOutline(outline)
	return c.Redirect(http.StatusSeeOther, "/studio/")
}

func (a *App) handlePublish(c echo.Context) error {
	ident := a.CurrentIdentity(c)
	if ident == nil {
		return c.Redirect(http.StatusSeeOther, "/studio/")
	}
	ed := a.drafts.get(ident.Email, a.assist)
	ed.Flush()
	course := ed.Publish(ident.ID)
	if strings.TrimSpace(course.Title) == "" {
		return c.Redirect(http.StatusSeeOther, "/studio/")
	}
	if err := a.Store.SaveCourse(course); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, "/course/"+course.ID+"/")
}

func (a *App) handleCoverUpload(c echo.Context) error {
	ed := a.editor(c)
	if ed == nil {
		return c.Redirect(http.StatusSeeOther, "/studio/")
	}
	uri, err := a.readUploadedImage(c, maxCoverWidth)
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	ed.SetCoverImage(uri)
	return c.Redirect(http.StatusSeeOther, "/studio/")
}

func (a *App) handleCoverGenerate(c echo.Context) error {
	ed := a.editor(c)
	if ed == nil {
		return c.Redirect(http.StatusSeeOther, "/studio/")
	}
	if ref := a.assist.GenerateCoverImage(c.Request().Context(), c.FormValue("prompt")); ref != "" {
		ed.SetCoverImage(ref)
	}
	return c.Redirect(http.StatusSeeOther, "/studio/")
}

func (a *App) handleBlockAppend(c echo.Context) error {
	ed := a.editor(c)
	if ed == nil {
		return c.Redirect(http.StatusSeeOther, "/studio/")
	}
	ed.AppendBlock(BlockType(c.FormValue("type")))
	return c.Redirect(http.StatusSeeOther, "/studio/")
}

func (a *App) handleVideoAppend(c echo.Context) error {
	ed := a.editor(c)
	if ed == nil {
		return c.Redirect(http.StatusSeeOther, "/studio/")
	}
	url := strings.TrimSpace(c.FormValue("url"))
	if url != "" {
		ed.AppendVideoBlock(url)
	}
	return c.Redirect(http.StatusSeeOther, "/studio/")
}

func (a *App) handleBlockContent(c echo.Context) error {
	ed := a.editor(c)
	if ed == nil {
		return c.Redirect(http.StatusSeeOther, "/studio/")
	}
	ed.UpdateBlockContent(c.Param("id"), c.FormValue("content"))
	return c.Redirect(http.StatusSeeOther, "/studio/")
}

func (a *App) handleBlockMeta(c echo.Context) error {
	ed := a.editor(c)
	if ed == nil {
		return c.Redirect(http.StatusSeeOther, "/studio/")
	}
	ed.UpdateBlockMetadata(c.Param("id"), c.FormValue("field"), c.FormValue("value"))
	return c.Redirect(http.StatusSeeOther, "/studio/")
}

func (a *App) handleBlockSnippet(c echo.Context) error {
	ed := a.editor(c)
	if ed == nil {
		return c.Redirect(http.StatusSeeOther, "/studio/")
	}
	if snippet := Snippet(c.FormValue("snippet")); snippet != "" {
		ed.InsertSnippet(c.Param("id"), snippet)
	}
	return c.Redirect(http.StatusSeeOther, "/studio/")
}

func (a *App) handleBlockDelete(c echo.Context) error {
	ed := a.editor(c)
	if ed == nil {
		return c.Redirect(http.StatusSeeOther, "/studio/")
	}
	ed.RemoveBlock(c.Param("id"))
	return c.Redirect(http.StatusSeeOther, "/studio/")
}

func (a *App) handleBlockImage(c echo.Context) error {
	ed := a.editor(c)
	if ed == nil {
		return c.Redirect(http.StatusSeeOther, "/studio/")
	}
	uri, err := a.readUploadedImage(c, maxInlineWidth)
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	ed.UpdateBlockContent(c.Param("id"), uri)
	return c.Redirect(http.StatusSeeOther, "/studio/")
}

func (a *App) handleTabAdd(c echo.Context) error {
	ed := a.editor(c)
	if ed == nil {
		return c.Redirect(http.StatusSeeOther, "/studio/")
	}
	ed.AddTab(c.Param("id"))
	return c.Redirect(http.StatusSeeOther, "/studio/")
}

func (a *App) handleTabUpdate(c echo.Context) error {
	ed := a.editor(c)
	if ed == nil {
		return c.Redirect(http.StatusSeeOther, "/studio/")
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	ed.UpdateTab(c.Param("id"), index, c.FormValue("field"), c.FormValue("value"))
	return c.Redirect(http.StatusSeeOther, "/studio/")
}

func (a *App) handleTabMove(c echo.Context) error {
	ed := a.editor(c)
	if ed == nil {
		return c.Redirect(http.StatusSeeOther, "/studio/")
	}
	from, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	to, err := strconv.Atoi(c.FormValue("to"))
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	ed.ReorderTab(c.Param("id"), from, to)
	return c.Redirect(http.StatusSeeOther, "/studio/")
}

func (a *App) handleTabDelete(c echo.Context) error {
	ed := a.editor(c)
	if ed == nil {
		return c.Redirect(http.StatusSeeOther, "/studio/")
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	active, _ := strconv.Atoi(c.FormValue("active"))
	ed.RemoveTab(c.Param("id"), index, active)
	return c.Redirect(http.StatusSeeOther, "/studio/")
}

func (a *App) handleDragStart(c echo.Context) error {
	ed := a.editor(c)
	if ed == nil {
		return c.NoContent(http.StatusForbidden)
	}
	index, err := strconv.Atoi(c.FormValue("index"))
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	ed.DragStart(index)
	return c.NoContent(http.StatusNoContent)
}

func (a *App) handleDragEnter(c echo.Context) error {
	ed := a.editor(c)
	if ed == nil {
		return c.NoContent(http.StatusForbidden)
	}
	index, err := strconv.Atoi(c.FormValue("index"))
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	ed.DragEnter(index)
	return c.NoContent(http.StatusNoContent)
}

func (a *App) handleDragEnd(c echo.Context) error {
	ed := a.editor(c)
	if ed == nil {
		return c.NoContent(http.StatusForbidden)
	}
	ed.DragEnd()
	return c.Redirect(http.StatusSeeOther, "/studio/")
}

func (a *App) handleCourseDelete(c echo.Context) error {
	ident := a.CurrentIdentity(c)
	if ident == nil {
		return c.NoContent(http.StatusForbidden)
	}
	if err := a.Store.DeleteCourse(c.Param("id")); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.NoContent(http.StatusNoContent)
}

// handleVideoAnalyze answers a prompt about an uploaded video clip.
func (a *App) handleVideoAnalyze(c echo.Context) error {
	if !a.IsCreator(c) {
		return c.NoContent(http.StatusForbidden)
	}
	file, err := c.FormFile("video")
	if err != nil {
		return c.String(http.StatusBadRequest, "No video file provided")
	}
	if file.Size > maxUploadSize {
		return c.String(http.StatusBadRequest, "File too large (max 10MB)")
	}
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}
	answer := a.assist.AnalyzeVideo(c.Request().Context(), data, c.FormValue("prompt"))
	return c.JSON(http.StatusOK, map[string]string{"answer": answer})
}

// readUploadedImage pulls the "image" form file, bounds its size, and
// returns it as a JPEG data URI.
func (a *App) readUploadedImage(c echo.Context, maxWidth int) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "No image file provided")
	}
	if file.Size > maxUploadSize {
		return "", echo.NewHTTPError(http.StatusBadRequest, "File too large (max 10MB)")
	}
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	return ImageDataURI(src, maxWidth)
}
