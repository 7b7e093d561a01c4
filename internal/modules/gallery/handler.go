package gallery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/gallery/internal/domain"
	core "github.com/nfrund/gallery/internal/gallery"
	"github.com/nfrund/gallery/internal/remote"
	"github.com/nfrund/gallery/internal/rendering"
	"github.com/nfrund/gallery/internal/view"
	"github.com/nfrund/gallery/web/src/templates/components"
	"github.com/nfrund/gallery/web/src/templates/pages"
)

// Handler serves the gallery page and translates htmx actions into
// synchronizer calls. Every action answers with the re-rendered gallery.
type Handler struct {
	sync     *core.Synchronizer
	renderer rendering.Renderer
	livePath string
}

// NewHandler creates a new gallery handler with its dependencies.
func NewHandler(s *core.Synchronizer, r rendering.Renderer, livePath string) *Handler {
	return &Handler{sync: s, renderer: r, livePath: livePath}
}

// Page serves the full document.
func (h *Handler) Page(c echo.Context) error {
	page := pages.GalleryPage(h.sync.Snapshot(), view.GetFlashData(c), h.livePath)
	return h.renderer.RenderPage(c, http.StatusOK, page)
}

func (h *Handler) OpenEditProfile(c echo.Context) error {
	h.sync.OpenEditProfile()
	return h.gallery(c)
}

func (h *Handler) OpenNewCard(c echo.Context) error {
	h.sync.OpenNewCard()
	return h.gallery(c)
}

func (h *Handler) OpenUpdateAvatar(c echo.Context) error {
	h.sync.OpenUpdateAvatar()
	return h.gallery(c)
}

// ClosePopup closes the popup named in the path.
func (h *Handler) ClosePopup(c echo.Context) error {
	id := core.PopupID(c.Param("id"))
	if !id.Valid() {
		return echo.NewHTTPError(http.StatusNotFound, "unknown popup")
	}
	h.sync.ClosePopup(id)
	return h.gallery(c)
}

// SubmitProfile handles the edit-profile form.
func (h *Handler) SubmitProfile(c echo.Context) error {
	var input domain.ProfileInput
	if !h.bindForm(c, &input) {
		return h.gallery(c)
	}
	_, err := h.sync.SubmitProfile(c.Request().Context(), input)
	h.flashFailure(c, err)
	return h.gallery(c)
}

// SubmitCard handles the new-card form.
func (h *Handler) SubmitCard(c echo.Context) error {
	var input domain.CardInput
	if !h.bindForm(c, &input) {
		return h.gallery(c)
	}
	_, err := h.sync.SubmitCard(c.Request().Context(), input)
	h.flashFailure(c, err)
	return h.gallery(c)
}

// SubmitAvatar handles the avatar form.
func (h *Handler) SubmitAvatar(c echo.Context) error {
	var input domain.AvatarInput
	if !h.bindForm(c, &input) {
		return h.gallery(c)
	}
	_, err := h.sync.SubmitAvatar(c.Request().Context(), input)
	h.flashFailure(c, err)
	return h.gallery(c)
}

func (h *Handler) ToggleLike(c echo.Context) error {
	_, err := h.sync.ToggleLike(c.Request().Context(), c.Param("id"))
	h.flashFailure(c, err)
	return h.gallery(c)
}

func (h *Handler) DeleteCard(c echo.Context) error {
	h.flashFailure(c, h.sync.DeleteCard(c.Request().Context(), c.Param("id")))
	return h.gallery(c)
}

func (h *Handler) OpenPreview(c echo.Context) error {
	h.flashFailure(c, h.sync.OpenPreview(c.Request().Context(), c.Param("id")))
	return h.gallery(c)
}

// bindForm binds and validates a form. On failure it leaves a flash notice,
// keeps the typed values in the form and reports false; the remote service
// is not contacted.
func (h *Handler) bindForm(c echo.Context, input any) bool {
	labels := h.sync.Labels()
	if err := c.Bind(input); err != nil {
		view.SetFlashError(c, labels.InvalidFields)
		return false
	}
	if err := c.Validate(input); err != nil {
		h.sync.KeepDraft(input)
		view.SetFlashError(c, labels.InvalidFields)
		return false
	}
	return true
}

// flashFailure turns a failed action into a notice. The synchronizer has
// already reported it.
func (h *Handler) flashFailure(c echo.Context, err error) {
	if err == nil {
		return
	}
	msg := h.sync.Labels().ActionFailed
	var re *remote.RemoteError
	if errors.As(err, &re) {
		msg += " (" + re.Error() + ")"
	}
	view.SetFlashError(c, msg)
}

// gallery answers an action. htmx requests get the fragment; plain form
// posts are redirected back to the page.
func (h *Handler) gallery(c echo.Context) error {
	if c.Request().Header.Get("HX-Request") == "" {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	fragment := components.Gallery(h.sync.Snapshot(), view.GetFlashData(c))
	return h.renderer.RenderPage(c, http.StatusOK, fragment)
}
