package notifications

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fundlift/fundlift/internal/platform/httpx"
	"github.com/fundlift/fundlift/internal/shared"
)

// Handler wires HTTP endpoints for a user's own notifications. Routes are
// mounted behind the authentication middleware; the principal is always
// the addressee.
type Handler struct {
	logger *slog.Logger
	client *Client
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, client *Client) *Handler {
	return &Handler{logger: logger, client: client}
}

// MountRoutes registers notification routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/unread", h.handleUnread)
	r.Get("/count", h.handleCount)
	r.Post("/{id}/read", h.handleMarkRead)
	r.Delete("/{id}", h.handleDelete)
}

func currentUser(w http.ResponseWriter, r *http.Request) (*shared.Principal, bool) {
	principal := shared.PrincipalFromContext(r.Context())
	if principal == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authentication required")
		return nil, false
	}
	return principal, true
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentUser(w, r)
	if !ok {
		return
	}
	out, err := h.client.ForUser(r.Context(), principal.UserID)
	if err != nil {
		h.logger.Error("list notifications", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) handleUnread(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentUser(w, r)
	if !ok {
		return
	}
	out, err := h.client.UnreadForUser(r.Context(), principal.UserID)
	if err != nil {
		h.logger.Error("unread notifications", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) handleCount(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentUser(w, r)
	if !ok {
		return
	}
	count, err := h.client.CountForUser(r.Context(), principal.UserID)
	if err != nil {
		h.logger.Error("count notifications", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, count)
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentUser(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	n, err := h.client.MarkAsRead(r.Context(), id, principal.UserID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, n)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentUser(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.client.Remove(r.Context(), id, principal.UserID); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.NoContent(w)
}
