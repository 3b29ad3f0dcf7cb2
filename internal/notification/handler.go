package notification

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hfarhan/workhub/internal/rbac"
	"github.com/hfarhan/workhub/pkg/middleware"
	"github.com/hfarhan/workhub/pkg/response"
)

// Handler handles HTTP requests for the notification feed
type Handler struct {
	service *Service
}

// NewHandler creates a new notification handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for notification endpoints. Callers mount it
// behind the authenticator; every operation is scoped to the session user.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/unread-count", h.GetUnreadCount)
	r.Post("/refresh", h.Refresh)
	r.Post("/read-all", h.MarkAllRead)
	r.Post("/{id}/read", h.MarkRead)
	r.Post("/{id}/open", h.Open)
	r.Delete("/{id}", h.Clear)

	r.With(middleware.RequireRoles(rbac.RoleAdmin, rbac.RoleHR, rbac.RoleManager)).
		Post("/", h.Create)

	return r
}

// List handles GET /notifications
// @Summary      List notifications
// @Description  Get the session's notification feed, unread first then newest first
// @Tags         notifications
// @Produce      json
// @Param        type query string false "Filter by notification type"
// @Success      200 {object} response.APIResponse{data=[]NotificationResponse}
// @Failure      503 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /notifications [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var (
		notifications []Notification
		unread        int
		err           error
	)
	if typ := r.URL.Query().Get("type"); typ != "" {
		notifications, unread, err = h.service.ListByType(r.Context(), user.ID, ParseType(typ))
	} else {
		notifications, unread, err = h.service.List(r.Context(), user.ID)
	}
	if err != nil {
		response.ServiceUnavailable(w, "Unable to load notifications")
		return
	}

	items := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		items[i] = toResponse(n)
	}

	response.JSONWithMeta(w, http.StatusOK, items, &response.Meta{
		Total:  len(items),
		Unread: unread,
	})
}

// GetUnreadCount handles GET /notifications/unread-count
// @Summary      Get unread count
// @Tags         notifications
// @Produce      json
// @Success      200 {object} response.APIResponse
// @Failure      503 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /notifications/unread-count [get]
func (h *Handler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	count, err := h.service.UnreadCount(r.Context(), user.ID)
	if err != nil {
		response.ServiceUnavailable(w, "Unable to load notifications")
		return
	}

	response.JSON(w, http.StatusOK, map[string]int{"unread_count": count})
}

// Refresh handles POST /notifications/refresh
// @Summary      Refresh the feed
// @Description  Re-fetch the feed from the backend source. Invoked by the shell on session start and visibility regain; the server never polls on its own.
// @Tags         notifications
// @Produce      json
// @Success      200 {object} response.APIResponse
// @Failure      503 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /notifications/refresh [post]
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Refresh(r.Context(), user.ID); err != nil {
		response.ServiceUnavailable(w, "Unable to load notifications")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Feed refreshed"})
}

// MarkRead handles POST /notifications/{id}/read
// @Summary      Mark a notification as read
// @Description  Idempotent; marking an absent or already-read notification is a no-op
// @Tags         notifications
// @Produce      json
// @Param        id path string true "Notification ID"
// @Success      200 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /notifications/{id}/read [post]
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	h.service.MarkRead(r.Context(), user.ID, chi.URLParam(r, "id"))
	response.JSON(w, http.StatusOK, map[string]string{"message": "Notification marked as read"})
}

// MarkAllRead handles POST /notifications/read-all
// @Summary      Mark all notifications as read
// @Tags         notifications
// @Produce      json
// @Success      200 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /notifications/read-all [post]
func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	h.service.MarkAllRead(r.Context(), user.ID)
	response.JSON(w, http.StatusOK, map[string]string{"message": "All notifications marked as read"})
}

// Open handles POST /notifications/{id}/open
// @Summary      Open a notification
// @Description  Resolve the navigation target for the notification and mark it read (at most once)
// @Tags         notifications
// @Produce      json
// @Param        id path string true "Notification ID"
// @Success      200 {object} response.APIResponse{data=OpenResponse}
// @Failure      404 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /notifications/{id}/open [post]
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	target, err := h.service.Open(r.Context(), user.ID, chi.URLParam(r, "id"), user.Role)
	if err != nil {
		if errors.Is(err, ErrNotificationNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.ServiceUnavailable(w, "Unable to load notifications")
		return
	}

	response.JSON(w, http.StatusOK, OpenResponse{Target: target})
}

// Clear handles DELETE /notifications/{id}
// @Summary      Dismiss a notification
// @Description  Removes the notification regardless of read state; dismissing an absent id is a no-op
// @Tags         notifications
// @Produce      json
// @Param        id path string true "Notification ID"
// @Success      200 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /notifications/{id} [delete]
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	h.service.Clear(r.Context(), user.ID, chi.URLParam(r, "id"))
	response.JSON(w, http.StatusOK, map[string]string{"message": "Notification dismissed"})
}

// Create handles POST /notifications
// @Summary      Create a notification
// @Description  Emit a notification to a recipient; it becomes visible in the recipient's feed on their next refresh (immediately if their feed is live)
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        request body CreateNotificationRequest true "Notification"
// @Success      201 {object} response.APIResponse{data=NotificationResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /notifications [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.RecipientID == 0 || req.Title == "" {
		response.BadRequest(w, "recipient_id and title are required")
		return
	}

	created, err := h.service.Create(r.Context(), Notification{
		RecipientID: req.RecipientID,
		Type:        ParseType(req.Type),
		Title:       req.Title,
		Message:     req.Message,
		ActionURL:   req.ActionURL,
		Metadata:    Metadata{LeaveID: req.LeaveID, TaskID: req.TaskID},
	})
	if err != nil {
		response.InternalError(w, "Failed to create notification")
		return
	}

	response.JSON(w, http.StatusCreated, toResponse(created))
}
