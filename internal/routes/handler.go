package routes

import (
	"net/http"

	"github.com/hfarhan/workhub/internal/rbac"
	"github.com/hfarhan/workhub/pkg/middleware"
	"github.com/hfarhan/workhub/pkg/response"
)

// Handler exposes the navigation guard decision over HTTP
type Handler struct {
	table *Table
}

// NewHandler creates a new routes handler with the table injected
func NewHandler(table *Table) *Handler {
	return &Handler{table: table}
}

// ResolveResponse is the guard decision for one path
type ResolveResponse struct {
	Path      string `json:"path"`
	Component string `json:"component"`
	Allowed   bool   `json:"allowed"`
	Redirect  string `json:"redirect,omitempty"`
	Found     bool   `json:"found"`
}

// Resolve handles GET /routes/resolve
// @Summary      Resolve a navigation path
// @Description  Match a path against the route table and decide whether the current session may mount it. Anonymous callers get login redirects for protected routes; authenticated callers with the wrong role get their own dashboard, never login. Unmatched paths resolve to the public not-found page.
// @Tags         routes
// @Produce      json
// @Param        path query string true "Navigation path"
// @Success      200 {object} response.APIResponse{data=ResolveResponse}
// @Failure      400 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /routes/resolve [get]
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		response.BadRequest(w, "path query parameter is required")
		return
	}

	// Anonymous sessions carry the empty role; the guard treats it as
	// "no session". Mounted behind the optional authenticator.
	var role rbac.Role
	if user, ok := middleware.GetUser(r.Context()); ok {
		role = user.Role
	}

	route, found := h.table.Resolve(path)
	decision := rbac.Decide(role, route.Allowed)

	response.JSON(w, http.StatusOK, ResolveResponse{
		Path:      path,
		Component: route.Component,
		Allowed:   decision.Allowed,
		Redirect:  decision.Redirect,
		Found:     found,
	})
}
