package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hfarhan/workhub/internal/auth"
	"github.com/hfarhan/workhub/internal/rbac"
	"github.com/hfarhan/workhub/internal/session"
	"github.com/hfarhan/workhub/pkg/middleware"
	"github.com/hfarhan/workhub/pkg/response"
)

// TokenConfig carries what the handler needs to mint access tokens
type TokenConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// Handler handles HTTP requests for accounts and the auth session
type Handler struct {
	service  *Service
	tokens   TokenConfig
	sessions session.Store

	// onLogout tears down per-session state owned elsewhere (the
	// notification feed); injected by the composition root.
	onLogout func(userID int64)
}

// NewHandler creates a new user handler with its dependencies injected
func NewHandler(service *Service, tokens TokenConfig, sessions session.Store, onLogout func(userID int64)) *Handler {
	return &Handler{service: service, tokens: tokens, sessions: sessions, onLogout: onLogout}
}

// Routes returns the router for account management endpoints.
// Mounted behind the authenticator; listing and creation are HR territory.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(middleware.RequireRoles(rbac.RoleAdmin, rbac.RoleHR)).Get("/", h.List)
	r.With(middleware.RequireRoles(rbac.RoleAdmin, rbac.RoleHR)).Post("/", h.Create)
	r.With(middleware.RequireRoles(rbac.RoleAdmin, rbac.RoleHR)).Get("/{id}", h.GetByID)

	return r
}

// Login handles POST /auth/login
// @Summary      Log in
// @Description  Authenticate with email and password and receive an access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200 {object} response.APIResponse{data=LoginResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      401 {object} response.APIResponse
// @Router       /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	account, err := h.service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Unauthorized(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to log in")
		return
	}

	token, _, err := auth.NewAccessToken(h.tokens.Secret, h.tokens.Issuer, h.tokens.TTL, session.User{
		ID:   account.ID,
		Name: account.Name,
		Role: account.Role,
	})
	if err != nil {
		response.InternalError(w, "Failed to issue token")
		return
	}

	response.JSON(w, http.StatusOK, LoginResponse{Token: token, User: *account.ToResponse()})
}

// Logout handles POST /auth/logout
// @Summary      Log out
// @Description  Revoke the current access token and tear down the session
// @Tags         auth
// @Produce      json
// @Success      200 {object} response.APIResponse
// @Failure      401 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := h.sessions.Revoke(r.Context(), claims.ID, ttl); err != nil {
		response.InternalError(w, "Failed to log out")
		return
	}
	if h.onLogout != nil {
		h.onLogout(claims.UserID)
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me handles GET /auth/me
// @Summary      Get current session identity
// @Tags         auth
// @Produce      json
// @Success      200 {object} response.APIResponse{data=UserResponse}
// @Failure      401 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	account, err := h.service.GetByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to load profile")
		return
	}

	response.JSON(w, http.StatusOK, account.ToResponse())
}

// Create handles POST /users
// @Summary      Create an account
// @Description  Create a user account with one of the closed set of roles
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body CreateUserRequest true "Account"
// @Success      201 {object} response.APIResponse{data=UserResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /users [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	account, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, rbac.ErrUnknownRole) {
			response.BadRequest(w, err.Error())
			return
		}
		if errors.Is(err, ErrEmailAlreadyInUse) {
			response.Conflict(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create user")
		return
	}

	response.JSON(w, http.StatusCreated, account.ToResponse())
}

// List handles GET /users
// @Summary      List accounts
// @Tags         users
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]UserResponse}
// @Security     BearerAuth
// @Router       /users [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.List(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to list users")
		return
	}

	items := make([]*UserResponse, len(accounts))
	for i, account := range accounts {
		items[i] = account.ToResponse()
	}

	response.JSONWithMeta(w, http.StatusOK, items, &response.Meta{Total: len(items)})
}

// GetByID handles GET /users/{id}
// @Summary      Get an account by ID
// @Tags         users
// @Produce      json
// @Param        id path int true "User ID"
// @Success      200 {object} response.APIResponse{data=UserResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Security     BearerAuth
// @Router       /users/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	account, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get user")
		return
	}

	response.JSON(w, http.StatusOK, account.ToResponse())
}
