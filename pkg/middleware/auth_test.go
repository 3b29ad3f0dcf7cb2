package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hfarhan/workhub/internal/auth"
	"github.com/hfarhan/workhub/internal/rbac"
	"github.com/hfarhan/workhub/internal/session"
	"github.com/hfarhan/workhub/pkg/response"
)

const (
	testSecret = "test-secret"
	testIssuer = "test-issuer"
)

func testRouter(sessions session.Store) http.Handler {
	a := NewAuthenticator(testSecret, testIssuer, sessions)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(a.Require)
		r.Get("/any", func(w http.ResponseWriter, r *http.Request) {
			user, _ := GetUser(r.Context())
			response.JSON(w, http.StatusOK, map[string]string{"role": string(user.Role)})
		})
		r.With(RequireRoles(rbac.RoleAdmin, rbac.RoleHR)).Get("/hr-only", func(w http.ResponseWriter, r *http.Request) {
			response.JSON(w, http.StatusOK, map[string]string{"ok": "yes"})
		})
	})
	r.With(a.Optional).Get("/open", func(w http.ResponseWriter, r *http.Request) {
		if user, ok := GetUser(r.Context()); ok {
			response.JSON(w, http.StatusOK, map[string]string{"role": string(user.Role)})
			return
		}
		response.JSON(w, http.StatusOK, map[string]string{"role": ""})
	})
	return r
}

func mustToken(t *testing.T, user session.User) (string, string) {
	t.Helper()
	token, tokenID, err := auth.NewAccessToken(testSecret, testIssuer, time.Hour, user)
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}
	return token, tokenID
}

func doReq(t *testing.T, app *httptest.Server, path, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, app.URL+path, nil)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	return resp
}

func TestRequireRejectsAnonymous(t *testing.T) {
	app := httptest.NewServer(testRouter(session.NewMemoryStore()))
	defer app.Close()

	resp := doReq(t, app, "/any", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	resp = doReq(t, app, "/any", "garbage-token")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a bad token, got %d", resp.StatusCode)
	}
}

func TestRequireAdmitsValidToken(t *testing.T) {
	app := httptest.NewServer(testRouter(session.NewMemoryStore()))
	defer app.Close()

	token, _ := mustToken(t, session.User{ID: 1, Name: "E", Role: rbac.RoleEmployee})
	resp := doReq(t, app, "/any", token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestRequireRolesDistinguishes401From403(t *testing.T) {
	app := httptest.NewServer(testRouter(session.NewMemoryStore()))
	defer app.Close()

	// No session at all: 401.
	resp := doReq(t, app, "/hr-only", "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	// Wrong role: 403, with the caller's own dashboard as the redirect,
	// never the login page.
	token, _ := mustToken(t, session.User{ID: 2, Name: "E", Role: rbac.RoleEmployee})
	resp = doReq(t, app, "/hr-only", token)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	var body response.APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	resp.Body.Close()
	if body.Error == nil || body.Error.Redirect != "/employee/dashboard" {
		t.Fatalf("expected dashboard redirect, got %+v", body.Error)
	}

	// Right role: 200.
	token, _ = mustToken(t, session.User{ID: 3, Name: "H", Role: rbac.RoleHR})
	resp = doReq(t, app, "/hr-only", token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestRequireRejectsRevokedToken(t *testing.T) {
	sessions := session.NewMemoryStore()
	app := httptest.NewServer(testRouter(sessions))
	defer app.Close()

	token, tokenID := mustToken(t, session.User{ID: 4, Name: "A", Role: rbac.RoleAdmin})

	resp := doReq(t, app, "/any", token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 before revocation, got %d", resp.StatusCode)
	}

	if err := sessions.Revoke(context.Background(), tokenID, time.Hour); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	resp = doReq(t, app, "/any", token)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 after revocation, got %d", resp.StatusCode)
	}
}

func TestOptionalAdmitsAnonymous(t *testing.T) {
	app := httptest.NewServer(testRouter(session.NewMemoryStore()))
	defer app.Close()

	resp := doReq(t, app, "/open", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for anonymous, got %d", resp.StatusCode)
	}

	token, _ := mustToken(t, session.User{ID: 5, Name: "M", Role: rbac.RoleManager})
	resp = doReq(t, app, "/open", token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body response.APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	resp.Body.Close()
	data, _ := body.Data.(map[string]interface{})
	if data["role"] != "manager" {
		t.Fatalf("expected manager claims to be attached, got %v", body.Data)
	}
}
