package auth

import (
	"testing"
	"time"

	"github.com/hfarhan/workhub/internal/rbac"
	"github.com/hfarhan/workhub/internal/session"
)

func TestTokenRoundTrip(t *testing.T) {
	user := session.User{ID: 7, Name: "Dana", Role: rbac.RoleTeamLead}

	token, tokenID, err := NewAccessToken("secret", "workhub", time.Hour, user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if tokenID == "" {
		t.Fatalf("expected a token id")
	}

	claims, err := ParseToken("secret", "workhub", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 7 || claims.Role != "team_lead" || claims.Name != "Dana" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ID != tokenID {
		t.Fatalf("expected jti %s, got %s", tokenID, claims.ID)
	}
	if got := claims.User(); got != user {
		t.Fatalf("expected identity %+v, got %+v", user, got)
	}
}

func TestParseTokenRejectsBadInput(t *testing.T) {
	user := session.User{ID: 1, Name: "A", Role: rbac.RoleAdmin}
	token, _, err := NewAccessToken("secret", "workhub", time.Hour, user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := ParseToken("wrong-secret", "workhub", token); err == nil {
		t.Fatalf("expected bad secret to be rejected")
	}
	if _, err := ParseToken("secret", "other-issuer", token); err == nil {
		t.Fatalf("expected wrong issuer to be rejected")
	}
	if _, err := ParseToken("secret", "workhub", "not-a-token"); err == nil {
		t.Fatalf("expected garbage to be rejected")
	}

	expired, _, err := NewAccessToken("secret", "workhub", -time.Minute, user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := ParseToken("secret", "workhub", expired); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestParseTokenRejectsUnknownRoleClaim(t *testing.T) {
	// A token minted with a role outside the enum must fail at the claims
	// boundary so the guard never sees it.
	bogus := session.User{ID: 2, Name: "B", Role: rbac.Role("superuser")}
	token, _, err := NewAccessToken("secret", "workhub", time.Hour, bogus)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := ParseToken("secret", "workhub", token); err == nil {
		t.Fatalf("expected unknown role claim to be rejected")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if err := CheckPassword(hash, "secret"); err != nil {
		t.Fatalf("expected password to match")
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatalf("expected password mismatch")
	}
}
