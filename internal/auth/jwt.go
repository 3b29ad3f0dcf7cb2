package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hfarhan/workhub/internal/rbac"
	"github.com/hfarhan/workhub/internal/session"
)

// Claims are the access-token claims. Role is carried as its wire string and
// re-validated against the closed enum on every parse.
type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// User rebuilds the session identity from validated claims
func (c *Claims) User() session.User {
	return session.User{
		ID:   c.UserID,
		Name: c.Name,
		Role: rbac.Role(c.Role),
	}
}

// NewAccessToken signs an access token for the user. The returned token id
// (jti) is what logout revokes.
func NewAccessToken(secret, issuer string, ttl time.Duration, user session.User) (token string, tokenID string, err error) {
	now := time.Now().UTC()
	tokenID = uuid.NewString()
	claims := Claims{
		UserID: user.ID,
		Role:   string(user.Role),
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	return token, tokenID, err
}

// ParseToken validates signature, issuer and expiry, then validates the role
// claim against the enum so downstream code never sees an unknown role.
func ParseToken(secret, issuer, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if _, err := rbac.ParseRole(claims.Role); err != nil {
		return nil, err
	}
	return claims, nil
}
