package user

import (
	"time"

	"github.com/hfarhan/workhub/internal/rbac"
)

// User represents an account in the system
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         rbac.Role `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
