package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Lastname     string     `json:"lastname"`
	Email        string     `json:"email"`
	Password     string     `json:"password,omitempty"`
	RoleID       int        `json:"role_id"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// Claims são as claims do JWT emitido no login.
type Claims struct {
	UserID     int    `json:"user_id"`
	UserRoleID int    `json:"user_role_id"`
	Email      string `json:"email"`
	jwt.RegisteredClaims
}

type UpdateUserRequest struct {
	ID       int     `json:"id"`
	Name     *string `json:"name,omitempty"`
	Lastname *string `json:"lastname,omitempty"`
	Email    *string `json:"email,omitempty"`
	Active   *bool   `json:"active,omitempty"`
	RoleID   *int    `json:"role_id,omitempty"`
}
