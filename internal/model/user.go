package model

import "time"

const (
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

// User is a shop account that can sign in to the back office
type User struct {
	ID           int       `json:"id"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"` // Do not expose password hash in JSON responses
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
