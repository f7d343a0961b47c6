package models

import "strings"

// Role is the access tier recorded on a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is a person known to the engine. Records are created once on first
// authentication and never deleted.
type User struct {
	UID         string `json:"uid"`
	DisplayName string `json:"displayName"`
	Role        Role   `json:"role"`
	Email       string `json:"email"`
}

// NewDefaultUser is the record written on first login.
func NewDefaultUser(uid, email string) *User {
	return &User{
		UID:         uid,
		DisplayName: email,
		Role:        RoleUser,
		Email:       email,
	}
}

// ApplyDefaults fills fields that older records may lack.
func (u *User) ApplyDefaults() {
	if u.Role == "" {
		u.Role = RoleUser
	}
	if strings.TrimSpace(u.DisplayName) == "" {
		u.DisplayName = u.Email
	}
}
