// Cinemora - Web Series Reviews and Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemora

package models

import "time"

// Role names. An admin can curate the catalog; everyone else is a user.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRoles lists every role the store accepts.
var ValidRoles = []string{RoleUser, RoleAdmin}

// IsValidRole reports whether role is a known role.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User is an account. PasswordHash never leaves the process.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UserSummary is the author block embedded in review listings.
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserStats counts a user's activity for the public profile.
type UserStats struct {
	ReviewsCount   int `json:"reviewsCount"`
	FavoritesCount int `json:"favoritesCount"`
}

// UserProfile is the public profile returned by GET /api/users/{id}.
type UserProfile struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	Stats     UserStats `json:"stats"`
}

// UserUpdate carries a partial profile update. Nil fields are left alone.
type UserUpdate struct {
	Name  *string
	Email *string
}
