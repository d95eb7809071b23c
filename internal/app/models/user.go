package models

import (
	"strings"
	"time"
)

// User defines the identity record based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id"`
	Username    string     `json:"username" db:"username"`
	Email       string     `json:"email" db:"email"`
	Password    string     `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	FirstName   string     `json:"firstName" db:"first_name"`
	LastName    string     `json:"lastName" db:"last_name"`
	IsStaff     bool       `json:"isStaff" db:"is_staff"`
	IsSuperuser bool       `json:"isSuperuser" db:"is_superuser"`
	IsActive    bool       `json:"isActive" db:"is_active"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// FullName returns first and last name joined, falling back to the username
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// Role classifies the user by its flags
func (u *User) Role() Role {
	switch {
	case u.IsSuperuser:
		return RoleSuperuser
	case u.IsStaff:
		return RoleStaff
	default:
		return RoleStudent
	}
}

// Viewer is the caller of the current request: the resolved user plus its
// role classification, or an anonymous viewer when no session is present.
type Viewer struct {
	User *User
	Role Role
}

// ViewerFor builds the viewer classification for a user; nil means anonymous.
func ViewerFor(u *User) Viewer {
	if u == nil {
		return Viewer{Role: RoleAnonymous}
	}
	return Viewer{User: u, Role: u.Role()}
}

// Authenticated reports whether the viewer carries an identity
func (v Viewer) Authenticated() bool {
	return v.User != nil
}

// IsStaff reports whether the viewer is staff or above
func (v Viewer) IsStaff() bool {
	return v.Role.AtLeast(RoleStaff)
}

// IsSuperuser reports whether the viewer is a superuser
func (v Viewer) IsSuperuser() bool {
	return v.Role.AtLeast(RoleSuperuser)
}

// UserID returns the viewer's user ID, zero for anonymous viewers
func (v Viewer) UserID() int64 {
	if v.User == nil {
		return 0
	}
	return v.User.ID
}
