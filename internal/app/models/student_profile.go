package models

import (
	"fmt"
	"time"
)

// Default profile values applied when registration does not supply them.
const (
	DefaultDepartment = "Computer Science & Engineering"
	DefaultYear       = 2025
)

// StudentProfile is the supplementary record kept one-to-one with a User.
type StudentProfile struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	RollNumber string    `json:"rollNumber" db:"roll_number"`
	Department string    `json:"department" db:"department"`
	Year       int       `json:"year" db:"year"`
	Phone      string    `json:"phone,omitempty" db:"phone"`
	Avatar     string    `json:"avatar,omitempty" db:"avatar"` // storage-relative path
	Bio        string    `json:"bio,omitempty" db:"bio"`
	IsStudent  bool      `json:"isStudent" db:"is_student"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`

	User *User `json:"user,omitempty"` // relation, no db tag
}

// PlaceholderRollNumber generates the fallback roll number used when a user
// record exists without an explicit profile (seeded accounts, staff).
func PlaceholderRollNumber(userID int64) string {
	return fmt.Sprintf("STU%04d", userID)
}

// PlaceholderProfile builds the auto-created profile for a user, guaranteeing
// the one-to-one invariant even when registration did not supply fields.
func PlaceholderProfile(userID int64) *StudentProfile {
	return &StudentProfile{
		UserID:     userID,
		RollNumber: PlaceholderRollNumber(userID),
		Department: DefaultDepartment,
		Year:       DefaultYear,
		IsStudent:  true,
	}
}
