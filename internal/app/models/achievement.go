package models

import "time"

// Achievement defines an achievement record based on the 'achievements' table.
// A record becomes publicly visible only once IsApproved is set by the
// approval workflow; submission always starts it unapproved.
type Achievement struct {
	ID           int64            `json:"id" db:"id"`
	StudentID    int64            `json:"studentId" db:"student_id"`
	Name         string           `json:"name" db:"name"`
	Event        string           `json:"event" db:"event"`
	Prize        string           `json:"prize" db:"prize"`
	Competition  CompetitionLevel `json:"competition" db:"competition"`
	Image        string           `json:"image,omitempty" db:"image"` // storage-relative path of the upload
	ImageURL     string           `json:"imageUrl,omitempty" db:"image_url"`
	Description  string           `json:"description,omitempty" db:"description"`
	DateAchieved time.Time        `json:"dateAchieved" db:"date_achieved"`
	IsApproved   bool             `json:"isApproved" db:"is_approved"`
	CreatedAt    time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time        `json:"updatedAt" db:"updated_at"`

	Student *User `json:"student,omitempty"` // relation, no db tag
}

// ResolveImage picks the displayable image reference. The uploaded image wins
// when its file is still present in storage, otherwise the external URL, else
// empty. Both fields may be populated at once.
func (a *Achievement) ResolveImage(exists func(path string) bool) string {
	if a.Image != "" && exists != nil && exists(a.Image) {
		return a.Image
	}
	if a.ImageURL != "" {
		return a.ImageURL
	}
	return ""
}
