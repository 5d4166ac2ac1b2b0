package model

import "time"

// User represents a registered account. The password is stored only as a
// bcrypt hash and never serialized outward.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations. Deleting a user cascades to their movies.
	Movies []Movie `json:"movies,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
