package model

import "time"

// Movie is a watchlist entry owned by exactly one user. Optional fields are
// pointers so that "absent" and "zero" stay distinguishable across partial
// updates and full replaces.
type Movie struct {
	ID       uint     `json:"id" gorm:"primaryKey"`
	Title    string   `json:"title" gorm:"size:255;not null"`
	Director *string  `json:"director" gorm:"size:255"`
	Genre    *string  `json:"genre" gorm:"size:255;index"`
	Year     *int     `json:"year"`
	Rating   *float64 `json:"rating"`
	Watched  bool     `json:"watched" gorm:"not null;default:false"`
	// UserID is set from the authenticated caller at creation and is never
	// reassignable through any update path.
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
