package models

import (
	"time"
)

// Post is linked to its Category by display name and to its author by
// username. Both are plain strings rather than foreign keys; commentaries in
// turn point at posts by slug. The boundary layer is responsible for keeping
// these keys resolvable.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description string    `json:"description"`
	Category    string    `gorm:"index;not null" json:"category"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Author      string    `gorm:"index;not null" json:"author"`
	CreatedAt   time.Time `json:"created_at"`
}
