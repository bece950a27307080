package models

// DefaultPhoto is the avatar assigned to accounts that never uploaded one.
const DefaultPhoto = "defaultUser.png"

// Profile holds per-account presentation settings, created together with the
// User at signup.
type Profile struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	UserID        uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	IsEmailPublic bool   `gorm:"default:true" json:"is_email_public"`
	Photo         string `gorm:"default:defaultUser.png" json:"photo"`
}
