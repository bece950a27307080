package models

import (
	"time"
)

// Commentary is a comment on a post. Reference is empty for a top-level
// commentary; for an answer it holds the Cid of the top-level commentary it
// replies to. Answers never nest deeper than one level.
//
// Post holds the owning post's slug, not its id. Only Body may change after
// creation, and only at the author's hand.
type Commentary struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Cid       string    `gorm:"uniqueIndex;size:36;not null" json:"cid"`
	Author    string    `gorm:"index;not null" json:"author"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Post      string    `gorm:"index;not null" json:"post"`
	Reference string    `gorm:"index;default:''" json:"reference"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAnswer reports whether the commentary is a reply to another one.
func (c *Commentary) IsAnswer() bool {
	return c.Reference != ""
}
