package models

import "time"

// Like represents a user's like on a blog. The (blog, user) pair is unique
// at the storage layer; likes are hard-deleted on unlike so the constraint
// always reflects live rows.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BlogID    uint      `gorm:"not null;uniqueIndex:idx_blog_user" json:"blog_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_blog_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Blog Blog `gorm:"foreignKey:BlogID" json:"blog,omitempty"`
}
