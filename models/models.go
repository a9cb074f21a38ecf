package models

import "time"

// Rows do not embed gorm.Model: deletes are permanent, not soft.

type User struct {
	ID         uint   `gorm:"primary_key"`
	Username   string `gorm:"unique_index;not null"`
	Email      string
	Password   string
	DateJoined time.Time
}

type Group struct {
	ID          uint   `gorm:"primary_key"`
	Title       string `gorm:"size:200;not null"`
	Slug        string `gorm:"unique_index;not null"`
	Description string `gorm:"type:text"`
}

type Post struct {
	ID       uint   `gorm:"primary_key"`
	Text     string `gorm:"type:text;not null"`
	PubDate  time.Time
	Image    string
	AuthorID uint  `gorm:"not null;index"`
	Author   User  `gorm:"foreignkey:AuthorID"`
	GroupID  *uint `gorm:"index"`
}

// OwnerID reports the author for object-level permission checks.
func (p *Post) OwnerID() uint { return p.AuthorID }

type Comment struct {
	ID       uint   `gorm:"primary_key"`
	Text     string `gorm:"type:text;not null"`
	Created  time.Time
	AuthorID uint `gorm:"not null;index"`
	Author   User `gorm:"foreignkey:AuthorID"`
	PostID   uint `gorm:"not null;index"`
}

func (c *Comment) OwnerID() uint { return c.AuthorID }

type Follow struct {
	ID          uint `gorm:"primary_key"`
	UserID      uint `gorm:"not null;unique_index:idx_follow_user_following"`
	User        User `gorm:"foreignkey:UserID"`
	FollowingID uint `gorm:"not null;unique_index:idx_follow_user_following"`
	Following   User `gorm:"foreignkey:FollowingID"`
}
