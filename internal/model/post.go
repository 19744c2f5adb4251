package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a single feed entry. Username references a User by name only.
type Post struct {
	ID        string    `json:"id" gorm:"type:char(36);primaryKey"`
	Username  string    `json:"username" gorm:"size:255;not null;index"`
	PostImage string    `json:"postImage" gorm:"column:post_image;size:1024;not null"`
	Caption   string    `json:"caption" gorm:"type:text;not null"`
	Likes     int       `json:"likes" gorm:"not null;default:0"`
	Timestamp time.Time `json:"timestamp" gorm:"not null;index"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
