package models

import (
	"time"
)

type Article struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Slug        string  `gorm:"uniqueIndex;size:128;not null" json:"slug"` // immutable after creation
	UserID      uint    `gorm:"not null;index" json:"user_id"`
	User        User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Title       string  `gorm:"not null" json:"title"`
	Description string  `json:"description"`
	Body        string  `gorm:"type:text" json:"body"`
	Longitude   float64 `json:"longitude"`
	Latitude    float64 `json:"latitude"`
	// 派生字段：始终由 favorites 表重算，绝不递增维护
	FavoritesCount int       `gorm:"default:0" json:"favorites_count"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Tags []Tag `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"tags"`
}

// TagList 返回文章标签名列表
func (a *Article) TagList() []string {
	names := make([]string, len(a.Tags))
	for i, t := range a.Tags {
		names[i] = t.Name
	}
	return names
}
