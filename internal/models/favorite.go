package models

import (
	"time"
)

// Favorite 收藏模型 - 用户收藏文章
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_article" json:"user_id"`
	ArticleID uint      `gorm:"not null;index;uniqueIndex:idx_user_article" json:"article_id"`
	CreatedAt time.Time `json:"created_at"`
}
