package models

import (
	"time"
)

// Comment 挂在文章下的评论。通过 ArticleID 独立索引到父文章，
// 文章本身不维护评论列表，删除评论无需改写文章。
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArticleID uint      `gorm:"not null;index" json:"article_id"`
	Article   Article   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"article"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
