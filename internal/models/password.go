package models

import (
	"time"
)

// Password 文章下的候选口令条目，由社区投票评审。
// Rating 永远是 password_votes 的派生值，不落库。
type Password struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArticleID uint      `gorm:"not null;index" json:"article_id"`
	Article   Article   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"article"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`

	// 非数据库字段，用于查询时填充
	Rating int `gorm:"-" json:"rating"`
}
