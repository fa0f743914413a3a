package models

import (
	"time"
)

// PasswordVote 一行即一个 (user, password) 对的完整投票状态：
// value = 1 赞成，value = -1 反对，没有行则为中立。
// (user_id, password_id) 唯一索引保证同一用户不可能同时赞成又反对。
type PasswordVote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index;uniqueIndex:idx_user_password" json:"user_id"`
	PasswordID uint      `gorm:"not null;index;uniqueIndex:idx_user_password" json:"password_id"`
	Value      int       `gorm:"not null" json:"value"` // 1 or -1
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
