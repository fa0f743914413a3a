package models

import (
	"time"
)

// Follow 关注关系：UserID 关注 TargetID
type Follow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_target" json:"user_id"`
	TargetID  uint      `gorm:"not null;index;uniqueIndex:idx_user_target" json:"target_id"`
	CreatedAt time.Time `json:"created_at"`
}
