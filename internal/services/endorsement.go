package services

import (
	"time"

	"passlink/internal/db"
	"passlink/internal/models"

	"gorm.io/gorm/clause"
)

// 每个 (user, password) 对最多一行投票记录，value=1 赞成、value=-1 反对、
// 无行即中立。赞成/反对是同一条 upsert 语句，"写入新态 + 清掉对立态"
// 原子提交，唯一索引兜底，任何时刻同一用户不会同时出现在两边。

// Approve 赞成条目；若此前投过反对票，同一语句内被覆盖
func Approve(userID, passwordID uint) error {
	return castVote(userID, passwordID, 1)
}

// Disapprove 反对条目；若此前投过赞成票，同一语句内被覆盖
func Disapprove(userID, passwordID uint) error {
	return castVote(userID, passwordID, -1)
}

// Unapprove 只撤销赞成票，反对票不受影响（幂等）
func Unapprove(userID, passwordID uint) error {
	return clearVote(userID, passwordID, 1)
}

// Undisapprove 只撤销反对票（幂等）
func Undisapprove(userID, passwordID uint) error {
	return clearVote(userID, passwordID, -1)
}

func castVote(userID, passwordID uint, value int) error {
	vote := models.PasswordVote{UserID: userID, PasswordID: passwordID, Value: value}
	return db.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "password_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": time.Now(),
		}),
	}).Create(&vote).Error
}

func clearVote(userID, passwordID uint, value int) error {
	return db.DB.Where("user_id = ? AND password_id = ? AND value = ?", userID, passwordID, value).
		Delete(&models.PasswordVote{}).Error
}

// Rating 条目评分 = 赞成数 - 反对数，读取时派生
func Rating(passwordID uint) (int, error) {
	var rating int
	err := db.DB.Model(&models.PasswordVote{}).
		Where("password_id = ?", passwordID).
		Select("COALESCE(SUM(value), 0)").
		Scan(&rating).Error
	return rating, err
}

// VoteState 返回用户对条目的投票状态：1 赞成、-1 反对、0 中立
func VoteState(userID, passwordID uint) int {
	var vote models.PasswordVote
	if err := db.DB.Where("user_id = ? AND password_id = ?", userID, passwordID).
		First(&vote).Error; err != nil {
		return 0
	}
	return vote.Value
}

// Approvals 赞成者用户 ID 集合（派生投影，供需要枚举两个集合的消费方使用）
func Approvals(passwordID uint) ([]uint, error) {
	return voterIDs(passwordID, 1)
}

// Disapprovals 反对者用户 ID 集合
func Disapprovals(passwordID uint) ([]uint, error) {
	return voterIDs(passwordID, -1)
}

func voterIDs(passwordID uint, value int) ([]uint, error) {
	var ids []uint
	err := db.DB.Model(&models.PasswordVote{}).
		Where("password_id = ? AND value = ?", passwordID, value).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}
