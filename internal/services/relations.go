package services

import (
	"passlink/internal/db"
	"passlink/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Favorite 收藏文章（幂等）。插入与收藏数重算在同一事务内提交，
// 调用方看到结果时计数一定是新的。
func Favorite(userID, articleID uint) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		fav := models.Favorite{UserID: userID, ArticleID: articleID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&fav).Error; err != nil {
			return err
		}
		return refreshFavoritesCount(tx, articleID)
	})
}

// Unfavorite 取消收藏（幂等），未收藏时不报错
func Unfavorite(userID, articleID uint) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND article_id = ?", userID, articleID).
			Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		return refreshFavoritesCount(tx, articleID)
	})
}

// refreshFavoritesCount 从 favorites 表整体重算收藏数，单条 UPDATE 落库。
// 不做增减计数，重试或乱序到达也不会漂移。
func refreshFavoritesCount(tx *gorm.DB, articleID uint) error {
	count := tx.Model(&models.Favorite{}).
		Select("COUNT(*)").
		Where("article_id = ?", articleID)
	return tx.Model(&models.Article{}).
		Where("id = ?", articleID).
		UpdateColumn("favorites_count", count).Error
}

// Follow 关注作者（幂等）
func Follow(userID, targetID uint) error {
	follow := models.Follow{UserID: userID, TargetID: targetID}
	return db.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow).Error
}

// Unfollow 取消关注（幂等）
func Unfollow(userID, targetID uint) error {
	return db.DB.Where("user_id = ? AND target_id = ?", userID, targetID).
		Delete(&models.Follow{}).Error
}

// IsFavorited 检查用户是否已收藏某文章
func IsFavorited(userID, articleID uint) bool {
	var fav models.Favorite
	return db.DB.Where("user_id = ? AND article_id = ?", userID, articleID).
		First(&fav).Error == nil
}

// IsFollowing 检查用户是否已关注目标用户
func IsFollowing(userID, targetID uint) bool {
	var follow models.Follow
	return db.DB.Where("user_id = ? AND target_id = ?", userID, targetID).
		First(&follow).Error == nil
}
