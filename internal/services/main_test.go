package services

import (
	"fmt"
	"testing"

	"passlink/internal/db"
	"passlink/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 每个测试一个独立的内存库，挂到全局 db.DB 上
func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	db.DB = conn
}

func createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return &user
}

func createArticle(t *testing.T, author *models.User, slug string) *models.Article {
	t.Helper()
	article := models.Article{
		Slug:   slug,
		UserID: author.ID,
		Title:  slug,
	}
	if err := db.DB.Create(&article).Error; err != nil {
		t.Fatalf("failed to create article %s: %v", slug, err)
	}
	return &article
}

func createPassword(t *testing.T, article *models.Article, author *models.User, value string) *models.Password {
	t.Helper()
	password := models.Password{
		ArticleID: article.ID,
		UserID:    author.ID,
		Value:     value,
	}
	if err := db.DB.Create(&password).Error; err != nil {
		t.Fatalf("failed to create password %s: %v", value, err)
	}
	return &password
}

func favoritesCountOf(t *testing.T, articleID uint) int {
	t.Helper()
	var article models.Article
	if err := db.DB.First(&article, articleID).Error; err != nil {
		t.Fatalf("failed to reload article %d: %v", articleID, err)
	}
	return article.FavoritesCount
}
