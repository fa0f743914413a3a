package db

import (
	"log"
	"os"
	"passlink/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=passlink port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")
}

// Migrate 建表，测试用例用 sqlite 连接时复用同一份迁移
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.User{},
		&models.Article{},
		&models.Tag{},
		&models.Comment{},
		&models.Password{},
		&models.PasswordVote{},
		&models.Favorite{},
		&models.Follow{},
	)
}
