package handlers

import (
	"errors"
	"net/http"
	"passlink/internal/db"
	"passlink/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// JSONError 统一的错误响应格式
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// loadArticle 按路径上的 slug 预加载文章，找不到时直接回 404 终止请求
func loadArticle(c *gin.Context) (*models.Article, bool) {
	var article models.Article
	err := db.DB.Preload("User").Preload("Tags").
		Where("slug = ?", c.Param("slug")).
		First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			JSONError(c, http.StatusNotFound, "article not found")
		} else {
			JSONError(c, http.StatusInternalServerError, "internal error")
		}
		return nil, false
	}
	return &article, true
}

// reloadArticle 重新读取文章，拿到重算后的派生字段
func reloadArticle(articleID uint) (*models.Article, error) {
	var article models.Article
	err := db.DB.Preload("User").Preload("Tags").First(&article, articleID).Error
	return &article, err
}
