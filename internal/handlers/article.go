package handlers

import (
	"net/http"
	"passlink/internal/db"
	"passlink/internal/middleware"
	"passlink/internal/models"
	"passlink/internal/services"
	"passlink/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ArticleHandler struct{}

func NewArticleHandler() *ArticleHandler {
	return &ArticleHandler{}
}

// List 文章列表，过滤条件全部可选且可组合
func (h *ArticleHandler) List(c *gin.Context) {
	limit, offset, err := services.ParsePagination(c.Query("limit"), c.Query("offset"))
	if err != nil {
		JSONError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	filter := services.ArticleFilter{
		Author:    c.Query("author"),
		Favorited: c.Query("favorited"),
		Tag:       c.Query("tag"),
	}
	if bbox := c.Query("bbox"); bbox != "" {
		box, err := services.ParseBBox(bbox)
		if err != nil {
			JSONError(c, http.StatusUnprocessableEntity, err.Error())
			return
		}
		filter.BBox = &box
	}

	articles, total, err := services.ListArticles(filter, limit, offset)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to list articles")
		return
	}

	viewer := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"articles":      services.NewArticleViews(articles, viewer),
		"articlesCount": total,
	})
}

// Feed 关注流，仅登录用户
func (h *ArticleHandler) Feed(c *gin.Context) {
	user := middleware.CurrentUser(c)

	limit, offset, err := services.ParsePagination(c.Query("limit"), c.Query("offset"))
	if err != nil {
		JSONError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	articles, total, err := services.ListFeed(user.ID, limit, offset)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to list feed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles":      services.NewArticleViews(articles, user),
		"articlesCount": total,
	})
}

type articlePayload struct {
	Article struct {
		Title       string   `json:"title" binding:"required"`
		Description string   `json:"description"`
		Body        string   `json:"body"`
		TagList     []string `json:"tagList"`
		Longitude   float64  `json:"longitude"`
		Latitude    float64  `json:"latitude"`
	} `json:"article" binding:"required"`
}

func (h *ArticleHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var payload articlePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		JSONError(c, http.StatusUnprocessableEntity, "invalid article payload")
		return
	}

	article := models.Article{
		Slug:        utils.Slugify(payload.Article.Title),
		UserID:      user.ID,
		Title:       payload.Article.Title,
		Description: payload.Article.Description,
		Body:        payload.Article.Body,
		Longitude:   payload.Article.Longitude,
		Latitude:    payload.Article.Latitude,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&article).Error; err != nil {
			return err
		}
		return replaceTags(tx, &article, payload.Article.TagList)
	})
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to create article")
		return
	}

	article.User = *user
	c.JSON(http.StatusOK, gin.H{"article": services.NewArticleView(&article, user)})
}

func (h *ArticleHandler) Get(c *gin.Context) {
	article, ok := loadArticle(c)
	if !ok {
		return
	}
	viewer := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"article": services.NewArticleView(article, viewer)})
}

// articleUpdatePayload 部分更新：指针字段区分"缺省"与"置空"，只覆盖出现的字段
type articleUpdatePayload struct {
	Article struct {
		Title       *string   `json:"title"`
		Description *string   `json:"description"`
		Body        *string   `json:"body"`
		TagList     *[]string `json:"tagList"`
		Longitude   *float64  `json:"longitude"`
		Latitude    *float64  `json:"latitude"`
	} `json:"article" binding:"required"`
}

func (h *ArticleHandler) Update(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	article, ok := loadArticle(c)
	if !ok {
		return
	}

	// 归属校验先行，不再触碰存储
	if article.UserID != user.ID {
		JSONError(c, http.StatusForbidden, "only the author may update this article")
		return
	}

	var payload articleUpdatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		JSONError(c, http.StatusUnprocessableEntity, "invalid article payload")
		return
	}

	if payload.Article.Title != nil {
		article.Title = *payload.Article.Title
	}
	if payload.Article.Description != nil {
		article.Description = *payload.Article.Description
	}
	if payload.Article.Body != nil {
		article.Body = *payload.Article.Body
	}
	if payload.Article.Longitude != nil {
		article.Longitude = *payload.Article.Longitude
	}
	if payload.Article.Latitude != nil {
		article.Latitude = *payload.Article.Latitude
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(article).Error; err != nil {
			return err
		}
		if payload.Article.TagList != nil {
			return replaceTags(tx, article, *payload.Article.TagList)
		}
		return nil
	})
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to update article")
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": services.NewArticleView(article, user)})
}

// Delete 删除文章及其全部子记录，一个事务内完成
func (h *ArticleHandler) Delete(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	article, ok := loadArticle(c)
	if !ok {
		return
	}

	if article.UserID != user.ID {
		JSONError(c, http.StatusForbidden, "only the author may delete this article")
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		passwordIDs := tx.Model(&models.Password{}).Select("id").Where("article_id = ?", article.ID)
		if err := tx.Where("password_id IN (?)", passwordIDs).Delete(&models.PasswordVote{}).Error; err != nil {
			return err
		}
		for _, child := range []interface{}{
			&models.Password{}, &models.Comment{}, &models.Favorite{}, &models.Tag{},
		} {
			if err := tx.Where("article_id = ?", article.ID).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Article{}, article.ID).Error
	})
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to delete article")
		return
	}

	c.Status(http.StatusNoContent)
}

// Favorite 收藏文章并返回计数已刷新的文章
func (h *ArticleHandler) Favorite(c *gin.Context) {
	h.setFavorite(c, true)
}

// Unfavorite 取消收藏
func (h *ArticleHandler) Unfavorite(c *gin.Context) {
	h.setFavorite(c, false)
}

func (h *ArticleHandler) setFavorite(c *gin.Context, favorite bool) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	article, ok := loadArticle(c)
	if !ok {
		return
	}

	var err error
	if favorite {
		err = services.Favorite(user.ID, article.ID)
	} else {
		err = services.Unfavorite(user.ID, article.ID)
	}
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to update favorite")
		return
	}

	article, err = reloadArticle(article.ID)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": services.NewArticleView(article, user)})
}

// replaceTags 整体替换文章标签
func replaceTags(tx *gorm.DB, article *models.Article, names []string) error {
	if err := tx.Where("article_id = ?", article.ID).Delete(&models.Tag{}).Error; err != nil {
		return err
	}
	article.Tags = article.Tags[:0]
	seen := make(map[string]bool)
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		tag := models.Tag{ArticleID: article.ID, Name: name}
		if err := tx.Create(&tag).Error; err != nil {
			return err
		}
		article.Tags = append(article.Tags, tag)
	}
	return nil
}
