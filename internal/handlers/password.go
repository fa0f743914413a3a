package handlers

import (
	"net/http"
	"strconv"

	"passlink/internal/db"
	"passlink/internal/middleware"
	"passlink/internal/models"
	"passlink/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PasswordHandler struct{}

func NewPasswordHandler() *PasswordHandler {
	return &PasswordHandler{}
}

// List 文章的口令条目，按评分降序
func (h *PasswordHandler) List(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	article, ok := loadArticle(c)
	if !ok {
		return
	}

	passwords, err := services.ListPasswords(article.ID)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to list passwords")
		return
	}

	c.JSON(http.StatusOK, gin.H{"passwords": services.NewPasswordViews(passwords, user)})
}

type passwordPayload struct {
	Password struct {
		Value string `json:"value" binding:"required"`
	} `json:"password" binding:"required"`
}

func (h *PasswordHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	article, ok := loadArticle(c)
	if !ok {
		return
	}

	var payload passwordPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		JSONError(c, http.StatusUnprocessableEntity, "invalid password payload")
		return
	}

	password := models.Password{
		ArticleID: article.ID,
		UserID:    user.ID,
		Value:     payload.Password.Value,
	}
	if err := db.DB.Create(&password).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to create password")
		return
	}

	password.User = *user
	c.JSON(http.StatusOK, gin.H{"password": services.NewPasswordView(&password, user)})
}

// Delete 仅条目作者可删；条目与它的投票在同一事务内一起删掉
func (h *PasswordHandler) Delete(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	article, ok := loadArticle(c)
	if !ok {
		return
	}

	password, ok := h.loadPassword(c, article)
	if !ok {
		return
	}

	if password.UserID != user.ID {
		JSONError(c, http.StatusForbidden, "only the author may delete this password")
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("password_id = ?", password.ID).Delete(&models.PasswordVote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Password{}, password.ID).Error
	})
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to delete password")
		return
	}
	c.Status(http.StatusNoContent)
}

// Approve 赞成条目，返回文章（与参照接口一致）
func (h *PasswordHandler) Approve(c *gin.Context) {
	h.vote(c, services.Approve)
}

// Unapprove 撤销赞成
func (h *PasswordHandler) Unapprove(c *gin.Context) {
	h.vote(c, services.Unapprove)
}

// Disapprove 反对条目
func (h *PasswordHandler) Disapprove(c *gin.Context) {
	h.vote(c, services.Disapprove)
}

// Undisapprove 撤销反对
func (h *PasswordHandler) Undisapprove(c *gin.Context) {
	h.vote(c, services.Undisapprove)
}

func (h *PasswordHandler) vote(c *gin.Context, transition func(userID, passwordID uint) error) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	article, ok := loadArticle(c)
	if !ok {
		return
	}

	password, ok := h.loadPassword(c, article)
	if !ok {
		return
	}

	if err := transition(user.ID, password.ID); err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to record vote")
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": services.NewArticleView(article, user)})
}

func (h *PasswordHandler) loadPassword(c *gin.Context, article *models.Article) (*models.Password, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		JSONError(c, http.StatusUnprocessableEntity, "invalid password id")
		return nil, false
	}

	var password models.Password
	if err := db.DB.Where("id = ? AND article_id = ?", id, article.ID).First(&password).Error; err != nil {
		JSONError(c, http.StatusNotFound, "password not found")
		return nil, false
	}
	return &password, true
}
