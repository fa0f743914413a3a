package handlers

import (
	"net/http"
	"strconv"

	"passlink/internal/db"
	"passlink/internal/middleware"
	"passlink/internal/models"
	"passlink/internal/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

func (h *CommentHandler) List(c *gin.Context) {
	article, ok := loadArticle(c)
	if !ok {
		return
	}

	comments, err := services.ListComments(article.ID)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to list comments")
		return
	}

	viewer := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"comments": services.NewCommentViews(comments, viewer)})
}

type commentPayload struct {
	Comment struct {
		Body string `json:"body" binding:"required"`
	} `json:"comment" binding:"required"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	article, ok := loadArticle(c)
	if !ok {
		return
	}

	var payload commentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		JSONError(c, http.StatusUnprocessableEntity, "invalid comment payload")
		return
	}

	comment := models.Comment{
		ArticleID: article.ID,
		UserID:    user.ID,
		Body:      payload.Comment.Body,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to create comment")
		return
	}

	comment.User = *user
	c.JSON(http.StatusOK, gin.H{"comment": services.NewCommentView(&comment, user)})
}

// Delete 仅评论作者可删；删除就是删一行，没有父文档要改写
func (h *CommentHandler) Delete(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	article, ok := loadArticle(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		JSONError(c, http.StatusUnprocessableEntity, "invalid comment id")
		return
	}

	var comment models.Comment
	if err := db.DB.Where("id = ? AND article_id = ?", id, article.ID).First(&comment).Error; err != nil {
		JSONError(c, http.StatusNotFound, "comment not found")
		return
	}

	if comment.UserID != user.ID {
		JSONError(c, http.StatusForbidden, "only the author may delete this comment")
		return
	}

	if err := db.DB.Delete(&comment).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to delete comment")
		return
	}
	c.Status(http.StatusNoContent)
}
