package handlers

import (
	"net/http"

	"passlink/internal/db"
	"passlink/internal/middleware"
	"passlink/internal/models"
	"passlink/internal/services"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct{}

func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	target, ok := h.loadUser(c)
	if !ok {
		return
	}
	viewer := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"profile": services.NewProfileView(target, viewer)})
}

// Follow 关注用户（幂等）
func (h *ProfileHandler) Follow(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	target, ok := h.loadUser(c)
	if !ok {
		return
	}

	if err := services.Follow(user.ID, target.ID); err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to follow user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": services.NewProfileView(target, user)})
}

// Unfollow 取消关注（幂等）
func (h *ProfileHandler) Unfollow(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	target, ok := h.loadUser(c)
	if !ok {
		return
	}

	if err := services.Unfollow(user.ID, target.ID); err != nil {
		JSONError(c, http.StatusInternalServerError, "failed to unfollow user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": services.NewProfileView(target, user)})
}

func (h *ProfileHandler) loadUser(c *gin.Context) (*models.User, bool) {
	var user models.User
	if err := db.DB.Where("username = ?", c.Param("username")).First(&user).Error; err != nil {
		JSONError(c, http.StatusNotFound, "user not found")
		return nil, false
	}
	return &user, true
}
