package handlers

import (
	"net/http"
	"passlink/internal/db"
	"passlink/internal/models"
	"passlink/internal/services"
	"passlink/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type registerPayload struct {
	User struct {
		Username string `json:"username" binding:"required,min=2,max=64"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	} `json:"user" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		JSONError(c, http.StatusUnprocessableEntity, "invalid registration payload")
		return
	}

	hash, err := utils.HashPassword(payload.User.Password)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "internal error")
		return
	}

	user := models.User{
		Username: payload.User.Username,
		Email:    payload.User.Email,
		Password: hash,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		JSONError(c, http.StatusConflict, "username or email already registered")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.JSON(http.StatusOK, gin.H{"user": services.NewProfileView(&user, nil)})
}

type loginPayload struct {
	User struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	} `json:"user" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		JSONError(c, http.StatusUnprocessableEntity, "invalid login payload")
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", payload.User.Email).First(&user).Error; err != nil {
		JSONError(c, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if !utils.CheckPasswordHash(payload.User.Password, user.Password) {
		JSONError(c, http.StatusUnauthorized, "invalid email or password")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.JSON(http.StatusOK, gin.H{"user": services.NewProfileView(&user, nil)})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Status(http.StatusNoContent)
}
