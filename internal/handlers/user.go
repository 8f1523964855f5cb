package handlers

import (
	"net/http"
	"strings"

	"kampusku/internal/db"
	"kampusku/internal/models"
	"kampusku/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

type updateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (h *UserHandler) Get(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		Error(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, userJSON(&user))
}

// Update changes a user's profile fields. Both must stay unique across
// all other users.
func (h *UserHandler) Update(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		Error(c, http.StatusNotFound, "User not found")
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" {
		Error(c, http.StatusBadRequest, "username and email are required")
		return
	}

	var dup models.User
	if err := db.DB.Where("id <> ?", user.ID).
		Where("username = ? OR email = ?", username, email).
		First(&dup).Error; err == nil {
		field := "username"
		if dup.Email == email {
			field = "email"
		}
		Error(c, http.StatusBadRequest, field+" already in use")
		return
	}

	user.Username = username
	user.Email = email
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Save(&user).Error
	})
	if err != nil {
		Error(c, http.StatusInternalServerError, "Server error during update")
		return
	}

	c.JSON(http.StatusOK, userJSON(&user))
}
