package handlers

import (
	"net/http"
	"strings"

	"kampusku/internal/db"
	"kampusku/internal/models"
	"kampusku/internal/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func userJSON(u *models.User) gin.H {
	return gin.H{"id": u.ID, "username": u.Username, "email": u.Email}
}

// Register creates a new user. Username and email must be unused.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	password := strings.TrimSpace(req.Password)
	if username == "" || email == "" || password == "" {
		Error(c, http.StatusBadRequest, "username, email, and password are required")
		return
	}

	var existing models.User
	if err := db.DB.Where("username = ?", username).First(&existing).Error; err == nil {
		Error(c, http.StatusBadRequest, "Username already taken")
		return
	}
	if err := db.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		Error(c, http.StatusBadRequest, "Email already registered")
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		Error(c, http.StatusInternalServerError, "Server error during registration")
		return
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: hash,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		// Unique indexes are the backstop for concurrent registrations
		Error(c, http.StatusInternalServerError, "Server error during registration")
		return
	}

	c.JSON(http.StatusOK, userJSON(&user))
}

// Login verifies credentials. Unknown username and wrong password produce
// the same response so user existence is never revealed.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	if username == "" || password == "" {
		Error(c, http.StatusBadRequest, "username and password are required")
		return
	}

	var user models.User
	if err := db.DB.Where("username = ?", username).First(&user).Error; err != nil {
		Error(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		Error(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	c.JSON(http.StatusOK, userJSON(&user))
}
