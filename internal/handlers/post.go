package handlers

import (
	"net/http"

	"kampusku/internal/db"
	"kampusku/internal/models"
	"kampusku/internal/services"
	"kampusku/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PostHandler struct{}

func NewPostHandler() *PostHandler {
	return &PostHandler{}
}

type createPostRequest struct {
	UserID  uint   `json:"user_id"`
	Content string `json:"content"`
}

type updatePostRequest struct {
	UserID uint `json:"user_id"`
	// Pointer so an absent content key keeps the old content
	Content *string `json:"content"`
}

type ownerRequest struct {
	UserID uint `json:"user_id"`
}

// loadCommentsByPost fetches the comments of every given post in one
// query and groups them by post id.
func loadCommentsByPost(postIDs []uint) (map[uint][]models.Comment, error) {
	grouped := make(map[uint][]models.Comment)
	if len(postIDs) == 0 {
		return grouped, nil
	}

	var comments []models.Comment
	if err := db.DB.Preload("User").Where("post_id IN ?", postIDs).Find(&comments).Error; err != nil {
		return nil, err
	}
	for _, com := range comments {
		grouped[com.PostID] = append(grouped[com.PostID], com)
	}
	return grouped, nil
}

// List returns every post newest-first, each with its nested comment forest.
func (h *PostHandler) List(c *gin.Context) {
	var posts []models.Post
	if err := db.DB.Preload("User").Order("created_at DESC, id DESC").Find(&posts).Error; err != nil {
		Error(c, http.StatusInternalServerError, "Server error loading posts")
		return
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}
	grouped, err := loadCommentsByPost(postIDs)
	if err != nil {
		Error(c, http.StatusInternalServerError, "Server error loading posts")
		return
	}

	out := make([]services.PostView, 0, len(posts))
	for _, post := range posts {
		view, err := services.SerializePost(post, grouped[post.ID])
		if err != nil {
			Error(c, http.StatusInternalServerError, "Server error loading posts")
			return
		}
		out = append(out, view)
	}

	c.JSON(http.StatusOK, out)
}

func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	var user models.User
	if err := db.DB.First(&user, req.UserID).Error; err != nil {
		Error(c, http.StatusNotFound, "User not found")
		return
	}

	post := models.Post{
		UserID:  user.ID,
		Content: req.Content,
	}
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&post).Error
	})
	if err != nil {
		Error(c, http.StatusInternalServerError, "Server error creating post")
		return
	}

	post.User = user
	view, err := services.SerializePost(post, nil)
	if err != nil {
		Error(c, http.StatusInternalServerError, "Server error creating post")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *PostHandler) Update(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var post models.Post
	if err := db.DB.Preload("User").First(&post, id).Error; err != nil {
		Error(c, http.StatusNotFound, "Post not found")
		return
	}

	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if post.UserID != req.UserID {
		Error(c, http.StatusForbidden, "Forbidden: cannot edit others' posts")
		return
	}

	if req.Content != nil {
		post.Content = *req.Content
	}
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Save(&post).Error
	})
	if err != nil {
		Error(c, http.StatusInternalServerError, "Server error updating post")
		return
	}

	// The comment forest is not re-serialized on update
	view, err := services.SerializePost(post, nil)
	if err != nil {
		Error(c, http.StatusInternalServerError, "Server error updating post")
		return
	}
	c.JSON(http.StatusOK, view)
}

// Delete removes a post and all of its comments, nested replies included,
// in one transaction.
func (h *PostHandler) Delete(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		Error(c, http.StatusNotFound, "Post not found")
		return
	}

	var req ownerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if post.UserID != req.UserID {
		Error(c, http.StatusForbidden, "Forbidden: cannot delete others' posts")
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		Error(c, http.StatusInternalServerError, "Server error deleting post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
