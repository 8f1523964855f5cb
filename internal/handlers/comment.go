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

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

type createCommentRequest struct {
	UserID   uint   `json:"user_id"`
	Content  string `json:"content"`
	ParentID *uint  `json:"parent_id"`
}

// List returns the comment forest of a post: top-level comments as roots,
// replies nested, every level in chronological order.
func (h *CommentHandler) List(c *gin.Context) {
	postID := utils.StringToUint(c.Param("id"))

	var comments []models.Comment
	if err := db.DB.Preload("User").Where("post_id = ?", postID).Find(&comments).Error; err != nil {
		Error(c, http.StatusInternalServerError, "Server error loading comments")
		return
	}

	forest, err := services.BuildCommentForest(comments)
	if err != nil {
		Error(c, http.StatusInternalServerError, "Server error loading comments")
		return
	}

	c.JSON(http.StatusOK, forest)
}

// Create adds a comment to a post, optionally as a reply. A parent must
// already exist and belong to the same post, which keeps the reply graph
// acyclic and single-post by construction.
func (h *CommentHandler) Create(c *gin.Context) {
	postID := utils.StringToUint(c.Param("id"))

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	var user models.User
	if err := db.DB.First(&user, req.UserID).Error; err != nil {
		Error(c, http.StatusNotFound, "User not found")
		return
	}

	if req.ParentID != nil {
		var parent models.Comment
		if err := db.DB.First(&parent, *req.ParentID).Error; err != nil {
			Error(c, http.StatusBadRequest, "Parent comment not found")
			return
		}
		if parent.PostID != postID {
			Error(c, http.StatusBadRequest, "Parent comment belongs to a different post")
			return
		}
	}

	comment := models.Comment{
		PostID:   postID,
		UserID:   user.ID,
		ParentID: req.ParentID,
		Content:  req.Content,
	}
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&comment).Error
	})
	if err != nil {
		Error(c, http.StatusInternalServerError, "Server error creating comment")
		return
	}

	c.JSON(http.StatusOK, services.CommentView{
		ID:        comment.ID,
		Username:  user.Username,
		Content:   comment.Content,
		CreatedAt: services.FormatTime(comment.CreatedAt),
		Replies:   []services.CommentView{},
	})
}

// Delete removes a comment and its entire reply subtree in one
// transaction. Sibling threads are untouched.
func (h *CommentHandler) Delete(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var comment models.Comment
	if err := db.DB.First(&comment, id).Error; err != nil {
		Error(c, http.StatusNotFound, "Comment not found")
		return
	}

	var req ownerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if comment.UserID != req.UserID {
		Error(c, http.StatusForbidden, "Forbidden: cannot delete others' comments")
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var siblings []models.Comment
		if err := tx.Where("post_id = ?", comment.PostID).Find(&siblings).Error; err != nil {
			return err
		}
		ids := services.CollectSubtreeIDs(siblings, comment.ID)
		return tx.Where("id IN ?", ids).Delete(&models.Comment{}).Error
	})
	if err != nil {
		Error(c, http.StatusInternalServerError, "Server error deleting comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
