package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"creatorhub/internal/models"
)

type createPostRequest struct {
	Type    models.PostType `json:"type" binding:"required,oneof=image video text"`
	Title   string          `json:"title"`
	Content string          `json:"content"`
	URL     string          `json:"url"`
}

func (h HandlerSet) Feed(c *gin.Context) {
	posts := h.posts.List()
	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"count": len(posts),
	})
}

func (h HandlerSet) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, ok := h.posts.Create(c.Request.Context(), req.Type, req.Title, req.Content, req.URL)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "title_and_content_required"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// DeletePost is idempotent: deleting an unknown id still answers 204,
// matching the repository's no-op contract.
func (h HandlerSet) DeletePost(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id required"})
		return
	}

	h.posts.Delete(c.Request.Context(), id)
	c.Status(http.StatusNoContent)
}
