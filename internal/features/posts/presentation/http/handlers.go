package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GintasS/social-media-post-generator/internal/features/posts/application"
	"github.com/GintasS/social-media-post-generator/internal/features/posts/domain"
)

// PostsHandler holds the generation service.
type PostsHandler struct {
	generationService application.GenerationService
	now               func() time.Time
}

// NewPostsHandler creates a new PostsHandler.
func NewPostsHandler(generationService application.GenerationService) *PostsHandler {
	return &PostsHandler{generationService: generationService, now: time.Now}
}

// GeneratePostsHandler generates posts for a product. Generation failures are
// reported in-band through isError; the status is 200 whenever the body is valid.
func (h *PostsHandler) GeneratePostsHandler(c *gin.Context) {
	body := domain.NewGeneratePostsBody()
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.generationService.Generate(c.Request.Context(), body.GenerationRequest())
	posts := result.Posts
	if posts == nil {
		posts = []json.RawMessage{}
	}

	c.JSON(http.StatusOK, domain.GeneratePostsResponse{
		Posts:       posts,
		GeneratedAt: h.now(),
		Count:       len(posts),
		IsError:     result.IsError(),
	})
}
