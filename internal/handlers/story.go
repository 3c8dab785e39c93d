package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukihira/project-management-api/internal/errors"
	"github.com/yukihira/project-management-api/internal/services"
)

// StoryHandler exposes the user-story generator.
type StoryHandler struct {
	storyService *services.StoryService
}

// NewStoryHandler creates a new StoryHandler. storyService may be nil
// when no API key is configured.
func NewStoryHandler(storyService *services.StoryService) *StoryHandler {
	return &StoryHandler{
		storyService: storyService,
	}
}

// GenerateStories turns a project description into user stories and
// optionally stores them against a project.
func (h *StoryHandler) GenerateStories(c *gin.Context) {
	type GenerateRequest struct {
		ProjectDescription string  `json:"projectDescription"`
		ProjectID          *uint64 `json:"projectId"`
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if h.storyService == nil {
		apierrors.UpstreamError(c, services.ErrStoriesNotConfigured.Error())
		return
	}

	stories, err := h.storyService.GenerateStories(c.Request.Context(), req.ProjectDescription, req.ProjectID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDescriptionRequired):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrProjectNotFound):
			apierrors.NotFound(c, err.Error())
		default:
			// provider failures pass through as upstream errors
			apierrors.UpstreamError(c, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, stories)
}
