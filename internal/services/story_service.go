package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/yukihira/project-management-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrDescriptionRequired  = errors.New("project description is required")
	ErrStoriesNotConfigured = errors.New("story generation is not configured")
)

// StoryService turns a free-text project description into user stories
// through an OpenAI-compatible chat endpoint. The generation itself is an
// opaque external call; this service only validates input, relays errors
// and optionally persists the result.
type StoryService struct {
	client      *openai.Client
	model       string
	projectRepo repository.ProjectRepository
}

// NewStoryService creates a new StoryService. A non-empty baseURL points
// the client at an alternative OpenAI-compatible provider.
func NewStoryService(apiKey, baseURL, model string, projectRepo repository.ProjectRepository) *StoryService {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &StoryService{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		projectRepo: projectRepo,
	}
}

// GenerateStories asks the model for user stories, one per line. When a
// project id is given the stories are also saved against that project.
func (s *StoryService) GenerateStories(ctx context.Context, description string, projectID *uint64) ([]string, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrDescriptionRequired
	}
	if s == nil || s.client == nil {
		return nil, ErrStoriesNotConfigured
	}

	prompt := fmt.Sprintf(`Generate user stories from this project description:
%s

Format each story as: As a [role], I want to [action], so that [benefit].
Return only the user stories, one per line.`, description)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.7,
			MaxTokens:   500,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("story generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("story generation returned no choices")
	}

	var stories []string
	for _, line := range strings.Split(resp.Choices[0].Message.Content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			stories = append(stories, line)
		}
	}

	if projectID != nil {
		if _, err := s.projectRepo.FindByID(*projectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, fmt.Errorf("failed to find project: %w", err)
		}
		if err := s.projectRepo.SaveStories(*projectID, stories); err != nil {
			return nil, fmt.Errorf("failed to save stories: %w", err)
		}
	}

	return stories, nil
}
