package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"synergysphere/internal/domain"
	"synergysphere/internal/models"
	"synergysphere/internal/repository"
)

type MessageService struct {
	messages *repository.MessageRepository
	projects *repository.ProjectRepository
	fanout   *FanOut
}

func NewMessageService(messages *repository.MessageRepository, projects *repository.ProjectRepository, fanout *FanOut) *MessageService {
	return &MessageService{messages: messages, projects: projects, fanout: fanout}
}

func (s *MessageService) PostMessage(ctx context.Context, id domain.Identity, projectID uint, text string, replyTo *uint) (*models.ProjectMessage, error) {
	if _, err := requireMember(ctx, s.projects, id, projectID); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrValidation)
	}
	if replyTo != nil {
		parent, err := s.messages.GetByID(ctx, *replyTo)
		if errors.Is(err, domain.ErrNotFound) || (err == nil && parent.ProjectID != projectID) {
			return nil, fmt.Errorf("%w: reply_to must reference a message in this project", domain.ErrValidation)
		}
		if err != nil {
			return nil, err
		}
	}
	msg := &models.ProjectMessage{ProjectID: projectID, UserID: id.UserID, Message: text, ReplyTo: replyTo}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	s.fanout.MessagePosted(ctx, msg)
	return msg, nil
}

// ListMessages returns the project conversation oldest first.
func (s *MessageService) ListMessages(ctx context.Context, id domain.Identity, projectID uint, limit, offset int) ([]models.ProjectMessage, error) {
	if _, err := requireMember(ctx, s.projects, id, projectID); err != nil {
		return nil, err
	}
	return s.messages.ListByProject(ctx, projectID, limit, offset)
}
