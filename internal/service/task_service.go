package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"synergysphere/internal/domain"
	"synergysphere/internal/models"
	"synergysphere/internal/repository"
)

type TaskService struct {
	tasks    *repository.TaskRepository
	comments *repository.CommentRepository
	projects *repository.ProjectRepository
	fanout   *FanOut
}

func NewTaskService(tasks *repository.TaskRepository, comments *repository.CommentRepository, projects *repository.ProjectRepository, fanout *FanOut) *TaskService {
	return &TaskService{tasks: tasks, comments: comments, projects: projects, fanout: fanout}
}

type CreateTaskInput struct {
	ProjectID   uint
	Name        string
	Description string
	AssigneeID  *uint
	Priority    string
	Deadline    *time.Time
	Tags        []string
}

func (s *TaskService) CreateTask(ctx context.Context, id domain.Identity, in CreateTaskInput) (*models.Task, error) {
	if _, err := requireMember(ctx, s.projects, id, in.ProjectID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: task name is required", domain.ErrValidation)
	}
	priority := in.Priority
	switch priority {
	case "":
		priority = domain.PriorityMedium
	case domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh:
	default:
		return nil, fmt.Errorf("%w: priority must be low, medium or high", domain.ErrValidation)
	}
	if in.AssigneeID != nil {
		if err := s.requireAssignable(ctx, in.ProjectID, *in.AssigneeID); err != nil {
			return nil, err
		}
	}
	project, err := s.projects.GetByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		ProjectID:   in.ProjectID,
		Name:        name,
		Description: in.Description,
		AssigneeID:  in.AssigneeID,
		CreatedBy:   id.UserID,
		Priority:    priority,
		Status:      domain.TaskStatusTodo,
		Deadline:    in.Deadline,
		Tags:        in.Tags,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	s.fanout.TaskCreated(ctx, project, task, id.UserID)
	return task, nil
}

// AssignTask is a no-op when the task already has that assignee.
func (s *TaskService) AssignTask(ctx context.Context, id domain.Identity, taskID, assigneeID uint) (*models.Task, error) {
	task, project, err := s.visibleTask(ctx, id, taskID)
	if err != nil {
		return nil, err
	}
	if assigneeID == 0 {
		return nil, fmt.Errorf("%w: assignee_id is required", domain.ErrValidation)
	}
	if task.AssigneeID != nil && *task.AssigneeID == assigneeID {
		return task, nil
	}
	if err := s.requireAssignable(ctx, task.ProjectID, assigneeID); err != nil {
		return nil, err
	}
	if err := s.tasks.UpdateAssignee(ctx, task.ID, assigneeID); err != nil {
		return nil, err
	}
	task.AssigneeID = &assigneeID
	s.fanout.TaskAssigned(ctx, project, task, id.UserID)
	return task, nil
}

// CompleteTask marks the task done. Completing a done task changes nothing
// and notifies nobody.
func (s *TaskService) CompleteTask(ctx context.Context, id domain.Identity, taskID uint) (*models.Task, error) {
	task, project, err := s.visibleTask(ctx, id, taskID)
	if err != nil {
		return nil, err
	}
	changed, err := s.tasks.MarkDone(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	task.Status = domain.TaskStatusDone
	if changed {
		s.fanout.TaskCompleted(ctx, project, task, id.UserID)
	}
	return task, nil
}

func (s *TaskService) AddComment(ctx context.Context, id domain.Identity, taskID uint, text string) (*models.TaskComment, error) {
	task, project, err := s.visibleTask(ctx, id, taskID)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment is required", domain.ErrValidation)
	}
	comment := &models.TaskComment{TaskID: task.ID, UserID: id.UserID, Comment: text}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.fanout.CommentAdded(ctx, project, task, comment)
	return comment, nil
}

// ListComments returns the task's comments oldest first.
func (s *TaskService) ListComments(ctx context.Context, id domain.Identity, taskID uint) ([]models.TaskComment, error) {
	task, _, err := s.visibleTask(ctx, id, taskID)
	if err != nil {
		return nil, err
	}
	return s.comments.ListByTask(ctx, task.ID)
}

func (s *TaskService) visibleTask(ctx context.Context, id domain.Identity, taskID uint) (*models.Task, *models.Project, error) {
	if !id.Authenticated() {
		return nil, nil, domain.ErrUnauthorized
	}
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := requireMember(ctx, s.projects, id, task.ProjectID); err != nil {
		return nil, nil, err
	}
	project, err := s.projects.GetByID(ctx, task.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return task, project, nil
}

func (s *TaskService) requireAssignable(ctx context.Context, projectID, userID uint) error {
	_, err := s.projects.GetMember(ctx, projectID, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: assignee must be a project member", domain.ErrValidation)
	}
	return err
}
