package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"synergysphere/internal/domain"
	"synergysphere/internal/metrics"
	"synergysphere/internal/models"
	"synergysphere/internal/repository"

	"gorm.io/datatypes"
)

type ActivityService struct {
	repo     *repository.ActivityRepository
	projects *repository.ProjectRepository
	now      func() time.Time
}

func NewActivityService(repo *repository.ActivityRepository, projects *repository.ProjectRepository) *ActivityService {
	return &ActivityService{repo: repo, projects: projects, now: time.Now}
}

func (s *ActivityService) WithClock(now func() time.Time) *ActivityService {
	s.now = now
	return s
}

// FeedEntry is an activity with its rendered sentence and icon.
type FeedEntry struct {
	models.Activity
	Message string `json:"message"`
	Icon    string `json:"icon"`
}

func (s *ActivityService) Append(ctx context.Context, projectID uint, t domain.ActivityType, data map[string]interface{}, actorID uint) (*models.Activity, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unknown activity type %q", domain.ErrValidation, t)
	}
	ok, err := s.projects.Exists(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: project %d", domain.ErrNotFound, projectID)
	}
	a := &models.Activity{
		ProjectID:    projectID,
		ActorID:      actorID,
		ActivityType: t,
		CreatedAt:    s.now().UTC(),
	}
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("%w: activity data: %v", domain.ErrValidation, err)
		}
		a.ActivityData = datatypes.JSON(b)
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	metrics.ActivitiesAppended.WithLabelValues(string(t)).Inc()
	return a, nil
}

// List returns the newest entries of a project feed. Callers outside the
// project get ErrNotFound.
func (s *ActivityService) List(ctx context.Context, id domain.Identity, projectID uint, limit int) ([]FeedEntry, error) {
	if _, err := requireMember(ctx, s.projects, id, projectID); err != nil {
		return nil, err
	}
	switch {
	case limit <= 0:
		limit = domain.DefaultActivityLimit
	case limit > domain.MaxActivityLimit:
		limit = domain.MaxActivityLimit
	}
	list, err := s.repo.ListByProject(ctx, projectID, limit)
	if err != nil {
		return nil, err
	}
	feed := make([]FeedEntry, 0, len(list))
	for _, a := range list {
		feed = append(feed, FeedEntry{
			Activity: a,
			Message:  RenderMessage(&a, ActorName(a.Actor)),
			Icon:     domain.ActivityIcon(a.ActivityType),
		})
	}
	return feed, nil
}

// RenderMessage turns an activity into the sentence shown in a project feed.
func RenderMessage(a *models.Activity, actorName string) string {
	taskName := activityTaskName(a.ActivityData)
	switch a.ActivityType {
	case domain.ActivityTaskCreated:
		return fmt.Sprintf("%s created task \"%s\"", actorName, taskName)
	case domain.ActivityTaskCompleted:
		return fmt.Sprintf("%s completed task \"%s\"", actorName, taskName)
	case domain.ActivityTaskUpdated:
		return fmt.Sprintf("%s updated task \"%s\"", actorName, taskName)
	case domain.ActivityMemberAdded:
		return actorName + " joined the project"
	case domain.ActivityMemberRemoved:
		return actorName + " left the project"
	case domain.ActivityProjectUpdated:
		return actorName + " updated the project"
	default:
		return actorName + " performed an action"
	}
}

// ActorName prefers the display name, then the email.
func ActorName(p *models.Profile) string {
	switch {
	case p == nil:
		return "Someone"
	case p.DisplayName != "":
		return p.DisplayName
	case p.Email != "":
		return p.Email
	default:
		return "Someone"
	}
}

func activityTaskName(data datatypes.JSON) string {
	if len(data) == 0 {
		return ""
	}
	var payload struct {
		TaskName string `json:"task_name"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return payload.TaskName
}
