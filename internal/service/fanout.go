package service

import (
	"context"
	"fmt"

	"synergysphere/internal/domain"
	"synergysphere/internal/metrics"
	"synergysphere/internal/models"

	"go.uber.org/zap"
)

type NotificationCreator interface {
	Create(ctx context.Context, in CreateNotificationInput) (*models.Notification, error)
}

type ActivityAppender interface {
	Append(ctx context.Context, projectID uint, t domain.ActivityType, data map[string]interface{}, actorID uint) (*models.Activity, error)
}

const (
	actionMemberInvited = "member_invited"
	actionMemberRemoved = "member_removed"
	actionTaskCreated   = "task_created"
	actionTaskAssigned  = "task_assigned"
	actionTaskCompleted = "task_completed"
	actionProjectUpdate = "project_updated"
	actionCommentAdded  = "comment_added"
)

// FanOut writes the notifications and activities that follow a committed
// domain action. Its methods never return errors: a failed write is logged
// and counted, and the primary action stands.
type FanOut struct {
	notifications NotificationCreator
	activities    ActivityAppender
	log           *zap.Logger
}

func NewFanOut(notifications NotificationCreator, activities ActivityAppender, log *zap.Logger) *FanOut {
	return &FanOut{notifications: notifications, activities: activities, log: log}
}

func (f *FanOut) MemberInvited(ctx context.Context, project *models.Project, member *models.ProjectMember) {
	ctx = context.WithoutCancel(ctx)
	f.notify(ctx, actionMemberInvited, CreateNotificationInput{
		UserID:  member.UserID,
		Title:   "Project Invitation",
		Message: fmt.Sprintf("You've been invited to join \"%s\" as a %s.", project.Name, member.Role),
		Type:    domain.NotificationInfo,
		Data:    map[string]interface{}{"project_id": project.ID, "role": member.Role},
	})
	f.append(ctx, actionMemberInvited, project.ID, domain.ActivityMemberAdded,
		map[string]interface{}{"role": member.Role}, member.UserID)
}

func (f *FanOut) MemberRemoved(ctx context.Context, projectID, userID uint) {
	f.append(context.WithoutCancel(ctx), actionMemberRemoved, projectID, domain.ActivityMemberRemoved, nil, userID)
}

func (f *FanOut) ProjectUpdated(ctx context.Context, project *models.Project, actorID uint) {
	f.append(context.WithoutCancel(ctx), actionProjectUpdate, project.ID, domain.ActivityProjectUpdated,
		map[string]interface{}{"name": project.Name}, actorID)
}

// TaskCreated logs the new task and notifies its assignee, if any.
func (f *FanOut) TaskCreated(ctx context.Context, project *models.Project, task *models.Task, actorID uint) {
	ctx = context.WithoutCancel(ctx)
	if task.AssigneeID != nil {
		f.notifyAssignee(ctx, actionTaskCreated, project, task)
	}
	f.append(ctx, actionTaskCreated, project.ID, domain.ActivityTaskCreated, taskData(task), actorID)
}

func (f *FanOut) TaskAssigned(ctx context.Context, project *models.Project, task *models.Task, actorID uint) {
	ctx = context.WithoutCancel(ctx)
	if task.AssigneeID != nil {
		f.notifyAssignee(ctx, actionTaskAssigned, project, task)
	}
	f.append(ctx, actionTaskAssigned, project.ID, domain.ActivityTaskUpdated, taskData(task), actorID)
}

// TaskCompleted notifies the assignee and the creator, once each, skipping
// whoever completed the task.
func (f *FanOut) TaskCompleted(ctx context.Context, project *models.Project, task *models.Task, actorID uint) {
	ctx = context.WithoutCancel(ctx)
	for _, uid := range taskParticipants(task) {
		if uid == actorID {
			continue
		}
		f.notify(ctx, actionTaskCompleted, CreateNotificationInput{
			UserID:  uid,
			Title:   "Task Completed",
			Message: fmt.Sprintf("\"%s\" in \"%s\" was marked as done.", task.Name, project.Name),
			Type:    domain.NotificationTaskCompleted,
			Data:    map[string]interface{}{"project_id": project.ID, "task_id": task.ID},
		})
	}
	f.append(ctx, actionTaskCompleted, project.ID, domain.ActivityTaskCompleted, taskData(task), actorID)
}

// CommentAdded notifies the assignee and the creator of the task, skipping
// the author of the comment.
func (f *FanOut) CommentAdded(ctx context.Context, project *models.Project, task *models.Task, comment *models.TaskComment) {
	ctx = context.WithoutCancel(ctx)
	for _, uid := range taskParticipants(task) {
		if uid == comment.UserID {
			continue
		}
		f.notify(ctx, actionCommentAdded, CreateNotificationInput{
			UserID:  uid,
			Title:   "New Comment",
			Message: fmt.Sprintf("New comment on \"%s\" in \"%s\".", task.Name, project.Name),
			Type:    domain.NotificationCommentAdded,
			Data:    map[string]interface{}{"project_id": project.ID, "task_id": task.ID, "comment_id": comment.ID},
		})
	}
}

// MessagePosted writes nothing. Project messages do not notify.
func (f *FanOut) MessagePosted(_ context.Context, msg *models.ProjectMessage) {
	f.log.Debug("project message posted without fan-out",
		zap.Uint("project_id", msg.ProjectID), zap.Uint("message_id", msg.ID))
}

func (f *FanOut) notifyAssignee(ctx context.Context, action string, project *models.Project, task *models.Task) {
	f.notify(ctx, action, CreateNotificationInput{
		UserID:  *task.AssigneeID,
		Title:   "Task Assigned",
		Message: fmt.Sprintf("You've been assigned to \"%s\" in \"%s\".", task.Name, project.Name),
		Type:    domain.NotificationTaskAssigned,
		Data:    map[string]interface{}{"project_id": project.ID, "task_id": task.ID},
	})
}

func (f *FanOut) notify(ctx context.Context, action string, in CreateNotificationInput) {
	if _, err := f.notifications.Create(ctx, in); err != nil {
		metrics.FanOutFailures.WithLabelValues(action).Inc()
		f.log.Error("fan-out notification failed",
			zap.String("action", action), zap.Uint("user_id", in.UserID), zap.Error(err))
	}
}

func (f *FanOut) append(ctx context.Context, action string, projectID uint, t domain.ActivityType, data map[string]interface{}, actorID uint) {
	if _, err := f.activities.Append(ctx, projectID, t, data, actorID); err != nil {
		metrics.FanOutFailures.WithLabelValues(action).Inc()
		f.log.Error("fan-out activity failed",
			zap.String("action", action), zap.Uint("project_id", projectID), zap.Error(err))
	}
}

// taskParticipants is the assignee and the creator, without duplicates or zero ids.
func taskParticipants(task *models.Task) []uint {
	ids := make([]uint, 0, 2)
	if task.AssigneeID != nil && *task.AssigneeID != 0 {
		ids = append(ids, *task.AssigneeID)
	}
	if task.CreatedBy != 0 {
		ids = append(ids, task.CreatedBy)
	}
	return dedupe(ids)
}

func taskData(task *models.Task) map[string]interface{} {
	return map[string]interface{}{"task_id": task.ID, "task_name": task.Name}
}
