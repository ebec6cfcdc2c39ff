package service

import (
	"context"
	"testing"

	"synergysphere/internal/domain"
	"synergysphere/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTask_WithAssignee(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := testutil.Profile(t, env.db, "owner@example.com", "Owner")
	bo := testutil.Profile(t, env.db, "bo@example.com", "Bo")
	p := testutil.Project(t, env.db, "Roadmap", owner)
	testutil.Member(t, env.db, p, bo, domain.RoleMember)

	task, err := env.tasks.CreateTask(ctx, testutil.Identity(owner), CreateTaskInput{
		ProjectID:  p.ID,
		Name:       "Design review",
		AssigneeID: &bo.ID,
		Tags:       []string{"design"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.Equal(t, domain.TaskStatusTodo, task.Status)

	list, err := env.notes.List(ctx, testutil.Identity(bo), 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Task Assigned", list[0].Title)
	assert.Equal(t, `You've been assigned to "Design review" in "Roadmap".`, list[0].Message)
	assert.Equal(t, domain.NotificationTaskAssigned, list[0].Type)
	assert.Equal(t, "📋", list[0].Icon)

	feed, err := env.activities.List(ctx, testutil.Identity(owner), p.ID, 0)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, `Owner created task "Design review"`, feed[0].Message)
}

func TestCreateTask_WithoutAssigneeOnlyLogsActivity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := testutil.Profile(t, env.db, "owner@example.com", "Owner")
	p := testutil.Project(t, env.db, "Roadmap", owner)

	_, err := env.tasks.CreateTask(ctx, testutil.Identity(owner), CreateTaskInput{ProjectID: p.ID, Name: "Solo", Priority: domain.PriorityHigh})
	require.NoError(t, err)

	count, err := env.notes.UnreadCount(ctx, testutil.Identity(owner))
	require.NoError(t, err)
	assert.Zero(t, count)

	feed, err := env.activities.List(ctx, testutil.Identity(owner), p.ID, 0)
	require.NoError(t, err)
	assert.Len(t, feed, 1)

	_, err = env.tasks.CreateTask(ctx, testutil.Identity(owner), CreateTaskInput{ProjectID: p.ID, Name: "x", Priority: "urgent"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = env.tasks.CreateTask(ctx, testutil.Identity(owner), CreateTaskInput{ProjectID: p.ID})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAssignTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := testutil.Profile(t, env.db, "owner@example.com", "Owner")
	bo := testutil.Profile(t, env.db, "bo@example.com", "Bo")
	outsider := testutil.Profile(t, env.db, "x@example.com", "X")
	p := testutil.Project(t, env.db, "Roadmap", owner)
	testutil.Member(t, env.db, p, bo, domain.RoleMember)
	task, err := env.tasks.CreateTask(ctx, testutil.Identity(owner), CreateTaskInput{ProjectID: p.ID, Name: "Spec"})
	require.NoError(t, err)

	_, err = env.tasks.AssignTask(ctx, testutil.Identity(outsider), task.ID, bo.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = env.tasks.AssignTask(ctx, testutil.Identity(owner), task.ID, outsider.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = env.tasks.AssignTask(ctx, testutil.Identity(owner), 999, bo.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	updated, err := env.tasks.AssignTask(ctx, testutil.Identity(owner), task.ID, bo.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.AssigneeID)
	assert.Equal(t, bo.ID, *updated.AssigneeID)

	_, err = env.tasks.AssignTask(ctx, testutil.Identity(owner), task.ID, bo.ID)
	require.NoError(t, err)

	count, err := env.notes.UnreadCount(ctx, testutil.Identity(bo))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "reassigning to the same user notifies once")

	feed, err := env.activities.List(ctx, testutil.Identity(owner), p.ID, 0)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, `Owner updated task "Spec"`, feed[0].Message)
}

func TestCompleteTask_FansOutOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := testutil.Profile(t, env.db, "owner@example.com", "Owner")
	bo := testutil.Profile(t, env.db, "bo@example.com", "Bo")
	p := testutil.Project(t, env.db, "Roadmap", owner)
	testutil.Member(t, env.db, p, bo, domain.RoleMember)
	task, err := env.tasks.CreateTask(ctx, testutil.Identity(owner), CreateTaskInput{ProjectID: p.ID, Name: "Launch", AssigneeID: &bo.ID})
	require.NoError(t, err)

	done, err := env.tasks.CompleteTask(ctx, testutil.Identity(bo), task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusDone, done.Status)
	_, err = env.tasks.CompleteTask(ctx, testutil.Identity(bo), task.ID)
	require.NoError(t, err)

	ownerNotes, err := env.notes.List(ctx, testutil.Identity(owner), 0)
	require.NoError(t, err)
	require.Len(t, ownerNotes, 1)
	assert.Equal(t, "Task Completed", ownerNotes[0].Title)
	assert.Equal(t, `"Launch" in "Roadmap" was marked as done.`, ownerNotes[0].Message)

	boNotes, err := env.notes.List(ctx, testutil.Identity(bo), 0)
	require.NoError(t, err)
	assert.Len(t, boNotes, 1, "only the assignment; the completer is not notified")

	feed, err := env.activities.List(ctx, testutil.Identity(owner), p.ID, 0)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, `Bo completed task "Launch"`, feed[0].Message)
	assert.Equal(t, "🎉", feed[0].Icon)
}

func TestAddComment_NotifiesTaskParticipants(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := testutil.Profile(t, env.db, "owner@example.com", "Owner")
	bo := testutil.Profile(t, env.db, "bo@example.com", "Bo")
	outsider := testutil.Profile(t, env.db, "x@example.com", "X")
	p := testutil.Project(t, env.db, "Roadmap", owner)
	testutil.Member(t, env.db, p, bo, domain.RoleMember)
	task, err := env.tasks.CreateTask(ctx, testutil.Identity(owner), CreateTaskInput{ProjectID: p.ID, Name: "Design review", AssigneeID: &bo.ID})
	require.NoError(t, err)

	_, err = env.tasks.AddComment(ctx, testutil.Identity(outsider), task.ID, "hi")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = env.tasks.AddComment(ctx, testutil.Identity(bo), task.ID, "   ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = env.tasks.AddComment(ctx, testutil.Identity(bo), task.ID, " first draft is up ")
	require.NoError(t, err)

	ownerNotes, err := env.notes.List(ctx, testutil.Identity(owner), 0)
	require.NoError(t, err)
	require.Len(t, ownerNotes, 1)
	assert.Equal(t, "New Comment", ownerNotes[0].Title)
	assert.Equal(t, `New comment on "Design review" in "Roadmap".`, ownerNotes[0].Message)
	assert.Equal(t, domain.NotificationCommentAdded, ownerNotes[0].Type)
	assert.Equal(t, "💬", ownerNotes[0].Icon)

	boCount, err := env.notes.UnreadCount(ctx, testutil.Identity(bo))
	require.NoError(t, err)
	assert.Equal(t, int64(1), boCount, "only the assignment, not the own comment")

	_, err = env.tasks.AddComment(ctx, testutil.Identity(owner), task.ID, "looks good")
	require.NoError(t, err)
	boCount, err = env.notes.UnreadCount(ctx, testutil.Identity(bo))
	require.NoError(t, err)
	assert.Equal(t, int64(2), boCount)

	comments, err := env.tasks.ListComments(ctx, testutil.Identity(bo), task.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first draft is up", comments[0].Comment)
	assert.Equal(t, "looks good", comments[1].Comment)
	require.NotNil(t, comments[1].Author)
	assert.Equal(t, "Owner", comments[1].Author.DisplayName)

	_, err = env.tasks.ListComments(ctx, testutil.Identity(outsider), task.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
