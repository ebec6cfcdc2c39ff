package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotificationIcon(t *testing.T) {
	assert.Equal(t, "📋", NotificationIcon(NotificationTaskAssigned))
	assert.Equal(t, "✅", NotificationIcon(NotificationTaskCompleted))
	assert.Equal(t, "👥", NotificationIcon(NotificationProjectInvite))
	assert.Equal(t, "⏰", NotificationIcon(NotificationDeadlineReminder))
	assert.Equal(t, "📊", NotificationIcon(NotificationProjectUpdate))
	assert.Equal(t, "💬", NotificationIcon(NotificationCommentAdded))
	assert.Equal(t, "🔔", NotificationIcon("something_new"))

	assert.True(t, NotificationInfo.Valid())
	assert.False(t, NotificationType("something_new").Valid())
}

func TestActivityIcon(t *testing.T) {
	assert.Equal(t, "✅", ActivityIcon(ActivityTaskCreated))
	assert.Equal(t, "🎉", ActivityIcon(ActivityTaskCompleted))
	assert.Equal(t, "📝", ActivityIcon(ActivityTaskUpdated))
	assert.Equal(t, "👋", ActivityIcon(ActivityMemberAdded))
	assert.Equal(t, "👋", ActivityIcon(ActivityMemberRemoved))
	assert.Equal(t, "⚙️", ActivityIcon(ActivityProjectUpdated))
	assert.Equal(t, "📌", ActivityIcon("archived"))
	assert.False(t, ActivityType("archived").Valid())
}
