package domain

const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// NotificationType is the closed tag carried by every notification. It only
// selects a display icon.
type NotificationType string

const (
	NotificationTaskAssigned     NotificationType = "task_assigned"
	NotificationTaskCompleted    NotificationType = "task_completed"
	NotificationProjectInvite    NotificationType = "project_invite"
	NotificationDeadlineReminder NotificationType = "deadline_reminder"
	NotificationProjectUpdate    NotificationType = "project_update"
	NotificationCommentAdded     NotificationType = "comment_added"
	NotificationInfo             NotificationType = "info"
	NotificationOther            NotificationType = "other"
)

var notificationIcons = map[NotificationType]string{
	NotificationTaskAssigned:     "📋",
	NotificationTaskCompleted:    "✅",
	NotificationProjectInvite:    "👥",
	NotificationDeadlineReminder: "⏰",
	NotificationProjectUpdate:    "📊",
	NotificationCommentAdded:     "💬",
	NotificationInfo:             "🔔",
	NotificationOther:            "🔔",
}

const defaultNotificationIcon = "🔔"

// Valid reports whether t is one of the known notification tags.
func (t NotificationType) Valid() bool {
	_, ok := notificationIcons[t]
	return ok
}

// NotificationIcon maps a tag to its icon; tags added later fall back to the bell.
func NotificationIcon(t NotificationType) string {
	if icon, ok := notificationIcons[t]; ok {
		return icon
	}
	return defaultNotificationIcon
}

type ActivityType string

const (
	ActivityTaskCreated    ActivityType = "task_created"
	ActivityTaskCompleted  ActivityType = "task_completed"
	ActivityTaskUpdated    ActivityType = "task_updated"
	ActivityMemberAdded    ActivityType = "member_added"
	ActivityMemberRemoved  ActivityType = "member_removed"
	ActivityProjectUpdated ActivityType = "project_updated"
	ActivityOther          ActivityType = "other"
)

var activityIcons = map[ActivityType]string{
	ActivityTaskCreated:    "✅",
	ActivityTaskCompleted:  "🎉",
	ActivityTaskUpdated:    "📝",
	ActivityMemberAdded:    "👋",
	ActivityMemberRemoved:  "👋",
	ActivityProjectUpdated: "⚙️",
	ActivityOther:          "📌",
}

const defaultActivityIcon = "📌"

func (t ActivityType) Valid() bool {
	_, ok := activityIcons[t]
	return ok
}

func ActivityIcon(t ActivityType) string {
	if icon, ok := activityIcons[t]; ok {
		return icon
	}
	return defaultActivityIcon
}

const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Notifications shown by the dropdown; the full page lists without a limit.
const DropdownNotificationLimit = 20

const (
	DefaultActivityLimit = 20
	MaxActivityLimit     = 100
)
