package service

import (
	"testing"

	"synergysphere/internal/repository"
	"synergysphere/internal/testutil"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

type testEnv struct {
	db         *gorm.DB
	signals    *testutil.Signals
	logs       *observer.ObservedLogs
	notes      *NotificationService
	activities *ActivityService
	fanout     *FanOut
	team       *TeamService
	tasks      *TaskService
	messages   *MessageService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewDB(t)
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)
	signals := testutil.NewSignals()

	projects := repository.NewProjectRepository(db)
	notes := NewNotificationService(repository.NewNotificationRepository(db), signals, log).WithClock(testutil.Clock())
	activities := NewActivityService(repository.NewActivityRepository(db), projects).WithClock(testutil.Clock())
	return newTestEnvWith(db, signals, logs, notes, activities, NewFanOut(notes, activities, log))
}

func newTestEnvWith(db *gorm.DB, signals *testutil.Signals, logs *observer.ObservedLogs, notes *NotificationService, activities *ActivityService, fanout *FanOut) *testEnv {
	projects := repository.NewProjectRepository(db)
	return &testEnv{
		db:         db,
		signals:    signals,
		logs:       logs,
		notes:      notes,
		activities: activities,
		fanout:     fanout,
		team:       NewTeamService(projects, repository.NewProfileRepository(db), fanout),
		tasks:      NewTaskService(repository.NewTaskRepository(db), repository.NewCommentRepository(db), projects, fanout),
		messages:   NewMessageService(repository.NewMessageRepository(db), projects, fanout),
	}
}
