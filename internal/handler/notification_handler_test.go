package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"synergysphere/internal/database"
	"synergysphere/internal/domain"
	"synergysphere/internal/middleware"
	"synergysphere/internal/repository"
	"synergysphere/internal/service"
	"synergysphere/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func notificationRouter(db *gorm.DB, userID uint) (*gin.Engine, *service.NotificationService) {
	gin.SetMode(gin.TestMode)
	svc := service.NewNotificationService(repository.NewNotificationRepository(db), nil, zap.NewNop()).
		WithClock(testutil.Clock())
	h := NewNotificationHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.SetIdentity(c, domain.Identity{UserID: userID})
		c.Next()
	})
	r.GET("/me/notifications", h.List)
	r.GET("/me/notifications/unread-count", h.UnreadCount)
	r.POST("/me/notifications/read", h.MarkRead)
	r.POST("/me/notifications/read-all", h.MarkAllRead)
	r.DELETE("/me/notifications/:id", h.Delete)
	return r, svc
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type snapshotBody struct {
	Notifications []struct {
		ID    uint   `json:"id"`
		Read  bool   `json:"read"`
		Type  string `json:"type"`
		Icon  string `json:"icon"`
		Title string `json:"title"`
	} `json:"notifications"`
	UnreadCount int64 `json:"unread_count"`
}

func TestNotificationHandler_Flow(t *testing.T) {
	db := testutil.NewDB(t)
	r, svc := notificationRouter(db, 1)
	ctx := t.Context()
	var created []uint
	for _, typ := range []domain.NotificationType{domain.NotificationTaskAssigned, domain.NotificationCommentAdded, domain.NotificationDeadlineReminder} {
		n, err := svc.Create(ctx, service.CreateNotificationInput{UserID: 1, Title: string(typ), Type: typ})
		require.NoError(t, err)
		created = append(created, n.ID)
	}
	_, err := svc.Create(ctx, service.CreateNotificationInput{UserID: 2, Title: "not yours"})
	require.NoError(t, err)

	w := do(r, http.MethodGet, "/me/notifications?limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	var snap snapshotBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	require.Len(t, snap.Notifications, 2)
	assert.Equal(t, int64(3), snap.UnreadCount)
	assert.Equal(t, created[2], snap.Notifications[0].ID)
	assert.Equal(t, "⏰", snap.Notifications[0].Icon)

	w = do(r, http.MethodPost, "/me/notifications/read", `{"ids":[`+itoa(created[0])+`,`+itoa(created[0])+`,9999]}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/me/notifications/unread-count", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"unread_count":2}`, w.Body.String())

	w = do(r, http.MethodPost, "/me/notifications/read", `{"ids":[]}`)
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodPost, "/me/notifications/read", `{"ids":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/me/notifications/read-all", "")
	require.Equal(t, http.StatusOK, w.Code)
	var marked struct {
		Marked []uint `json:"marked"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &marked))
	assert.ElementsMatch(t, []uint{created[1], created[2]}, marked.Marked)

	w = do(r, http.MethodDelete, "/me/notifications/"+itoa(created[1]), "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(r, http.MethodDelete, "/me/notifications/"+itoa(created[1]), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(r, http.MethodDelete, "/me/notifications/"+itoa(created[len(created)-1]+1), "")
	assert.Equal(t, http.StatusNotFound, w.Code, "another user's notification looks missing")
	w = do(r, http.MethodDelete, "/me/notifications/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/me/notifications", "")
	require.Equal(t, http.StatusOK, w.Code)
	snap = snapshotBody{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Len(t, snap.Notifications, 2)
	assert.Zero(t, snap.UnreadCount)
	for _, n := range snap.Notifications {
		assert.True(t, n.Read)
	}
}

func TestNotificationHandler_StoreFailureIsRetryable(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	db, err := database.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}))
	require.NoError(t, err)
	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))
	mock.ExpectQuery("SELECT count").WillReturnError(errors.New("too many connections"))

	r, _ := notificationRouter(db, 1)
	w := do(r, http.MethodGet, "/me/notifications", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "too many connections")

	w = do(r, http.MethodGet, "/me/notifications/unread-count", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
