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

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type NotificationService struct {
	repo   *repository.NotificationRepository
	signal Signaler
	log    *zap.Logger
	now    func() time.Time
}

func NewNotificationService(repo *repository.NotificationRepository, signal Signaler, log *zap.Logger) *NotificationService {
	if signal == nil {
		signal = nopSignaler{}
	}
	return &NotificationService{repo: repo, signal: signal, log: log, now: time.Now}
}

// WithClock replaces the time source used for created_at and read_at.
func (s *NotificationService) WithClock(now func() time.Time) *NotificationService {
	s.now = now
	return s
}

type CreateNotificationInput struct {
	UserID  uint
	Title   string
	Message string
	Type    domain.NotificationType
	Data    map[string]interface{}
}

// Snapshot is a list and unread count read from the same view of the store.
type Snapshot struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unread_count"`
}

func (s *NotificationService) Create(ctx context.Context, in CreateNotificationInput) (*models.Notification, error) {
	if in.UserID == 0 {
		return nil, fmt.Errorf("%w: user_id is required", domain.ErrValidation)
	}
	if in.Type == "" {
		in.Type = domain.NotificationInfo
	}
	if !in.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown notification type %q", domain.ErrValidation, in.Type)
	}
	n := &models.Notification{
		UserID:    in.UserID,
		Title:     in.Title,
		Message:   in.Message,
		Type:      in.Type,
		CreatedAt: s.now().UTC(),
	}
	if in.Data != nil {
		b, err := json.Marshal(in.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: data: %v", domain.ErrValidation, err)
		}
		n.Data = datatypes.JSON(b)
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	metrics.NotificationsCreated.WithLabelValues(string(n.Type)).Inc()
	s.log.Debug("notification created", zap.Uint("id", n.ID), zap.Uint("user_id", n.UserID), zap.String("type", string(n.Type)))
	s.signal.NotifyUser(n.UserID)
	return n, nil
}

func (s *NotificationService) List(ctx context.Context, id domain.Identity, limit int) ([]models.Notification, error) {
	if !id.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.ListByUserID(ctx, id.UserID, limit)
}

func (s *NotificationService) UnreadCount(ctx context.Context, id domain.Identity) (int64, error) {
	if !id.Authenticated() {
		return 0, domain.ErrUnauthorized
	}
	return s.repo.CountUnread(ctx, id.UserID)
}

// MarkRead ignores ids that are foreign, already read, repeated or unknown.
func (s *NotificationService) MarkRead(ctx context.Context, id domain.Identity, ids []uint) error {
	if !id.Authenticated() {
		return domain.ErrUnauthorized
	}
	changed, err := s.repo.MarkRead(ctx, id.UserID, dedupe(ids), s.now().UTC())
	if err != nil {
		return err
	}
	if changed > 0 {
		metrics.NotificationsMarkedRead.Add(float64(changed))
		s.signal.NotifyUser(id.UserID)
	}
	return nil
}

// Delete reports ErrNotFound both for unknown ids and for ids owned by
// someone else.
func (s *NotificationService) Delete(ctx context.Context, id domain.Identity, notificationID uint) error {
	if !id.Authenticated() {
		return domain.ErrUnauthorized
	}
	ok, err := s.repo.Delete(ctx, id.UserID, notificationID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	metrics.NotificationsDeleted.Inc()
	s.signal.NotifyUser(id.UserID)
	return nil
}

// Snapshot reads the list and the unread count in one transaction.
func (s *NotificationService) Snapshot(ctx context.Context, id domain.Identity, limit int) (*Snapshot, error) {
	if !id.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	snap := &Snapshot{}
	err := s.repo.Transaction(ctx, func(tx *repository.NotificationRepository) error {
		list, err := tx.ListByUserID(ctx, id.UserID, limit)
		if err != nil {
			return err
		}
		count, err := tx.CountUnread(ctx, id.UserID)
		if err != nil {
			return err
		}
		snap.Notifications, snap.UnreadCount = list, count
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// MarkAllRead marks the notifications that are unread right now. Anything
// created after the id set is read stays unread.
func (s *NotificationService) MarkAllRead(ctx context.Context, id domain.Identity) ([]uint, error) {
	if !id.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	ids, err := s.repo.UnreadIDs(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.MarkRead(ctx, id, ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
