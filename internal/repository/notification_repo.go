package repository

import (
	"context"
	"time"

	"synergysphere/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository scopes every query by user_id; callers never see
// rows owned by someone else.
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Transaction runs fn against a repository bound to one database transaction.
func (r *NotificationRepository) Transaction(ctx context.Context, fn func(tx *NotificationRepository) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&NotificationRepository{db: tx})
	})
	if err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return storeErr(r.db.WithContext(ctx).Create(n).Error)
}

// ListByUserID returns newest first; limit <= 0 returns everything.
func (r *NotificationRepository) ListByUserID(ctx context.Context, userID uint, limit int) ([]models.Notification, error) {
	list := []models.Notification{}
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, storeErr(err)
	}
	return list, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	return n, storeErr(err)
}

func (r *NotificationRepository) UnreadIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return ids, nil
}

// MarkRead flips unread rows in ids owned by userID in a single statement and
// reports how many changed.
func (r *NotificationRepository) MarkRead(ctx context.Context, userID uint, ids []uint, at time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND id IN ? AND is_read = ?", userID, ids, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": at})
	if res.Error != nil {
		return 0, storeErr(res.Error)
	}
	return res.RowsAffected, nil
}

// Delete returns (false, nil) when no row with id belongs to userID.
func (r *NotificationRepository) Delete(ctx context.Context, userID, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Notification{})
	if res.Error != nil {
		return false, storeErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}
