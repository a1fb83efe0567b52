package repository

import (
	"dienstplan/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ActivityRepository interface {
	LogAction(userID uint, action, details string) error
	AddAdminNotification(message string) error
	GetUnsentNotifications() ([]*models.AdminNotification, error)
	MarkNotificationSent(id uint) error
}

type GormActivityRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormActivityRepository(db *gorm.DB) (*GormActivityRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.ActivityLog{}, &models.AdminNotification{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate activity tables")
		return nil, mapStoreError(err)
	}

	return &GormActivityRepository{db: db, logger: logger}, nil
}

// LogAction appends one audit entry. Audit failures are logged but must not
// break the action being audited.
func (r *GormActivityRepository) LogAction(userID uint, action, details string) error {
	entry := &models.ActivityLog{UserID: userID, Action: action, Details: details}
	if err := r.db.Create(entry).Error; err != nil {
		r.logger.WithError(err).WithField("action", action).Warn("Failed to write activity log entry")
		return mapStoreError(err)
	}
	return nil
}

func (r *GormActivityRepository) AddAdminNotification(message string) error {
	if err := r.db.Create(&models.AdminNotification{Message: message}).Error; err != nil {
		r.logger.WithError(err).Warn("Failed to write admin notification")
		return mapStoreError(err)
	}
	return nil
}

func (r *GormActivityRepository) GetUnsentNotifications() ([]*models.AdminNotification, error) {
	var notes []*models.AdminNotification
	result := r.db.Where("sent = ?", false).Order("created_at ASC").Find(&notes)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get unsent notifications")
		return nil, mapStoreError(result.Error)
	}
	return notes, nil
}

func (r *GormActivityRepository) MarkNotificationSent(id uint) error {
	res := r.db.Model(&models.AdminNotification{}).Where("id = ?", id).Update("sent", true)
	if res.Error != nil {
		r.logger.WithError(res.Error).Error("Failed to mark notification sent")
		return mapStoreError(res.Error)
	}
	return nil
}
