package repository

import (
	"errors"

	"dienstplan/internal/models"
	"dienstplan/internal/roster"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PasswordResetRepository interface {
	Request(userID uint) (*models.PasswordResetRequest, error)
	GetByUser(userID uint) (*models.PasswordResetRequest, error)
	Delete(userID uint) error
}

type GormPasswordResetRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormPasswordResetRepository(db *gorm.DB) (*GormPasswordResetRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.PasswordResetRequest{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate password_reset_requests table")
		return nil, mapStoreError(err)
	}

	return &GormPasswordResetRepository{db: db, logger: logger}, nil
}

// Request creates a reset request with a fresh token. A second request for
// the same user is idempotent and returns the existing row.
func (r *GormPasswordResetRepository) Request(userID uint) (*models.PasswordResetRequest, error) {
	req := &models.PasswordResetRequest{
		UserID: userID,
		Token:  uuid.NewString(),
	}
	err := r.db.Create(req).Error
	if err == nil {
		r.logger.WithField("user_id", userID).Info("Password reset requested")
		return req, nil
	}

	mapped := mapStoreError(err)
	if errors.Is(mapped, roster.ErrConstraintViolation) {
		existing, getErr := r.GetByUser(userID)
		if getErr != nil {
			return nil, getErr
		}
		if existing != nil {
			return existing, nil
		}
	}

	r.logger.WithError(err).Error("Failed to create password reset request")
	return nil, mapped
}

func (r *GormPasswordResetRepository) GetByUser(userID uint) (*models.PasswordResetRequest, error) {
	var req models.PasswordResetRequest
	result := r.db.Where("user_id = ?", userID).First(&req)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, mapStoreError(result.Error)
	}
	return &req, nil
}

func (r *GormPasswordResetRepository) Delete(userID uint) error {
	res := r.db.Where("user_id = ?", userID).Delete(&models.PasswordResetRequest{})
	if res.Error != nil {
		r.logger.WithError(res.Error).Error("Failed to delete password reset request")
		return mapStoreError(res.Error)
	}
	return nil
}
