package repository

import (
	"errors"
	"time"

	"dienstplan/internal/models"
	"dienstplan/internal/roster"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WunschfreiRepository interface {
	Upsert(req *models.WunschfreiRequest) error
	Update(req *models.WunschfreiRequest) error
	Get(userID uint, date time.Time) (*models.WunschfreiRequest, error)
	GetByID(id uint) (*models.WunschfreiRequest, error)
	GetRange(from, to time.Time) ([]*models.WunschfreiRequest, error)
	Delete(userID uint, date time.Time) error
}

type GormWunschfreiRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormWunschfreiRepository(db *gorm.DB) (*GormWunschfreiRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.WunschfreiRequest{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate wunschfrei_requests table")
		return nil, mapStoreError(err)
	}

	logger.Info("Wunschfrei repository initialized")

	return &GormWunschfreiRepository{db: db, logger: logger}, nil
}

// Upsert resubmits on the (user, date) unique key: an existing row is reset
// to the new request's shift, origin and Pending status.
func (r *GormWunschfreiRepository) Upsert(req *models.WunschfreiRequest) error {
	r.logger.WithFields(logrus.Fields{
		"user_id": req.UserID,
		"date":    roster.DateKey(req.RequestDate),
		"shift":   req.RequestedShift,
	}).Info("Upserting wunschfrei request")

	res := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "request_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"requested_shift", "status", "requested_by", "notified", "rejection_reason", "updated_at",
		}),
	}).Create(req)
	if res.Error != nil {
		r.logger.WithError(res.Error).Error("Failed to upsert wunschfrei request")
		return mapStoreError(res.Error)
	}
	return nil
}

func (r *GormWunschfreiRepository) Update(req *models.WunschfreiRequest) error {
	result := r.db.Save(req)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update wunschfrei request")
		return mapStoreError(result.Error)
	}
	return nil
}

func (r *GormWunschfreiRepository) Get(userID uint, date time.Time) (*models.WunschfreiRequest, error) {
	var req models.WunschfreiRequest
	result := r.db.Where("user_id = ? AND request_date = ?", userID, date).First(&req)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get wunschfrei request")
		return nil, mapStoreError(result.Error)
	}
	return &req, nil
}

func (r *GormWunschfreiRepository) GetByID(id uint) (*models.WunschfreiRequest, error) {
	var req models.WunschfreiRequest
	result := r.db.First(&req, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get wunschfrei request by ID")
		return nil, mapStoreError(result.Error)
	}
	return &req, nil
}

func (r *GormWunschfreiRepository) GetRange(from, to time.Time) ([]*models.WunschfreiRequest, error) {
	var reqs []*models.WunschfreiRequest
	result := r.db.Where("request_date BETWEEN ? AND ?", from, to).Find(&reqs)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get wunschfrei requests")
		return nil, mapStoreError(result.Error)
	}
	return reqs, nil
}

func (r *GormWunschfreiRepository) Delete(userID uint, date time.Time) error {
	res := r.db.Where("user_id = ? AND request_date = ?", userID, date).Delete(&models.WunschfreiRequest{})
	if res.Error != nil {
		r.logger.WithError(res.Error).Error("Failed to delete wunschfrei request")
		return mapStoreError(res.Error)
	}
	return nil
}
