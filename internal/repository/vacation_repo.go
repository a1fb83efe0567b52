package repository

import (
	"errors"
	"time"

	"dienstplan/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type VacationRepository interface {
	Create(req *models.VacationRequest) error
	Update(req *models.VacationRequest) error
	GetByID(id uint) (*models.VacationRequest, error)
	GetByUser(userID uint) ([]*models.VacationRequest, error)
	GetOverlapping(from, to time.Time) ([]*models.VacationRequest, error)
}

type GormVacationRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormVacationRepository(db *gorm.DB) (*GormVacationRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.VacationRequest{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate vacation_requests table")
		return nil, mapStoreError(err)
	}

	logger.Info("Vacation repository initialized")

	return &GormVacationRepository{db: db, logger: logger}, nil
}

func (r *GormVacationRepository) Create(req *models.VacationRequest) error {
	if !req.IsValid() {
		return errors.New("ungültiger Urlaubsantrag")
	}

	r.logger.WithFields(logrus.Fields{
		"user_id": req.UserID,
		"start":   req.StartDate.Format("2006-01-02"),
		"end":     req.EndDate.Format("2006-01-02"),
	}).Info("Creating vacation request")

	result := r.db.Create(req)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create vacation request")
		return mapStoreError(result.Error)
	}
	return nil
}

func (r *GormVacationRepository) Update(req *models.VacationRequest) error {
	result := r.db.Save(req)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update vacation request")
		return mapStoreError(result.Error)
	}
	return nil
}

func (r *GormVacationRepository) GetByID(id uint) (*models.VacationRequest, error) {
	var req models.VacationRequest
	result := r.db.First(&req, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get vacation request")
		return nil, mapStoreError(result.Error)
	}
	return &req, nil
}

func (r *GormVacationRepository) GetByUser(userID uint) ([]*models.VacationRequest, error) {
	var reqs []*models.VacationRequest
	result := r.db.Where("user_id = ? AND archived = ?", userID, false).
		Order("start_date DESC").Find(&reqs)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get vacation requests by user")
		return nil, mapStoreError(result.Error)
	}
	return reqs, nil
}

// GetOverlapping returns all non-archived requests whose inclusive range
// intersects [from, to].
func (r *GormVacationRepository) GetOverlapping(from, to time.Time) ([]*models.VacationRequest, error) {
	var reqs []*models.VacationRequest
	result := r.db.
		Where("archived = ? AND start_date <= ? AND end_date >= ?", false, to, from).
		Find(&reqs)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get overlapping vacation requests")
		return nil, mapStoreError(result.Error)
	}
	return reqs, nil
}
