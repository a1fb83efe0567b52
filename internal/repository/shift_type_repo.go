package repository

import (
	"dienstplan/internal/models"
	"dienstplan/internal/roster"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShiftTypeRepository interface {
	GetAll() ([]models.ShiftType, error)
	Upsert(st *models.ShiftType) error
	SeedDefaults() error
}

type GormShiftTypeRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormShiftTypeRepository(db *gorm.DB) (*GormShiftTypeRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.ShiftType{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate shift_types table")
		return nil, mapStoreError(err)
	}

	return &GormShiftTypeRepository{db: db, logger: logger}, nil
}

func (r *GormShiftTypeRepository) GetAll() ([]models.ShiftType, error) {
	var types []models.ShiftType
	result := r.db.Order("abbrev ASC").Find(&types)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get shift types")
		return nil, mapStoreError(result.Error)
	}
	return types, nil
}

func (r *GormShiftTypeRepository) Upsert(st *models.ShiftType) error {
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "abbrev"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "color", "hours", "start_time", "end_time"}),
	}).Create(st)
	if res.Error != nil {
		r.logger.WithError(res.Error).Error("Failed to upsert shift type")
		return mapStoreError(res.Error)
	}
	return nil
}

// SeedDefaults writes the standard shift table into an empty database.
func (r *GormShiftTypeRepository) SeedDefaults() error {
	var count int64
	if err := r.db.Model(&models.ShiftType{}).Count(&count).Error; err != nil {
		return mapStoreError(err)
	}
	if count > 0 {
		return nil
	}

	defaults := roster.DefaultShiftTypes()
	if err := r.db.Create(&defaults).Error; err != nil {
		r.logger.WithError(err).Error("Failed to seed shift types")
		return mapStoreError(err)
	}

	r.logger.WithField("count", len(defaults)).Info("Shift types seeded")
	return nil
}
