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

type ShiftEntryRepository interface {
	Upsert(entry *models.ShiftEntry) error
	Delete(userID uint, date time.Time) error
	DeleteWhereAbbrev(userID uint, from, to time.Time, abbrev string) error
	Get(userID uint, date time.Time) (*models.ShiftEntry, error)
	GetRange(from, to time.Time) ([]*models.ShiftEntry, error)
}

type GormShiftEntryRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormShiftEntryRepository(db *gorm.DB) (*GormShiftEntryRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.ShiftEntry{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate shift_schedule table")
		return nil, mapStoreError(err)
	}

	logger.Info("Shift entry repository initialized")

	return &GormShiftEntryRepository{db: db, logger: logger}, nil
}

// Upsert writes the assignment, replacing any existing code on the same
// (user, date) key.
func (r *GormShiftEntryRepository) Upsert(entry *models.ShiftEntry) error {
	if !entry.IsValid() {
		return errors.New("ungültiger Dienstplaneintrag")
	}

	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "shift_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"shift_abbrev", "updated_at"}),
	}).Create(entry)
	if res.Error != nil {
		r.logger.WithError(res.Error).WithFields(logrus.Fields{
			"user_id": entry.UserID,
			"date":    roster.DateKey(entry.ShiftDate),
		}).Error("Failed to upsert shift entry")
		return mapStoreError(res.Error)
	}
	return nil
}

// Delete removes the assignment. Deleting an absent entry is not an error.
func (r *GormShiftEntryRepository) Delete(userID uint, date time.Time) error {
	res := r.db.Where("user_id = ? AND shift_date = ?", userID, date).Delete(&models.ShiftEntry{})
	if res.Error != nil {
		r.logger.WithError(res.Error).Error("Failed to delete shift entry")
		return mapStoreError(res.Error)
	}
	return nil
}

// DeleteWhereAbbrev removes entries in the inclusive range carrying exactly
// the given code. Used by vacation cancellation to take back only the U
// entries approval wrote.
func (r *GormShiftEntryRepository) DeleteWhereAbbrev(userID uint, from, to time.Time, abbrev string) error {
	res := r.db.
		Where("user_id = ? AND shift_date BETWEEN ? AND ? AND shift_abbrev = ?", userID, from, to, abbrev).
		Delete(&models.ShiftEntry{})
	if res.Error != nil {
		r.logger.WithError(res.Error).Error("Failed to delete shift entries by abbrev")
		return mapStoreError(res.Error)
	}

	r.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"from":    roster.DateKey(from),
		"to":      roster.DateKey(to),
		"abbrev":  abbrev,
		"removed": res.RowsAffected,
	}).Debug("Shift entries removed")
	return nil
}

func (r *GormShiftEntryRepository) Get(userID uint, date time.Time) (*models.ShiftEntry, error) {
	var entry models.ShiftEntry
	result := r.db.Where("user_id = ? AND shift_date = ?", userID, date).First(&entry)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get shift entry")
		return nil, mapStoreError(result.Error)
	}
	return &entry, nil
}

func (r *GormShiftEntryRepository) GetRange(from, to time.Time) ([]*models.ShiftEntry, error) {
	var entries []*models.ShiftEntry
	result := r.db.Where("shift_date BETWEEN ? AND ?", from, to).Find(&entries)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get shift entries")
		return nil, mapStoreError(result.Error)
	}
	return entries, nil
}
