package repository

import (
	"errors"
	"time"

	"dienstplan/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LockRepository interface {
	LockMonth(year, month int) error
	UnlockMonth(year, month int) error
	IsMonthLocked(year, month int) (bool, error)
	SetDayLock(userID uint, date time.Time, reason string) error
	RemoveDayLock(userID uint, date time.Time) error
	GetDayLock(userID uint, date time.Time) (*models.DayLock, error)
	GetDayLocksRange(from, to time.Time) ([]*models.DayLock, error)
}

type GormLockRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormLockRepository(db *gorm.DB) (*GormLockRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.LockedMonth{}, &models.DayLock{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate lock tables")
		return nil, mapStoreError(err)
	}

	return &GormLockRepository{db: db, logger: logger}, nil
}

// LockMonth is idempotent: locking a locked month is a no-op.
func (r *GormLockRepository) LockMonth(year, month int) error {
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.LockedMonth{Year: year, Month: month})
	if res.Error != nil {
		r.logger.WithError(res.Error).Error("Failed to lock month")
		return mapStoreError(res.Error)
	}

	r.logger.WithFields(logrus.Fields{"year": year, "month": month}).Info("Month locked")
	return nil
}

func (r *GormLockRepository) UnlockMonth(year, month int) error {
	res := r.db.Where("year = ? AND month = ?", year, month).Delete(&models.LockedMonth{})
	if res.Error != nil {
		r.logger.WithError(res.Error).Error("Failed to unlock month")
		return mapStoreError(res.Error)
	}

	r.logger.WithFields(logrus.Fields{"year": year, "month": month}).Info("Month unlocked")
	return nil
}

func (r *GormLockRepository) IsMonthLocked(year, month int) (bool, error) {
	var count int64
	result := r.db.Model(&models.LockedMonth{}).
		Where("year = ? AND month = ?", year, month).
		Count(&count)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to check month lock")
		return false, mapStoreError(result.Error)
	}
	return count > 0, nil
}

func (r *GormLockRepository) SetDayLock(userID uint, date time.Time, reason string) error {
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"reason"}),
	}).Create(&models.DayLock{UserID: userID, Date: date, Reason: reason})
	if res.Error != nil {
		r.logger.WithError(res.Error).Error("Failed to set day lock")
		return mapStoreError(res.Error)
	}
	return nil
}

func (r *GormLockRepository) RemoveDayLock(userID uint, date time.Time) error {
	res := r.db.Where("user_id = ? AND date = ?", userID, date).Delete(&models.DayLock{})
	if res.Error != nil {
		r.logger.WithError(res.Error).Error("Failed to remove day lock")
		return mapStoreError(res.Error)
	}
	return nil
}

func (r *GormLockRepository) GetDayLock(userID uint, date time.Time) (*models.DayLock, error) {
	var lock models.DayLock
	result := r.db.Where("user_id = ? AND date = ?", userID, date).First(&lock)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get day lock")
		return nil, mapStoreError(result.Error)
	}
	return &lock, nil
}

func (r *GormLockRepository) GetDayLocksRange(from, to time.Time) ([]*models.DayLock, error) {
	var locks []*models.DayLock
	result := r.db.Where("date BETWEEN ? AND ?", from, to).Find(&locks)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get day locks")
		return nil, mapStoreError(result.Error)
	}
	return locks, nil
}
