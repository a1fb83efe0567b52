package repository

import (
	"errors"
	"time"

	"dienstplan/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetAll() ([]*models.User, error)
	GetForMonth(year, month int, includeHidden bool) ([]*models.User, error)
	Archive(id uint, when *time.Time) error
	SetEntitlement(id uint, total, rest int) error
}

type GormUserRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormUserRepository(db *gorm.DB) (*GormUserRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.User{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate users table")
		return nil, mapStoreError(err)
	}

	logger.Info("User repository initialized")

	return &GormUserRepository{db: db, logger: logger}, nil
}

func (r *GormUserRepository) Create(user *models.User) error {
	r.logger.WithFields(logrus.Fields{
		"vorname": user.Vorname,
		"name":    user.Name,
	}).Info("Creating user")

	result := r.db.Create(user)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create user")
		return mapStoreError(result.Error)
	}
	return nil
}

func (r *GormUserRepository) Update(user *models.User) error {
	result := r.db.Save(user)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update user")
		return mapStoreError(result.Error)
	}
	return nil
}

func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	result := r.db.First(&user, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get user by ID")
		return nil, mapStoreError(result.Error)
	}
	return &user, nil
}

func (r *GormUserRepository) GetAll() ([]*models.User, error) {
	var users []*models.User
	result := r.db.Order("name ASC").Find(&users)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get all users")
		return nil, mapStoreError(result.Error)
	}
	return users, nil
}

// GetForMonth returns the roster-relevant users for the month: approved, not
// archived as of the month start, activated no later than the month end.
// Ordering is persisted sort order ascending, then family name. Users hidden
// via user_order are skipped unless includeHidden is set.
func (r *GormUserRepository) GetForMonth(year, month int, includeHidden bool) ([]*models.User, error) {
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	query := r.db.Model(&models.User{}).
		Select("users.*").
		Joins("LEFT JOIN user_order ON user_order.user_id = users.id").
		Where("users.is_approved = ?", true).
		Where("users.is_archived = ? OR users.archived_date > ?", false, monthStart).
		Where("users.activation_date IS NULL OR users.activation_date <= ?", monthEnd).
		Order("COALESCE(user_order.sort_order, 999999) ASC, users.name ASC")

	if !includeHidden {
		query = query.Where("user_order.is_visible IS NULL OR user_order.is_visible = ?", true)
	}

	var users []*models.User
	result := query.Find(&users)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get users for month")
		return nil, mapStoreError(result.Error)
	}

	r.logger.WithFields(logrus.Fields{
		"year":  year,
		"month": month,
		"count": len(users),
	}).Debug("Retrieved users for month")

	return users, nil
}

// Archive soft-deletes the user. A future-dated `when` keeps the user on
// rosters up to that date.
func (r *GormUserRepository) Archive(id uint, when *time.Time) error {
	updates := map[string]interface{}{
		"is_archived":   true,
		"archived_date": when,
	}
	result := r.db.Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to archive user")
		return mapStoreError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("Benutzer nicht gefunden")
	}

	r.logger.WithField("id", id).Info("User archived")
	return nil
}

func (r *GormUserRepository) SetEntitlement(id uint, total, rest int) error {
	result := r.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"urlaub_gesamt": total,
		"urlaub_rest":   rest,
	})
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update entitlement")
		return mapStoreError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("Benutzer nicht gefunden")
	}
	return nil
}
