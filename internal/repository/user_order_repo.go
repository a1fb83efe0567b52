package repository

import (
	"dienstplan/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserOrderRepository interface {
	GetAll() ([]*models.UserOrder, error)
	SaveOrder(orders []*models.UserOrder) error
	SetVisible(userID uint, visible bool) error
}

type GormUserOrderRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormUserOrderRepository(db *gorm.DB) (*GormUserOrderRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.UserOrder{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate user_order table")
		return nil, mapStoreError(err)
	}

	return &GormUserOrderRepository{db: db, logger: logger}, nil
}

func (r *GormUserOrderRepository) GetAll() ([]*models.UserOrder, error) {
	var orders []*models.UserOrder
	result := r.db.Order("sort_order ASC").Find(&orders)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get user order")
		return nil, mapStoreError(result.Error)
	}
	return orders, nil
}

// SaveOrder upserts the full ordering in one transaction.
func (r *GormUserOrderRepository) SaveOrder(orders []*models.UserOrder) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, o := range orders {
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"sort_order", "is_visible"}),
			}).Create(o)
			if res.Error != nil {
				return res.Error
			}
		}
		return nil
	})
	if err != nil {
		r.logger.WithError(err).Error("Failed to save user order")
		return mapStoreError(err)
	}

	r.logger.WithField("count", len(orders)).Info("User order saved")
	return nil
}

func (r *GormUserOrderRepository) SetVisible(userID uint, visible bool) error {
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_visible"}),
	}).Create(&models.UserOrder{UserID: userID, IsVisible: visible})
	if res.Error != nil {
		r.logger.WithError(res.Error).Error("Failed to set user visibility")
		return mapStoreError(res.Error)
	}
	return nil
}
