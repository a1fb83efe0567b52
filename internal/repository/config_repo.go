package repository

import (
	"errors"
	"sync"

	"dienstplan/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConfigRepository interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Invalidate(key string)
}

// GormConfigRepository owns the per-key configuration cache. Writes through
// Set clear the cached entry; all mutations happen on the GUI thread, the
// mutex only guards against accidental cross-goroutine reads.
type GormConfigRepository struct {
	db     *gorm.DB
	logger *logrus.Logger

	mu    sync.RWMutex
	cache map[string]string
}

func NewGormConfigRepository(db *gorm.DB) (*GormConfigRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.ConfigStorage{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate config_storage table")
		return nil, mapStoreError(err)
	}

	return &GormConfigRepository{
		db:     db,
		logger: logger,
		cache:  make(map[string]string),
	}, nil
}

// Get returns the stored JSON for the key, with a presence flag. Values are
// cached until the key is written or invalidated.
func (r *GormConfigRepository) Get(key string) (string, bool, error) {
	r.mu.RLock()
	if v, ok := r.cache[key]; ok {
		r.mu.RUnlock()
		return v, true, nil
	}
	r.mu.RUnlock()

	var row models.ConfigStorage
	result := r.db.Where("config_key = ?", key).First(&row)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if result.Error != nil {
		r.logger.WithError(result.Error).WithField("key", key).Error("Failed to get config value")
		return "", false, mapStoreError(result.Error)
	}

	r.mu.Lock()
	r.cache[key] = row.ConfigJSON
	r.mu.Unlock()

	return row.ConfigJSON, true, nil
}

func (r *GormConfigRepository) Set(key, value string) error {
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "config_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"config_json"}),
	}).Create(&models.ConfigStorage{ConfigKey: key, ConfigJSON: value})
	if res.Error != nil {
		r.logger.WithError(res.Error).WithField("key", key).Error("Failed to set config value")
		return mapStoreError(res.Error)
	}

	r.Invalidate(key)
	r.logger.WithField("key", key).Info("Config value saved")
	return nil
}

func (r *GormConfigRepository) Invalidate(key string) {
	r.mu.Lock()
	delete(r.cache, key)
	r.mu.Unlock()
}
