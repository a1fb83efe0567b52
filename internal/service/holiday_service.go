package service

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"dienstplan/internal/models"
	"dienstplan/internal/repository"
	"dienstplan/internal/roster"

	"github.com/sirupsen/logrus"
)

// HolidayService serves per-year holiday maps from the HOLIDAYS_NEW blob in
// config_storage, with a per-year cache. A legacy holidays.json file is
// migrated into the store on first load and renamed out of the way.
type HolidayService struct {
	config repository.ConfigRepository
	logger *logrus.Logger

	cache map[int]map[string]string // year -> ISO date -> name
}

func NewHolidayService(config repository.ConfigRepository) *HolidayService {
	return &HolidayService{
		config: config,
		logger: logrus.New(),
		cache:  make(map[int]map[string]string),
	}
}

func (s *HolidayService) loadBlob() (map[string]map[string]string, error) {
	raw, ok, err := s.config.Get(models.ConfigKeyHolidays)
	if err != nil {
		return nil, err
	}
	blob := make(map[string]map[string]string)
	if !ok || raw == "" {
		return blob, nil
	}
	if err := json.Unmarshal([]byte(raw), &blob); err != nil {
		s.logger.WithError(err).Warn("Holiday blob unreadable, treating as empty")
		return make(map[string]map[string]string), nil
	}
	return blob, nil
}

// GetYear returns the holiday map for the year (ISO date -> name).
func (s *HolidayService) GetYear(year int) (map[string]string, error) {
	if cached, ok := s.cache[year]; ok {
		return cached, nil
	}

	blob, err := s.loadBlob()
	if err != nil {
		return nil, err
	}
	holidays := blob[strconv.Itoa(year)]
	if holidays == nil {
		holidays = make(map[string]string)
	}
	s.cache[year] = holidays
	return holidays, nil
}

// SaveYear replaces the year's holidays and clears the caches.
func (s *HolidayService) SaveYear(year int, holidays map[string]string) error {
	blob, err := s.loadBlob()
	if err != nil {
		return err
	}
	blob[strconv.Itoa(year)] = holidays

	raw, err := json.Marshal(blob)
	if err != nil {
		return err
	}
	if err := s.config.Set(models.ConfigKeyHolidays, string(raw)); err != nil {
		return err
	}

	delete(s.cache, year)
	s.logger.WithFields(logrus.Fields{
		"year":  year,
		"count": len(holidays),
	}).Info("Holidays saved")
	return nil
}

// IsHoliday reports whether the date is a holiday, with its name.
func (s *HolidayService) IsHoliday(date time.Time) (string, bool) {
	holidays, err := s.GetYear(date.Year())
	if err != nil {
		return "", false
	}
	name, ok := holidays[roster.DateKey(date)]
	return name, ok
}

// MigrateLegacyFile imports a legacy holidays.json ({year: {iso: name}})
// into config_storage and renames the file to *.migrated. Missing file is
// not an error.
func (s *HolidayService) MigrateLegacyFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read legacy holiday file: %w", err)
	}

	var legacy map[string]map[string]string
	if err := json.Unmarshal(data, &legacy); err != nil {
		return fmt.Errorf("failed to unmarshal legacy holiday file: %w", err)
	}

	blob, err := s.loadBlob()
	if err != nil {
		return err
	}
	for yearStr, holidays := range legacy {
		if _, exists := blob[yearStr]; !exists {
			blob[yearStr] = holidays
		}
	}

	raw, err := json.Marshal(blob)
	if err != nil {
		return err
	}
	if err := s.config.Set(models.ConfigKeyHolidays, string(raw)); err != nil {
		return err
	}

	if err := os.Rename(path, path+".migrated"); err != nil {
		s.logger.WithError(err).Warn("Holiday file migrated but could not be renamed")
	}

	s.cache = make(map[int]map[string]string)
	s.logger.WithField("years", len(legacy)).Info("Legacy holiday file migrated")
	return nil
}
