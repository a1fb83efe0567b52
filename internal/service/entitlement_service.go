package service

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"dienstplan/internal/models"
	"dienstplan/internal/repository"
	"dienstplan/internal/roster"

	"github.com/sirupsen/logrus"
)

// EntitlementService computes tenure-bracketed yearly vacation allowances.
// The rule list lives as a JSON blob in config_storage and is kept sorted by
// years_min on save and on load.
type EntitlementService struct {
	config   repository.ConfigRepository
	users    repository.UserRepository
	activity repository.ActivityRepository
	logger   *logrus.Logger
}

func NewEntitlementService(
	config repository.ConfigRepository,
	users repository.UserRepository,
	activity repository.ActivityRepository,
) *EntitlementService {
	return &EntitlementService{
		config:   config,
		users:    users,
		activity: activity,
		logger:   logrus.New(),
	}
}

// LoadRules returns the persisted brackets sorted ascending, falling back
// to the defaults when nothing is stored or the blob is unreadable.
func (s *EntitlementService) LoadRules() []models.TenureBracket {
	raw, ok, err := s.config.Get(models.ConfigKeyVacationRules)
	if err != nil || !ok {
		if err != nil {
			s.logger.WithError(err).Warn("Failed to load vacation rules, using defaults")
		}
		return models.DefaultTenureBrackets()
	}

	var rules []models.TenureBracket
	if err := json.Unmarshal([]byte(raw), &rules); err != nil || len(rules) == 0 {
		s.logger.WithError(err).Warn("Vacation rules blob unreadable, using defaults")
		return models.DefaultTenureBrackets()
	}

	sort.Slice(rules, func(i, j int) bool { return rules[i].YearsMin < rules[j].YearsMin })
	return rules
}

// SaveRules persists the brackets sorted ascending by years_min.
func (s *EntitlementService) SaveRules(rules []models.TenureBracket) error {
	if len(rules) == 0 {
		return fmt.Errorf("%w: leere Regelliste", roster.ErrValidation)
	}
	sorted := make([]models.TenureBracket, len(rules))
	copy(sorted, rules)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].YearsMin < sorted[j].YearsMin })

	raw, err := json.Marshal(sorted)
	if err != nil {
		return err
	}
	return s.config.Set(models.ConfigKeyVacationRules, string(raw))
}

// DaysForTenure returns the allowance of the first bracket covering the
// tenure; when none matches, the first bracket's days (or fallback when the
// list is empty).
func (s *EntitlementService) DaysForTenure(tenureYears, fallback int) int {
	rules := s.LoadRules()
	for _, b := range rules {
		if b.Contains(tenureYears) {
			return b.Days
		}
	}
	if len(rules) > 0 {
		return rules[0].Days
	}
	return fallback
}

// BatchUpdate recomputes the allowance of every active employee at the
// reference date. A changed allowance shifts the remaining days by the same
// signed delta, so already-consumed days stay consumed. One audit entry per
// change.
func (s *EntitlementService) BatchUpdate(at time.Time) (int, error) {
	users, err := s.users.GetForMonth(at.Year(), int(at.Month()), true)
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, u := range users {
		tenure := u.TenureYears(at)
		newTotal := s.DaysForTenure(tenure, u.UrlaubGesamt)
		if newTotal == u.UrlaubGesamt {
			continue
		}
		delta := newTotal - u.UrlaubGesamt
		newRest := u.UrlaubRest + delta

		if err := s.users.SetEntitlement(u.ID, newTotal, newRest); err != nil {
			s.logger.WithError(err).WithField("user_id", u.ID).Error("Failed to update entitlement")
			return changed, err
		}

		s.activity.LogAction(u.ID, "entitlement_update",
			fmt.Sprintf("Anspruch %d -> %d (Dienstjahre %d), Rest %d -> %d",
				u.UrlaubGesamt, newTotal, tenure, u.UrlaubRest, newRest))

		u.UrlaubGesamt = newTotal
		u.UrlaubRest = newRest
		changed++
	}

	s.logger.WithFields(logrus.Fields{
		"evaluated": len(users),
		"changed":   changed,
	}).Info("Entitlement batch update finished")

	return changed, nil
}
