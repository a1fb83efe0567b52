package service

import (
	"fmt"
	"time"

	"dienstplan/internal/models"
	"dienstplan/internal/repository"

	"github.com/sirupsen/logrus"
)

// UserService covers the employee lifecycle: creation, soft archival,
// ordering and visibility. The persisted ordering is cached until the next
// save.
type UserService struct {
	users    repository.UserRepository
	order    repository.UserOrderRepository
	resets   repository.PasswordResetRepository
	activity repository.ActivityRepository
	logger   *logrus.Logger

	orderCache []*models.UserOrder
}

func NewUserService(
	users repository.UserRepository,
	order repository.UserOrderRepository,
	resets repository.PasswordResetRepository,
	activity repository.ActivityRepository,
) *UserService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &UserService{
		users:    users,
		order:    order,
		resets:   resets,
		activity: activity,
		logger:   logger,
	}
}

func (s *UserService) Create(user *models.User) error {
	if user.Vorname == "" && user.Name == "" {
		return fmt.Errorf("Name darf nicht leer sein")
	}
	if user.Diensthund == "" {
		user.Diensthund = models.NoDog
	}
	if err := s.users.Create(user); err != nil {
		return err
	}

	s.activity.LogAction(user.ID, "user_create", user.FullName())
	return nil
}

// Archive soft-deletes the user, optionally at a future date. Archived
// users stay on rosters of months before the archival date.
func (s *UserService) Archive(id uint, when *time.Time) error {
	if err := s.users.Archive(id, when); err != nil {
		return err
	}

	details := "sofort"
	if when != nil {
		details = when.Format("2006-01-02")
	}
	s.activity.LogAction(id, "user_archive", details)
	return nil
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	return s.users.GetByID(id)
}

// UsersForMonth returns the ordered, filtered roster list for the month.
func (s *UserService) UsersForMonth(year, month int, includeHidden bool) ([]*models.User, error) {
	return s.users.GetForMonth(year, month, includeHidden)
}

// SaveOrder persists the given user id ordering and invalidates the cache.
func (s *UserService) SaveOrder(userIDs []uint) error {
	orders := make([]*models.UserOrder, 0, len(userIDs))
	for i, id := range userIDs {
		orders = append(orders, &models.UserOrder{
			UserID:    id,
			SortOrder: i,
			IsVisible: true,
		})
	}
	if err := s.order.SaveOrder(orders); err != nil {
		return err
	}

	s.orderCache = nil
	s.logger.WithField("count", len(userIDs)).Info("User order updated")
	return nil
}

// GetOrder returns the persisted ordering, cached until the next save.
func (s *UserService) GetOrder() ([]*models.UserOrder, error) {
	if s.orderCache != nil {
		return s.orderCache, nil
	}
	orders, err := s.order.GetAll()
	if err != nil {
		return nil, err
	}
	s.orderCache = orders
	return orders, nil
}

func (s *UserService) SetVisible(userID uint, visible bool) error {
	if err := s.order.SetVisible(userID, visible); err != nil {
		return err
	}
	s.orderCache = nil
	return nil
}

// RequestPasswordReset files an idempotent reset request for the user.
func (s *UserService) RequestPasswordReset(userID uint) (*models.PasswordResetRequest, error) {
	req, err := s.resets.Request(userID)
	if err != nil {
		return nil, err
	}

	s.activity.AddAdminNotification(
		fmt.Sprintf("Passwort-Zurücksetzung angefordert von Benutzer %d", userID))
	return req, nil
}
