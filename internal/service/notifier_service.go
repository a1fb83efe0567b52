package service

import (
	"dienstplan/internal/repository"
	"dienstplan/pkg/notify"

	"github.com/sirupsen/logrus"
)

// NotifierService drains unsent admin notifications and fans them out to
// the configured admin chats. Without a configured client it degrades to
// log-only; the rows stay queued for a later run.
type NotifierService struct {
	activity repository.ActivityRepository
	client   *notify.Client
	chatIDs  []int64
	logger   *logrus.Logger
}

func NewNotifierService(activity repository.ActivityRepository, client *notify.Client, chatIDs []int64) *NotifierService {
	return &NotifierService{
		activity: activity,
		client:   client,
		chatIDs:  chatIDs,
		logger:   logrus.New(),
	}
}

// Flush sends every queued notification. Failed sends stay unsent.
func (s *NotifierService) Flush() error {
	notes, err := s.activity.GetUnsentNotifications()
	if err != nil {
		return err
	}

	for _, n := range notes {
		if s.client == nil || len(s.chatIDs) == 0 {
			s.logger.WithField("message", n.Message).Info("Admin notification (no transport configured)")
			s.activity.MarkNotificationSent(n.ID)
			continue
		}
		if err := s.client.Broadcast(s.chatIDs, n.Message); err != nil {
			s.logger.WithError(err).WithField("id", n.ID).Warn("Failed to send admin notification")
			continue
		}
		if err := s.activity.MarkNotificationSent(n.ID); err != nil {
			s.logger.WithError(err).Warn("Notification sent but could not be marked")
		}
	}
	return nil
}
