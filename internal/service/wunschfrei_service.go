package service

import (
	"fmt"
	"time"

	"dienstplan/internal/models"
	"dienstplan/internal/repository"
	"dienstplan/internal/roster"

	"github.com/sirupsen/logrus"
)

// WunschfreiService drives the wish-free request state machine. Acceptance
// is canonicalized on write to the "Akzeptiert von ..." statuses; the legacy
// "Genehmigt" value is only honored on read.
type WunschfreiService struct {
	requests repository.WunschfreiRepository
	entries  repository.ShiftEntryRepository
	activity repository.ActivityRepository
	logger   *logrus.Logger
}

func NewWunschfreiService(
	requests repository.WunschfreiRepository,
	entries repository.ShiftEntryRepository,
	activity repository.ActivityRepository,
) *WunschfreiService {
	return &WunschfreiService{
		requests: requests,
		entries:  entries,
		activity: activity,
		logger:   logrus.New(),
	}
}

// Submit files or resubmits a request. Resubmission upserts on the
// (user, date) unique key and resets the status to Pending.
func (s *WunschfreiService) Submit(userID uint, date time.Time, requestedShift, origin string) (*models.WunschfreiRequest, error) {
	if requestedShift == "" {
		requestedShift = models.RequestedShiftWF
	}
	if origin != models.RequestedByUser && origin != models.RequestedByAdmin {
		return nil, fmt.Errorf("%w: unbekannter Absender %q", roster.ErrValidation, origin)
	}

	req := &models.WunschfreiRequest{
		UserID:         userID,
		RequestDate:    date,
		RequestedShift: requestedShift,
		Status:         models.WunschfreiPending,
		RequestedBy:    origin,
	}
	if err := s.requests.Upsert(req); err != nil {
		return nil, err
	}

	s.activity.LogAction(userID, "wunschfrei_submit",
		fmt.Sprintf("%s (%s)", roster.DateKey(date), requestedShift))
	if origin == models.RequestedByUser {
		s.activity.AddAdminNotification(
			fmt.Sprintf("Neuer Wunschfrei-Antrag von Benutzer %d für %s", userID, roster.DateKey(date)))
	}

	return req, nil
}

// Accept resolves a pending request in favor of the requester and
// materializes the schedule entry: X for a plain wish-free on an empty day,
// otherwise the requested code.
func (s *WunschfreiService) Accept(id uint) error {
	req, err := s.requests.GetByID(id)
	if err != nil {
		return err
	}
	if req == nil {
		return fmt.Errorf("%w: Wunschfrei-Antrag %d nicht gefunden", roster.ErrValidation, id)
	}

	target := models.WunschfreiAcceptedByAdmin
	if req.RequestedBy == models.RequestedByAdmin {
		target = models.WunschfreiAcceptedByUser
	}
	if !req.CanTransition(target) {
		return fmt.Errorf("%w: Antrag im Status %q kann nicht akzeptiert werden", roster.ErrValidation, req.Status)
	}

	abbrev := req.MaterializedAbbrev()
	existing, err := s.entries.Get(req.UserID, req.RequestDate)
	if err != nil {
		return err
	}
	if abbrev == roster.CodeWishFree && existing != nil {
		// A concrete shift on the day wins over the X marker.
		abbrev = ""
	}
	if abbrev != "" {
		err = s.entries.Upsert(&models.ShiftEntry{
			UserID:      req.UserID,
			ShiftDate:   req.RequestDate,
			ShiftAbbrev: abbrev,
		})
		if err != nil {
			return err
		}
	}

	req.Status = target
	req.Notified = false
	if err := s.requests.Update(req); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"id":      req.ID,
		"user_id": req.UserID,
		"status":  target,
	}).Info("Wunschfrei request accepted")
	s.activity.LogAction(req.UserID, "wunschfrei_accept", roster.DateKey(req.RequestDate))

	return nil
}

// Reject resolves a pending request against the requester, with an optional
// reason.
func (s *WunschfreiService) Reject(id uint, reason string) error {
	req, err := s.requests.GetByID(id)
	if err != nil {
		return err
	}
	if req == nil {
		return fmt.Errorf("%w: Wunschfrei-Antrag %d nicht gefunden", roster.ErrValidation, id)
	}

	target := models.WunschfreiRejectedByAdmin
	if req.RequestedBy == models.RequestedByAdmin {
		target = models.WunschfreiRejectedByUser
	}
	if !req.CanTransition(target) {
		return fmt.Errorf("%w: Antrag im Status %q kann nicht abgelehnt werden", roster.ErrValidation, req.Status)
	}

	req.Status = target
	req.RejectionReason = reason
	req.Notified = false
	if err := s.requests.Update(req); err != nil {
		return err
	}

	s.activity.LogAction(req.UserID, "wunschfrei_reject",
		fmt.Sprintf("%s: %s", roster.DateKey(req.RequestDate), reason))

	return nil
}

// Withdraw deletes the user's request. If it had been accepted, the
// materialized schedule entry is taken back as well.
func (s *WunschfreiService) Withdraw(userID uint, date time.Time) error {
	req, err := s.requests.Get(userID, date)
	if err != nil {
		return err
	}
	if req == nil {
		return nil
	}

	if req.IsAccepted() {
		abbrev := req.MaterializedAbbrev()
		existing, err := s.entries.Get(userID, date)
		if err != nil {
			return err
		}
		if existing != nil && existing.ShiftAbbrev == abbrev {
			if err := s.entries.Delete(userID, date); err != nil {
				return err
			}
		}
	}

	if err := s.requests.Delete(userID, date); err != nil {
		return err
	}

	s.activity.LogAction(userID, "wunschfrei_withdraw", roster.DateKey(date))
	return nil
}
