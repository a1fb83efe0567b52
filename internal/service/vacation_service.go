package service

import (
	"fmt"
	"time"

	"dienstplan/internal/models"
	"dienstplan/internal/repository"
	"dienstplan/internal/roster"

	"github.com/sirupsen/logrus"
)

// VacationService drives the vacation request state machine and the
// materialization of approved ranges into the schedule.
type VacationService struct {
	vacations repository.VacationRepository
	entries   repository.ShiftEntryRepository
	locks     repository.LockRepository
	activity  repository.ActivityRepository
	logger    *logrus.Logger
}

func NewVacationService(
	vacations repository.VacationRepository,
	entries repository.ShiftEntryRepository,
	locks repository.LockRepository,
	activity repository.ActivityRepository,
) *VacationService {
	return &VacationService{
		vacations: vacations,
		entries:   entries,
		locks:     locks,
		activity:  activity,
		logger:    logrus.New(),
	}
}

// Submit files a new pending request and notifies the administrators.
func (s *VacationService) Submit(userID uint, start, end time.Time) (*models.VacationRequest, error) {
	req := &models.VacationRequest{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
		Status:    models.VacationPending,
	}
	if !req.IsValid() {
		return nil, fmt.Errorf("%w: Zeitraum %s bis %s", roster.ErrValidation,
			roster.DateKey(start), roster.DateKey(end))
	}
	if err := s.vacations.Create(req); err != nil {
		return nil, err
	}

	s.activity.LogAction(userID, "vacation_submit",
		fmt.Sprintf("%s bis %s", roster.DateKey(start), roster.DateKey(end)))
	s.activity.AddAdminNotification(
		fmt.Sprintf("Neuer Urlaubsantrag von Benutzer %d: %s bis %s",
			userID, roster.DateKey(start), roster.DateKey(end)))

	return req, nil
}

// checkRangeUnlocked rejects when any month covered by the range is locked.
func (s *VacationService) checkRangeUnlocked(start, end time.Time) error {
	for d := roster.Date(start.Year(), start.Month(), 1); !d.After(end); d = d.AddDate(0, 1, 0) {
		locked, err := s.locks.IsMonthLocked(d.Year(), int(d.Month()))
		if err != nil {
			return err
		}
		if locked {
			return fmt.Errorf("%w: Monat %d/%d ist abgeschlossen", roster.ErrLockedTarget, int(d.Month()), d.Year())
		}
	}
	return nil
}

// Approve transitions Pending -> Genehmigt and materializes one U entry per
// day of the inclusive range. Days that already carry a concrete code are
// left untouched; the display overlay renders them as U anyway, and
// cancellation can then take back exactly what approval wrote.
func (s *VacationService) Approve(id uint) error {
	req, err := s.vacations.GetByID(id)
	if err != nil {
		return err
	}
	if req == nil {
		return fmt.Errorf("%w: Urlaubsantrag %d nicht gefunden", roster.ErrValidation, id)
	}
	if !req.CanTransition(models.VacationApproved) {
		return fmt.Errorf("%w: Antrag im Status %q kann nicht genehmigt werden", roster.ErrValidation, req.Status)
	}
	if err := s.checkRangeUnlocked(req.StartDate, req.EndDate); err != nil {
		return err
	}

	for d := req.StartDate; !d.After(req.EndDate); d = d.AddDate(0, 0, 1) {
		existing, err := s.entries.Get(req.UserID, d)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		err = s.entries.Upsert(&models.ShiftEntry{
			UserID:      req.UserID,
			ShiftDate:   d,
			ShiftAbbrev: roster.CodeVacation,
		})
		if err != nil {
			return err
		}
	}

	req.Status = models.VacationApproved
	req.UserNotified = false
	if err := s.vacations.Update(req); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"id":      req.ID,
		"user_id": req.UserID,
	}).Info("Vacation request approved")
	s.activity.LogAction(req.UserID, "vacation_approve",
		fmt.Sprintf("%s bis %s", roster.DateKey(req.StartDate), roster.DateKey(req.EndDate)))

	return nil
}

// Cancel transitions Pending or Genehmigt -> Storniert. Cancelling an
// approved request removes exactly the U entries in its range and nothing
// else.
func (s *VacationService) Cancel(id uint) error {
	req, err := s.vacations.GetByID(id)
	if err != nil {
		return err
	}
	if req == nil {
		return fmt.Errorf("%w: Urlaubsantrag %d nicht gefunden", roster.ErrValidation, id)
	}
	if !req.CanTransition(models.VacationCancelled) {
		return fmt.Errorf("%w: Antrag im Status %q kann nicht storniert werden", roster.ErrValidation, req.Status)
	}

	if req.Status == models.VacationApproved {
		if err := s.checkRangeUnlocked(req.StartDate, req.EndDate); err != nil {
			return err
		}
		err = s.entries.DeleteWhereAbbrev(req.UserID, req.StartDate, req.EndDate, roster.CodeVacation)
		if err != nil {
			return err
		}
	}

	req.Status = models.VacationCancelled
	req.UserNotified = false
	if err := s.vacations.Update(req); err != nil {
		return err
	}

	s.activity.LogAction(req.UserID, "vacation_cancel",
		fmt.Sprintf("%s bis %s", roster.DateKey(req.StartDate), roster.DateKey(req.EndDate)))

	return nil
}

// Reject transitions Pending -> Abgelehnt. Terminal.
func (s *VacationService) Reject(id uint) error {
	req, err := s.vacations.GetByID(id)
	if err != nil {
		return err
	}
	if req == nil {
		return fmt.Errorf("%w: Urlaubsantrag %d nicht gefunden", roster.ErrValidation, id)
	}
	if !req.CanTransition(models.VacationRejected) {
		return fmt.Errorf("%w: Antrag im Status %q kann nicht abgelehnt werden", roster.ErrValidation, req.Status)
	}

	req.Status = models.VacationRejected
	req.UserNotified = false
	if err := s.vacations.Update(req); err != nil {
		return err
	}

	s.activity.LogAction(req.UserID, "vacation_reject",
		fmt.Sprintf("%s bis %s", roster.DateKey(req.StartDate), roster.DateKey(req.EndDate)))

	return nil
}

func (s *VacationService) RequestsForUser(userID uint) ([]*models.VacationRequest, error) {
	return s.vacations.GetByUser(userID)
}
