package service

import (
	"fmt"
	"time"

	"dienstplan/internal/models"
	"dienstplan/internal/repository"
	"dienstplan/internal/roster"

	"github.com/sirupsen/logrus"
)

// RosterService orchestrates the engine: it owns the DataManager, enforces
// locks at the write boundary and runs the incremental update protocol for
// every cell edit.
type RosterService struct {
	dm       *roster.DataManager
	entries  repository.ShiftEntryRepository
	locks    repository.LockRepository
	activity repository.ActivityRepository
	logger   *logrus.Logger
}

func NewRosterService(
	registry *roster.Registry,
	users repository.UserRepository,
	entries repository.ShiftEntryRepository,
	vacations repository.VacationRepository,
	wunschfrei repository.WunschfreiRepository,
	locks repository.LockRepository,
	activity repository.ActivityRepository,
) *RosterService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	store := &storeAdapter{
		users:      users,
		entries:    entries,
		vacations:  vacations,
		wunschfrei: wunschfrei,
		locks:      locks,
	}

	return &RosterService{
		dm:       roster.NewDataManager(store, registry, logger),
		entries:  entries,
		locks:    locks,
		activity: activity,
		logger:   logger,
	}
}

// DataManager exposes the engine for read paths (display, hours, lookup).
func (s *RosterService) DataManager() *roster.DataManager {
	return s.dm
}

// Snapshot returns the loaded month, nil before the first LoadMonth.
func (s *RosterService) Snapshot() *roster.MonthSnapshot {
	return s.dm.Snapshot()
}

func (s *RosterService) LoadMonth(year, month int, includeHidden bool) (*roster.MonthSnapshot, error) {
	return s.dm.LoadMonth(year, month, includeHidden)
}

// checkWritable enforces month and day locks. overrideLock skips the
// day-lock check only; a locked month always rejects.
func (s *RosterService) checkWritable(uid uint, date time.Time, overrideLock bool) error {
	locked, err := s.locks.IsMonthLocked(date.Year(), int(date.Month()))
	if err != nil {
		return err
	}
	if locked {
		return fmt.Errorf("%w: Monat %d/%d ist abgeschlossen", roster.ErrLockedTarget, int(date.Month()), date.Year())
	}
	if overrideLock {
		return nil
	}
	lock, err := s.locks.GetDayLock(uid, date)
	if err != nil {
		return err
	}
	if lock != nil {
		return fmt.Errorf("%w: Tag %s ist gesperrt (%s)", roster.ErrLockedTarget, roster.DateKey(date), lock.Reason)
	}
	return nil
}

// EditCell runs the incremental update protocol for one cell: persist,
// reconcile caches, return the affected cells. An empty newCode deletes the
// assignment. A persist failure aborts; a cache failure after a successful
// persist degrades to ErrIntegrity with a reload recommendation.
func (s *RosterService) EditCell(uid uint, date time.Time, newCode string, overrideLock bool) ([]roster.Cell, error) {
	snap := s.dm.Snapshot()
	if snap == nil || !snap.Contains(date) {
		return nil, fmt.Errorf("%w: Monat nicht geladen", roster.ErrValidation)
	}
	registry := s.dm.Registry()
	if newCode != "" && !registry.Known(newCode) {
		return nil, fmt.Errorf("%w: unbekanntes Kürzel %q", roster.ErrValidation, newCode)
	}
	if err := s.checkWritable(uid, date, overrideLock); err != nil {
		return nil, err
	}

	oldCode := snap.RawShift(uid, roster.DateKey(date))

	// Step 1: persist. Failure aborts with no cache mutation.
	var err error
	if newCode == "" {
		err = s.entries.Delete(uid, date)
	} else {
		err = s.entries.Upsert(&models.ShiftEntry{UserID: uid, ShiftDate: date, ShiftAbbrev: newCode})
	}
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"user_id": uid,
			"date":    roster.DateKey(date),
		}).Error("Failed to persist cell edit")
		return nil, err
	}

	// Steps 2-5: reconcile the caches. The store already holds the new
	// value, so failure here is a stale-cache warning, not a rollback.
	affected, err := s.dm.ApplyEdit(uid, date, newCode)
	if err != nil {
		s.logger.WithError(err).Warn("Edit persisted but caches are stale, reload the month")
		return nil, fmt.Errorf("%w: %v", roster.ErrIntegrity, err)
	}

	s.activity.LogAction(uid, "shift_edit",
		fmt.Sprintf("%s: %q -> %q", roster.DateKey(date), oldCode, newCode))

	return affected, nil
}

// LockMonth locks the month and refreshes the snapshot flag when the month
// is currently loaded.
func (s *RosterService) LockMonth(year, month int) error {
	if err := s.locks.LockMonth(year, month); err != nil {
		return err
	}
	if snap := s.dm.Snapshot(); snap != nil && snap.Year == year && snap.Month == month {
		snap.MonthLocked = true
	}
	s.activity.LogAction(0, "month_lock", fmt.Sprintf("%04d-%02d", year, month))
	return nil
}

func (s *RosterService) UnlockMonth(year, month int) error {
	if err := s.locks.UnlockMonth(year, month); err != nil {
		return err
	}
	if snap := s.dm.Snapshot(); snap != nil && snap.Year == year && snap.Month == month {
		snap.MonthLocked = false
	}
	s.activity.LogAction(0, "month_unlock", fmt.Sprintf("%04d-%02d", year, month))
	return nil
}

// SetDayLock locks one cell and mirrors the lock into the snapshot.
func (s *RosterService) SetDayLock(uid uint, date time.Time, reason string) error {
	if err := s.locks.SetDayLock(uid, date, reason); err != nil {
		return err
	}
	if snap := s.dm.Snapshot(); snap != nil && snap.Contains(date) {
		if snap.DayLocks[uid] == nil {
			snap.DayLocks[uid] = make(map[string]string)
		}
		snap.DayLocks[uid][roster.DateKey(date)] = reason
	}
	return nil
}

func (s *RosterService) RemoveDayLock(uid uint, date time.Time) error {
	if err := s.locks.RemoveDayLock(uid, date); err != nil {
		return err
	}
	if snap := s.dm.Snapshot(); snap != nil && snap.Contains(date) {
		delete(snap.DayLocks[uid], roster.DateKey(date))
	}
	return nil
}

// RefreshIfLoaded reloads the snapshot when the given month is the loaded
// one. Services that mutate roster-relevant rows outside the cell-edit
// protocol (vacation approval, wish-free acceptance) call this afterwards.
func (s *RosterService) RefreshIfLoaded(year, month int, includeHidden bool) error {
	snap := s.dm.Snapshot()
	if snap == nil || snap.Year != year || snap.Month != month {
		return nil
	}
	_, err := s.dm.LoadMonth(year, month, includeHidden)
	return err
}
