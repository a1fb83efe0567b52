package service

import (
	"time"

	"dienstplan/internal/models"
	"dienstplan/internal/repository"
)

// storeAdapter satisfies roster.Store over the repository layer. It is the
// only bridge between the engine and the database.
type storeAdapter struct {
	users      repository.UserRepository
	entries    repository.ShiftEntryRepository
	vacations  repository.VacationRepository
	wunschfrei repository.WunschfreiRepository
	locks      repository.LockRepository
}

func (a *storeAdapter) UsersForMonth(year, month int, includeHidden bool) ([]*models.User, error) {
	return a.users.GetForMonth(year, month, includeHidden)
}

func (a *storeAdapter) ScheduleRange(from, to time.Time) ([]*models.ShiftEntry, error) {
	return a.entries.GetRange(from, to)
}

func (a *storeAdapter) VacationsOverlapping(from, to time.Time) ([]*models.VacationRequest, error) {
	return a.vacations.GetOverlapping(from, to)
}

func (a *storeAdapter) WishFreeRange(from, to time.Time) ([]*models.WunschfreiRequest, error) {
	return a.wunschfrei.GetRange(from, to)
}

func (a *storeAdapter) DayLocksRange(from, to time.Time) ([]*models.DayLock, error) {
	return a.locks.GetDayLocksRange(from, to)
}

func (a *storeAdapter) MonthLocked(year, month int) (bool, error) {
	return a.locks.IsMonthLocked(year, month)
}
