package roster

import (
	"io"
	"time"

	"dienstplan/internal/models"

	"github.com/sirupsen/logrus"
)

// fakeStore serves the Store interface from in-memory fixtures.
type fakeStore struct {
	users     []*models.User
	entries   []*models.ShiftEntry
	vacations []*models.VacationRequest
	wishes    []*models.WunschfreiRequest
	locks     []*models.DayLock
	lockedSet map[[2]int]bool

	scheduleFetches int
}

func inRange(d, from, to time.Time) bool {
	return !d.Before(from) && !d.After(to)
}

func (f *fakeStore) UsersForMonth(year, month int, includeHidden bool) ([]*models.User, error) {
	return f.users, nil
}

func (f *fakeStore) ScheduleRange(from, to time.Time) ([]*models.ShiftEntry, error) {
	f.scheduleFetches++
	var out []*models.ShiftEntry
	for _, e := range f.entries {
		if inRange(e.ShiftDate, from, to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) VacationsOverlapping(from, to time.Time) ([]*models.VacationRequest, error) {
	var out []*models.VacationRequest
	for _, v := range f.vacations {
		if !v.StartDate.After(to) && !v.EndDate.Before(from) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeStore) WishFreeRange(from, to time.Time) ([]*models.WunschfreiRequest, error) {
	var out []*models.WunschfreiRequest
	for _, w := range f.wishes {
		if inRange(w.RequestDate, from, to) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeStore) DayLocksRange(from, to time.Time) ([]*models.DayLock, error) {
	var out []*models.DayLock
	for _, l := range f.locks {
		if inRange(l.Date, from, to) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStore) MonthLocked(year, month int) (bool, error) {
	return f.lockedSet[[2]int{year, month}], nil
}

// setEntry mirrors an edit into the fixture so a reload sees the same data.
func (f *fakeStore) setEntry(uid uint, date time.Time, code string) {
	for i, e := range f.entries {
		if e.UserID == uid && e.ShiftDate.Equal(date) {
			if code == "" {
				f.entries = append(f.entries[:i], f.entries[i+1:]...)
			} else {
				e.ShiftAbbrev = code
			}
			return
		}
	}
	if code != "" {
		f.entries = append(f.entries, &models.ShiftEntry{UserID: uid, ShiftDate: date, ShiftAbbrev: code})
	}
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testUser(id uint, name, dog string) *models.User {
	return &models.User{
		ID:         id,
		Vorname:    "Test",
		Name:       name,
		IsApproved: true,
		Diensthund: dog,
	}
}

func entry(uid uint, date time.Time, code string) *models.ShiftEntry {
	return &models.ShiftEntry{UserID: uid, ShiftDate: date, ShiftAbbrev: code}
}

// loadManager builds a manager over the default registry and loads the month.
func loadManager(store *fakeStore, year, month int) (*DataManager, *MonthSnapshot, error) {
	registry := NewRegistry(DefaultShiftTypes(), testLogger())
	dm := NewDataManager(store, registry, testLogger())
	snap, err := dm.LoadMonth(year, month, false)
	return dm, snap, err
}
