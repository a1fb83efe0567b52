package service

import (
	"fmt"
	"io"
	"time"

	"dienstplan/internal/models"
	"dienstplan/internal/roster"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func cellKey(userID uint, date time.Time) string {
	return fmt.Sprintf("%d|%s", userID, roster.DateKey(date))
}

// fakeEntryRepo keeps the schedule in a map keyed by (user, date).
type fakeEntryRepo struct {
	rows      map[string]*models.ShiftEntry
	upsertErr error
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{rows: make(map[string]*models.ShiftEntry)}
}

func (f *fakeEntryRepo) Upsert(entry *models.ShiftEntry) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.rows[cellKey(entry.UserID, entry.ShiftDate)] = entry
	return nil
}

func (f *fakeEntryRepo) Delete(userID uint, date time.Time) error {
	delete(f.rows, cellKey(userID, date))
	return nil
}

func (f *fakeEntryRepo) DeleteWhereAbbrev(userID uint, from, to time.Time, abbrev string) error {
	for key, e := range f.rows {
		if e.UserID == userID && e.ShiftAbbrev == abbrev &&
			!e.ShiftDate.Before(from) && !e.ShiftDate.After(to) {
			delete(f.rows, key)
		}
	}
	return nil
}

func (f *fakeEntryRepo) Get(userID uint, date time.Time) (*models.ShiftEntry, error) {
	return f.rows[cellKey(userID, date)], nil
}

func (f *fakeEntryRepo) GetRange(from, to time.Time) ([]*models.ShiftEntry, error) {
	var out []*models.ShiftEntry
	for _, e := range f.rows {
		if !e.ShiftDate.Before(from) && !e.ShiftDate.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeVacationRepo struct {
	rows   map[uint]*models.VacationRequest
	nextID uint
}

func newFakeVacationRepo() *fakeVacationRepo {
	return &fakeVacationRepo{rows: make(map[uint]*models.VacationRequest)}
}

func (f *fakeVacationRepo) Create(req *models.VacationRequest) error {
	f.nextID++
	req.ID = f.nextID
	f.rows[req.ID] = req
	return nil
}

func (f *fakeVacationRepo) Update(req *models.VacationRequest) error {
	f.rows[req.ID] = req
	return nil
}

func (f *fakeVacationRepo) GetByID(id uint) (*models.VacationRequest, error) {
	return f.rows[id], nil
}

func (f *fakeVacationRepo) GetByUser(userID uint) ([]*models.VacationRequest, error) {
	var out []*models.VacationRequest
	for _, v := range f.rows {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVacationRepo) GetOverlapping(from, to time.Time) ([]*models.VacationRequest, error) {
	var out []*models.VacationRequest
	for _, v := range f.rows {
		if !v.StartDate.After(to) && !v.EndDate.Before(from) {
			out = append(out, v)
		}
	}
	return out, nil
}

type fakeWunschfreiRepo struct {
	rows   map[uint]*models.WunschfreiRequest
	nextID uint
}

func newFakeWunschfreiRepo() *fakeWunschfreiRepo {
	return &fakeWunschfreiRepo{rows: make(map[uint]*models.WunschfreiRequest)}
}

func (f *fakeWunschfreiRepo) Upsert(req *models.WunschfreiRequest) error {
	for _, existing := range f.rows {
		if existing.UserID == req.UserID && existing.RequestDate.Equal(req.RequestDate) {
			existing.RequestedShift = req.RequestedShift
			existing.Status = req.Status
			existing.RequestedBy = req.RequestedBy
			existing.RejectionReason = ""
			existing.Notified = false
			req.ID = existing.ID
			return nil
		}
	}
	f.nextID++
	req.ID = f.nextID
	f.rows[req.ID] = req
	return nil
}

func (f *fakeWunschfreiRepo) Update(req *models.WunschfreiRequest) error {
	f.rows[req.ID] = req
	return nil
}

func (f *fakeWunschfreiRepo) Get(userID uint, date time.Time) (*models.WunschfreiRequest, error) {
	for _, w := range f.rows {
		if w.UserID == userID && w.RequestDate.Equal(date) {
			return w, nil
		}
	}
	return nil, nil
}

func (f *fakeWunschfreiRepo) GetByID(id uint) (*models.WunschfreiRequest, error) {
	return f.rows[id], nil
}

func (f *fakeWunschfreiRepo) GetRange(from, to time.Time) ([]*models.WunschfreiRequest, error) {
	var out []*models.WunschfreiRequest
	for _, w := range f.rows {
		if !w.RequestDate.Before(from) && !w.RequestDate.After(to) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWunschfreiRepo) Delete(userID uint, date time.Time) error {
	for id, w := range f.rows {
		if w.UserID == userID && w.RequestDate.Equal(date) {
			delete(f.rows, id)
		}
	}
	return nil
}

type fakeLockRepo struct {
	months   map[[2]int]bool
	dayLocks map[string]string
}

func newFakeLockRepo() *fakeLockRepo {
	return &fakeLockRepo{
		months:   make(map[[2]int]bool),
		dayLocks: make(map[string]string),
	}
}

func (f *fakeLockRepo) LockMonth(year, month int) error {
	f.months[[2]int{year, month}] = true
	return nil
}

func (f *fakeLockRepo) UnlockMonth(year, month int) error {
	delete(f.months, [2]int{year, month})
	return nil
}

func (f *fakeLockRepo) IsMonthLocked(year, month int) (bool, error) {
	return f.months[[2]int{year, month}], nil
}

func (f *fakeLockRepo) SetDayLock(userID uint, date time.Time, reason string) error {
	f.dayLocks[cellKey(userID, date)] = reason
	return nil
}

func (f *fakeLockRepo) RemoveDayLock(userID uint, date time.Time) error {
	delete(f.dayLocks, cellKey(userID, date))
	return nil
}

func (f *fakeLockRepo) GetDayLock(userID uint, date time.Time) (*models.DayLock, error) {
	reason, ok := f.dayLocks[cellKey(userID, date)]
	if !ok {
		return nil, nil
	}
	return &models.DayLock{UserID: userID, Date: date, Reason: reason}, nil
}

func (f *fakeLockRepo) GetDayLocksRange(from, to time.Time) ([]*models.DayLock, error) {
	var out []*models.DayLock
	for key, reason := range f.dayLocks {
		var userID uint
		var iso string
		if _, err := fmt.Sscanf(key, "%d|%s", &userID, &iso); err != nil {
			continue
		}
		date, err := roster.ParseDateKey(iso)
		if err != nil {
			continue
		}
		if !date.Before(from) && !date.After(to) {
			out = append(out, &models.DayLock{UserID: userID, Date: date, Reason: reason})
		}
	}
	return out, nil
}

type fakeActivityRepo struct {
	actions       []string
	notifications []string
	sent          map[uint]bool
}

func (f *fakeActivityRepo) LogAction(userID uint, action, details string) error {
	f.actions = append(f.actions, action)
	return nil
}

func (f *fakeActivityRepo) AddAdminNotification(message string) error {
	f.notifications = append(f.notifications, message)
	return nil
}

func (f *fakeActivityRepo) GetUnsentNotifications() ([]*models.AdminNotification, error) {
	var out []*models.AdminNotification
	for i, msg := range f.notifications {
		id := uint(i + 1)
		if f.sent[id] {
			continue
		}
		out = append(out, &models.AdminNotification{ID: id, Message: msg})
	}
	return out, nil
}

func (f *fakeActivityRepo) MarkNotificationSent(id uint) error {
	if f.sent == nil {
		f.sent = make(map[uint]bool)
	}
	f.sent[id] = true
	return nil
}

func (f *fakeActivityRepo) hasAction(action string) bool {
	for _, a := range f.actions {
		if a == action {
			return true
		}
	}
	return false
}

type fakeUserRepo struct {
	users []*models.User
}

func (f *fakeUserRepo) Create(user *models.User) error {
	user.ID = uint(len(f.users) + 1)
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) Update(user *models.User) error { return nil }

func (f *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetAll() ([]*models.User, error) {
	return f.users, nil
}

func (f *fakeUserRepo) GetForMonth(year, month int, includeHidden bool) ([]*models.User, error) {
	first, last := roster.MonthBounds(year, month)
	var out []*models.User
	for _, u := range f.users {
		if u.ActiveInMonth(first, last) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Archive(id uint, when *time.Time) error {
	for _, u := range f.users {
		if u.ID == id {
			u.IsArchived = true
			u.ArchivedDate = when
		}
	}
	return nil
}

func (f *fakeUserRepo) SetEntitlement(id uint, total, rest int) error {
	for _, u := range f.users {
		if u.ID == id {
			u.UrlaubGesamt = total
			u.UrlaubRest = rest
		}
	}
	return nil
}

type fakeConfigRepo struct {
	values map[string]string
}

func newFakeConfigRepo() *fakeConfigRepo {
	return &fakeConfigRepo{values: make(map[string]string)}
}

func (f *fakeConfigRepo) Get(key string) (string, bool, error) {
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeConfigRepo) Set(key, value string) error {
	f.values[key] = value
	return nil
}

func (f *fakeConfigRepo) Invalidate(key string) {}

func approvedUser(id uint, name string, entry *time.Time) *models.User {
	return &models.User{
		ID:         id,
		Vorname:    "Max",
		Name:       name,
		EntryDate:  entry,
		IsApproved: true,
		Diensthund: models.NoDog,
	}
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := roster.Date(year, month, day)
	return &d
}
