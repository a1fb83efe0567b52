package roster

import (
	"sort"
	"time"

	"dienstplan/internal/models"
)

// Cell addresses one roster cell: a user and a day-of-month.
type Cell struct {
	UserID uint
	Day    int
}

// WishEntry is the cached view of one wish-free request.
type WishEntry struct {
	Status          string
	RequestedShift  string
	RequestedBy     string
	RejectionReason string
}

func (w WishEntry) accepted() bool {
	switch w.Status {
	case models.WunschfreiAcceptedByAdmin, models.WunschfreiAcceptedByUser, models.WunschfreiLegacyApproved:
		return true
	}
	return false
}

// DayFacts carries the previous-month edge data needed by the carry column.
type DayFacts struct {
	Shift          string
	VacationStatus string
	Wish           *WishEntry
}

// MonthSnapshot is the in-memory model of one loaded calendar month. All
// derived caches (counts, violations) live here and must stay coherent; every
// mutation goes through the DataManager.
type MonthSnapshot struct {
	Year  int
	Month int

	// Users is the ordered, filtered employee list for this month.
	Users    []*models.User
	userByID map[uint]*models.User

	Schedule  map[uint]map[string]string    // uid -> date key -> shift code
	Vacations map[uint]map[string]string    // uid -> date key -> request status
	WishFree  map[uint]map[string]WishEntry // uid -> date key -> request
	DayLocks  map[uint]map[string]string    // uid -> date key -> lock reason

	MonthLocked bool

	// DailyCounts is zero-free: a count that reaches zero is deleted.
	DailyCounts map[string]map[string]int // date key -> token -> count

	restViolations map[Cell]bool
	dogViolations  map[Cell]bool

	// PrevEdge holds each user's facts for the last day of the previous
	// month, used by the carry column and the hour carry-in.
	PrevEdge map[uint]DayFacts
}

func NewMonthSnapshot(year, month int) *MonthSnapshot {
	return &MonthSnapshot{
		Year:           year,
		Month:          month,
		userByID:       make(map[uint]*models.User),
		Schedule:       make(map[uint]map[string]string),
		Vacations:      make(map[uint]map[string]string),
		WishFree:       make(map[uint]map[string]WishEntry),
		DayLocks:       make(map[uint]map[string]string),
		DailyCounts:    make(map[string]map[string]int),
		restViolations: make(map[Cell]bool),
		dogViolations:  make(map[Cell]bool),
		PrevEdge:       make(map[uint]DayFacts),
	}
}

func (s *MonthSnapshot) setUsers(users []*models.User) {
	s.Users = users
	s.userByID = make(map[uint]*models.User, len(users))
	for _, u := range users {
		s.userByID[u.ID] = u
	}
}

// User returns the snapshot's user by id, nil when the user is not part of
// the loaded month.
func (s *MonthSnapshot) User(uid uint) *models.User {
	return s.userByID[uid]
}

// Contains reports whether the date falls inside the loaded month.
func (s *MonthSnapshot) Contains(date time.Time) bool {
	return date.Year() == s.Year && int(date.Month()) == s.Month
}

// RawShift returns the stored shift code for the cell, empty string when no
// assignment exists.
func (s *MonthSnapshot) RawShift(uid uint, key string) string {
	return s.Schedule[uid][key]
}

func (s *MonthSnapshot) setShift(uid uint, key, code string) {
	if code == "" {
		delete(s.Schedule[uid], key)
		if len(s.Schedule[uid]) == 0 {
			delete(s.Schedule, uid)
		}
		return
	}
	if s.Schedule[uid] == nil {
		s.Schedule[uid] = make(map[string]string)
	}
	s.Schedule[uid][key] = code
}

// adjustCount keeps DailyCounts zero-free.
func (s *MonthSnapshot) adjustCount(key, token string, delta int) {
	if !IsCounted(token) || delta == 0 {
		return
	}
	day := s.DailyCounts[key]
	if day == nil {
		if delta < 0 {
			return
		}
		day = make(map[string]int)
		s.DailyCounts[key] = day
	}
	day[token] += delta
	if day[token] <= 0 {
		delete(day, token)
	}
	if len(day) == 0 {
		delete(s.DailyCounts, key)
	}
}

// VacationStatus returns the status of the vacation request covering the
// cell, empty string when none does.
func (s *MonthSnapshot) VacationStatus(uid uint, key string) string {
	return s.Vacations[uid][key]
}

// WishAt returns the cached wish-free request for the cell.
func (s *MonthSnapshot) WishAt(uid uint, key string) (WishEntry, bool) {
	w, ok := s.WishFree[uid][key]
	return w, ok
}

// LockReason returns the day-lock reason for the cell, with a presence flag.
func (s *MonthSnapshot) LockReason(uid uint, key string) (string, bool) {
	reason, ok := s.DayLocks[uid][key]
	return reason, ok
}

// IsViolation reports whether the cell is currently in conflict.
func (s *MonthSnapshot) IsViolation(c Cell) bool {
	return s.restViolations[c] || s.dogViolations[c]
}

// ViolationCells returns all conflicted cells, sorted by user then day.
func (s *MonthSnapshot) ViolationCells() []Cell {
	seen := make(map[Cell]bool, len(s.restViolations)+len(s.dogViolations))
	for c := range s.restViolations {
		seen[c] = true
	}
	for c := range s.dogViolations {
		seen[c] = true
	}
	cells := make([]Cell, 0, len(seen))
	for c := range seen {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].UserID != cells[j].UserID {
			return cells[i].UserID < cells[j].UserID
		}
		return cells[i].Day < cells[j].Day
	})
	return cells
}

func (s *MonthSnapshot) clearViolations() {
	s.restViolations = make(map[Cell]bool)
	s.dogViolations = make(map[Cell]bool)
}
