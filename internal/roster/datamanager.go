package roster

import (
	"fmt"
	"math"
	"time"

	"dienstplan/internal/models"

	"github.com/sirupsen/logrus"
)

// Store is the data layer the engine reads from. Implementations are
// blocking; the engine itself never spawns goroutines.
type Store interface {
	UsersForMonth(year, month int, includeHidden bool) ([]*models.User, error)
	ScheduleRange(from, to time.Time) ([]*models.ShiftEntry, error)
	VacationsOverlapping(from, to time.Time) ([]*models.VacationRequest, error)
	WishFreeRange(from, to time.Time) ([]*models.WunschfreiRequest, error)
	DayLocksRange(from, to time.Time) ([]*models.DayLock, error)
	MonthLocked(year, month int) (bool, error)
}

// DataManager owns the loaded month snapshot and every derived cache. It is
// single-threaded by contract: all calls must come from the GUI loop.
type DataManager struct {
	store    Store
	registry *Registry
	logger   *logrus.Logger

	snap *MonthSnapshot

	// neighborShifts memoizes out-of-month schedule lookups per month key.
	neighborShifts map[string]map[uint]map[string]string

	// hoursCache is the per-user monthly aggregate, invalidated on any edit.
	hoursCache map[uint]float64

	// conflictsDirty forces a full rebuild on the next read; set when a
	// change (e.g. a dog reassignment) cannot be reconciled incrementally.
	conflictsDirty bool

	includeHidden bool
}

func NewDataManager(store Store, registry *Registry, logger *logrus.Logger) *DataManager {
	return &DataManager{
		store:          store,
		registry:       registry,
		logger:         logger,
		neighborShifts: make(map[string]map[uint]map[string]string),
		hoursCache:     make(map[uint]float64),
	}
}

// Snapshot returns the currently loaded month, nil before the first load.
func (m *DataManager) Snapshot() *MonthSnapshot {
	return m.snap
}

// Registry returns the shift-type registry the engine was built with.
func (m *DataManager) Registry() *Registry {
	return m.registry
}

// SetRegistry swaps the shift-type registry and forces a conflict rebuild,
// since the interval table changed underneath the dog checks.
func (m *DataManager) SetRegistry(registry *Registry) {
	m.registry = registry
	m.conflictsDirty = true
	m.hoursCache = make(map[uint]float64)
}

// LoadMonth builds a fresh snapshot for the month and rebuilds all derived
// caches. Neighbor months are dropped and refetched lazily.
func (m *DataManager) LoadMonth(year, month int, includeHidden bool) (*MonthSnapshot, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: Monat %d", ErrValidation, month)
	}
	first, last := MonthBounds(year, month)

	users, err := m.store.UsersForMonth(year, month, includeHidden)
	if err != nil {
		return nil, err
	}
	entries, err := m.store.ScheduleRange(first, last)
	if err != nil {
		return nil, err
	}
	vacations, err := m.store.VacationsOverlapping(first, last)
	if err != nil {
		return nil, err
	}
	wishes, err := m.store.WishFreeRange(first, last)
	if err != nil {
		return nil, err
	}
	dayLocks, err := m.store.DayLocksRange(first, last)
	if err != nil {
		return nil, err
	}
	locked, err := m.store.MonthLocked(year, month)
	if err != nil {
		return nil, err
	}

	snap := NewMonthSnapshot(year, month)
	snap.setUsers(users)
	snap.MonthLocked = locked

	for _, e := range entries {
		if snap.User(e.UserID) == nil {
			continue
		}
		snap.setShift(e.UserID, DateKey(e.ShiftDate), e.ShiftAbbrev)
	}
	m.fillVacations(snap, vacations, first, last)
	for _, w := range wishes {
		if snap.User(w.UserID) == nil {
			continue
		}
		if snap.WishFree[w.UserID] == nil {
			snap.WishFree[w.UserID] = make(map[string]WishEntry)
		}
		snap.WishFree[w.UserID][DateKey(w.RequestDate)] = WishEntry{
			Status:          w.Status,
			RequestedShift:  w.RequestedShift,
			RequestedBy:     w.RequestedBy,
			RejectionReason: w.RejectionReason,
		}
	}
	for _, l := range dayLocks {
		if snap.DayLocks[l.UserID] == nil {
			snap.DayLocks[l.UserID] = make(map[string]string)
		}
		snap.DayLocks[l.UserID][DateKey(l.Date)] = l.Reason
	}

	if err := m.fillPrevEdge(snap, first); err != nil {
		return nil, err
	}

	m.snap = snap
	m.neighborShifts = make(map[string]map[uint]map[string]string)
	m.hoursCache = make(map[uint]float64)
	m.conflictsDirty = false

	m.rebuildCounts()
	m.RebuildConflicts()

	m.logger.WithFields(logrus.Fields{
		"year":       year,
		"month":      month,
		"users":      len(users),
		"entries":    len(entries),
		"violations": len(snap.ViolationCells()),
	}).Info("Month loaded")

	return snap, nil
}

// fillVacations projects each overlapping request onto the days it covers.
// Approved overrides pending when ranges overlap; cancelled and rejected
// requests leave no overlay.
func (m *DataManager) fillVacations(snap *MonthSnapshot, requests []*models.VacationRequest, first, last time.Time) {
	for _, v := range requests {
		if snap.User(v.UserID) == nil {
			continue
		}
		if v.Status != models.VacationApproved && v.Status != models.VacationPending {
			continue
		}
		for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
			if !v.Covers(d) {
				continue
			}
			if snap.Vacations[v.UserID] == nil {
				snap.Vacations[v.UserID] = make(map[string]string)
			}
			key := DateKey(d)
			if snap.Vacations[v.UserID][key] != models.VacationApproved {
				snap.Vacations[v.UserID][key] = v.Status
			}
		}
	}
}

// fillPrevEdge fetches the last day of the previous month for every user.
func (m *DataManager) fillPrevEdge(snap *MonthSnapshot, first time.Time) error {
	prevLast := first.AddDate(0, 0, -1)
	entries, err := m.store.ScheduleRange(prevLast, prevLast)
	if err != nil {
		return err
	}
	vacations, err := m.store.VacationsOverlapping(prevLast, prevLast)
	if err != nil {
		return err
	}
	wishes, err := m.store.WishFreeRange(prevLast, prevLast)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if snap.User(e.UserID) == nil {
			continue
		}
		facts := snap.PrevEdge[e.UserID]
		facts.Shift = e.ShiftAbbrev
		snap.PrevEdge[e.UserID] = facts
	}
	for _, v := range vacations {
		if snap.User(v.UserID) == nil || !v.Covers(prevLast) {
			continue
		}
		if v.Status != models.VacationApproved && v.Status != models.VacationPending {
			continue
		}
		facts := snap.PrevEdge[v.UserID]
		if facts.VacationStatus != models.VacationApproved {
			facts.VacationStatus = v.Status
		}
		snap.PrevEdge[v.UserID] = facts
	}
	for _, w := range wishes {
		if snap.User(w.UserID) == nil {
			continue
		}
		facts := snap.PrevEdge[w.UserID]
		facts.Wish = &WishEntry{
			Status:          w.Status,
			RequestedShift:  w.RequestedShift,
			RequestedBy:     w.RequestedBy,
			RejectionReason: w.RejectionReason,
		}
		snap.PrevEdge[w.UserID] = facts
	}
	return nil
}

// rebuildCounts derives the zero-free daily headcounts from the effective
// (without-lock) token of every cell.
func (m *DataManager) rebuildCounts() {
	snap := m.snap
	snap.DailyCounts = make(map[string]map[string]int)
	first, last := MonthBounds(snap.Year, snap.Month)
	for _, u := range snap.Users {
		for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
			_, token, _ := ResolveCell(snap, u.ID, d)
			snap.adjustCount(DateKey(d), token, 1)
		}
	}
}

// LookupShift is the single primitive for schedule reads. Dates inside the
// loaded month come from the snapshot; out-of-month dates are served from
// lazily fetched, memoized neighbor months. Consumers must never peek into
// one-month caches for out-of-month dates.
func (m *DataManager) LookupShift(uid uint, date time.Time) string {
	if m.snap != nil && m.snap.Contains(date) {
		return m.snap.RawShift(uid, DateKey(date))
	}
	mk := monthKey(date)
	cached, ok := m.neighborShifts[mk]
	if !ok {
		first, last := MonthBounds(date.Year(), int(date.Month()))
		entries, err := m.store.ScheduleRange(first, last)
		if err != nil {
			m.logger.WithError(err).WithField("month", mk).Warn("Neighbor month fetch failed, treating as empty")
			entries = nil
		}
		cached = make(map[uint]map[string]string)
		for _, e := range entries {
			if cached[e.UserID] == nil {
				cached[e.UserID] = make(map[string]string)
			}
			cached[e.UserID][DateKey(e.ShiftDate)] = e.ShiftAbbrev
		}
		m.neighborShifts[mk] = cached
	}
	return cached[uid][DateKey(date)]
}

// ApplyEdit reconciles all caches after a persisted single-cell change and
// returns the affected cells. The store write itself (protocol step 1) has
// already happened; a failure here therefore surfaces as ErrIntegrity.
func (m *DataManager) ApplyEdit(uid uint, date time.Time, newCode string) ([]Cell, error) {
	snap := m.snap
	if snap == nil || !snap.Contains(date) {
		return nil, fmt.Errorf("%w: Datum %s liegt nicht im geladenen Monat", ErrValidation, DateKey(date))
	}
	if snap.User(uid) == nil {
		return nil, fmt.Errorf("%w: Benutzer %d nicht im geladenen Monat", ErrValidation, uid)
	}

	key := DateKey(date)
	oldCode := snap.RawShift(uid, key)
	_, oldToken, _ := ResolveCell(snap, uid, date)

	// Step 2: schedule cache, delete-on-empty.
	snap.setShift(uid, key, newCode)

	// Step 3: drop the monthly aggregates.
	m.hoursCache = make(map[uint]float64)

	// Step 4: headcounts via the effective token, zero-free.
	_, newToken, _ := ResolveCell(snap, uid, date)
	if oldToken != newToken {
		snap.adjustCount(key, oldToken, -1)
		snap.adjustCount(key, newToken, 1)
	}

	// Step 5: incremental conflict update.
	affected := m.updateConflictsForEdit(uid, date, oldCode, newCode)

	cell := Cell{UserID: uid, Day: date.Day()}
	if !containsCell(affected, cell) {
		affected = append(affected, cell)
	}
	sortCells(affected)

	m.logger.WithFields(logrus.Fields{
		"user_id":  uid,
		"date":     key,
		"old":      oldCode,
		"new":      newCode,
		"affected": len(affected),
	}).Debug("Edit applied to caches")

	return affected, nil
}

// MarkDogsChanged flags that a dog assignment changed between loads. Dog
// reassignment is not a per-date edit; the next conflict read does a full
// month re-scan.
func (m *DataManager) MarkDogsChanged() {
	m.conflictsDirty = true
}

// MonthlyHours returns the user's total hours for the loaded month,
// including the night-shift carryover, rounded to two decimals.
func (m *DataManager) MonthlyHours(uid uint) float64 {
	if total, ok := m.hoursCache[uid]; ok {
		return total
	}
	total := m.computeMonthlyHours(uid)
	m.hoursCache[uid] = total
	return total
}

func (m *DataManager) computeMonthlyHours(uid uint) float64 {
	snap := m.snap
	if snap == nil {
		return 0
	}
	first, last := MonthBounds(snap.Year, snap.Month)
	carry := m.registry.NightCarryHours()

	total := 0.0
	// Carry-in: the tail of a night shift that started last month.
	if m.LookupShift(uid, first.AddDate(0, 0, -1)) == CodeNight {
		total += carry
	}
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		code := m.effectiveHoursCode(uid, d)
		if code == "" {
			continue
		}
		total += m.registry.Hours(code)
		// The post-midnight tail of a month-final night shift belongs to
		// the following month.
		if code == CodeNight && d.Equal(last) {
			total -= carry
		}
	}
	return math.Round(total*100) / 100
}

// effectiveHoursCode applies the hour-relevant overlays: approved vacation
// overrides to U, an accepted plain wish-free with no raw code overrides to
// X, otherwise the raw code stands.
func (m *DataManager) effectiveHoursCode(uid uint, date time.Time) string {
	key := DateKey(date)
	if m.snap.VacationStatus(uid, key) == models.VacationApproved {
		return CodeVacation
	}
	raw := m.snap.RawShift(uid, key)
	if raw == "" {
		if w, ok := m.snap.WishAt(uid, key); ok && w.accepted() && w.RequestedShift == models.RequestedShiftWF {
			return CodeWishFree
		}
	}
	return raw
}

func containsCell(cells []Cell, c Cell) bool {
	for _, x := range cells {
		if x == c {
			return true
		}
	}
	return false
}
