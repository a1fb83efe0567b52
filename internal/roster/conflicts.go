package roster

import (
	"sort"
	"time"
)

// restViolated reports whether the cell at date is part of a rest-period
// conflict: a night shift immediately followed by an early shift, in either
// direction. Neighbor days are read through LookupShift so the check works
// across month boundaries.
func (m *DataManager) restViolated(uid uint, date time.Time) bool {
	cur := m.LookupShift(uid, date)
	if cur == CodeNight && IsEarlyShift(m.LookupShift(uid, date.AddDate(0, 0, 1))) {
		return true
	}
	if IsEarlyShift(cur) && m.LookupShift(uid, date.AddDate(0, 0, -1)) == CodeNight {
		return true
	}
	return false
}

// scanDogDay flags every pair of users sharing a service dog with
// overlapping shift intervals on the date. A nil dog filter scans all dogs.
// Returns the flagged cells.
func (m *DataManager) scanDogDay(date time.Time, dogs map[string]bool) []Cell {
	snap := m.snap
	key := DateKey(date)
	day := date.Day()

	type assignment struct {
		uid        uint
		start, end int
	}
	byDog := make(map[string][]assignment)
	for _, u := range snap.Users {
		if !u.HasDog() {
			continue
		}
		if dogs != nil && !dogs[u.Diensthund] {
			continue
		}
		code := snap.RawShift(u.ID, key)
		if IsFreeIndicator(code) {
			continue
		}
		start, end, ok := m.registry.Interval(code)
		if !ok {
			continue
		}
		byDog[u.Diensthund] = append(byDog[u.Diensthund], assignment{uid: u.ID, start: start, end: end})
	}

	var flagged []Cell
	for _, assignments := range byDog {
		for i := 0; i < len(assignments); i++ {
			for j := i + 1; j < len(assignments); j++ {
				if !Overlaps(assignments[i].start, assignments[i].end, assignments[j].start, assignments[j].end) {
					continue
				}
				for _, a := range []assignment{assignments[i], assignments[j]} {
					c := Cell{UserID: a.uid, Day: day}
					if !snap.dogViolations[c] {
						snap.dogViolations[c] = true
						flagged = append(flagged, c)
					}
				}
			}
		}
	}
	return flagged
}

// RebuildConflicts recomputes the full violation set from the current
// caches.
func (m *DataManager) RebuildConflicts() {
	snap := m.snap
	if snap == nil {
		return
	}
	snap.clearViolations()
	first, last := MonthBounds(snap.Year, snap.Month)

	for _, u := range snap.Users {
		for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
			if m.restViolated(u.ID, d) {
				snap.restViolations[Cell{UserID: u.ID, Day: d.Day()}] = true
			}
		}
	}
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		m.scanDogDay(d, nil)
	}
	m.conflictsDirty = false
}

// updateConflictsForEdit applies the incremental delta for a single edit and
// returns the cells whose violation status changed. When the snapshot is
// flagged dirty (dog reassignment, registry swap) it falls back to a full
// rebuild and diffs the result.
func (m *DataManager) updateConflictsForEdit(uid uint, date time.Time, oldCode, newCode string) []Cell {
	snap := m.snap
	if m.conflictsDirty {
		before := violationSet(snap)
		m.RebuildConflicts()
		return diffViolations(before, violationSet(snap))
	}

	changed := make(map[Cell]bool)

	// Rest conflicts: only the seams (d-1, d) and (d, d+1) can change, so
	// the cells d-1, d, d+1 are recomputed wholly.
	for offset := -1; offset <= 1; offset++ {
		d := date.AddDate(0, 0, offset)
		if !snap.Contains(d) {
			continue
		}
		c := Cell{UserID: uid, Day: d.Day()}
		now := m.restViolated(uid, d)
		if now != snap.restViolations[c] {
			if now {
				snap.restViolations[c] = true
			} else {
				delete(snap.restViolations, c)
			}
			changed[c] = true
		}
	}

	// Dog conflicts: drop and re-scan exactly this date for the edited
	// user's dog.
	user := snap.User(uid)
	if user != nil && user.HasDog() {
		dogs := map[string]bool{user.Diensthund: true}
		day := date.Day()
		for c := range snap.dogViolations {
			if c.Day != day {
				continue
			}
			cu := snap.User(c.UserID)
			if cu == nil || !dogs[cu.Diensthund] {
				continue
			}
			delete(snap.dogViolations, c)
			changed[c] = true
		}
		for _, c := range m.scanDogDay(date, dogs) {
			// Re-flagged cells that were just dropped cancel out.
			if changed[c] {
				delete(changed, c)
			} else {
				changed[c] = true
			}
		}
	}

	cells := make([]Cell, 0, len(changed))
	for c := range changed {
		cells = append(cells, c)
	}
	sortCells(cells)
	return cells
}

func violationSet(snap *MonthSnapshot) map[Cell]bool {
	set := make(map[Cell]bool, len(snap.restViolations)+len(snap.dogViolations))
	for c := range snap.restViolations {
		set[c] = true
	}
	for c := range snap.dogViolations {
		set[c] = true
	}
	return set
}

func diffViolations(before, after map[Cell]bool) []Cell {
	var cells []Cell
	for c := range before {
		if !after[c] {
			cells = append(cells, c)
		}
	}
	for c := range after {
		if !before[c] {
			cells = append(cells, c)
		}
	}
	sortCells(cells)
	return cells
}

func sortCells(cells []Cell) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].UserID != cells[j].UserID {
			return cells[i].UserID < cells[j].UserID
		}
		return cells[i].Day < cells[j].Day
	})
}
