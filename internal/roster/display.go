package roster

import (
	"time"

	"dienstplan/internal/models"
)

// ResolveCell collapses raw shift, vacation status, wish-free status and
// lock state into the cell's display tokens. It returns the token with the
// lock glyph, the token without it, and the wish-free request when one
// contributed. Color logic must use the without-lock form.
func ResolveCell(s *MonthSnapshot, uid uint, date time.Time) (withLock, withoutLock string, wish *WishEntry) {
	key := DateKey(date)
	raw := s.RawShift(uid, key)
	vacStatus := s.VacationStatus(uid, key)
	var w *WishEntry
	if entry, ok := s.WishAt(uid, key); ok {
		w = &entry
	}
	token, wish := resolveToken(raw, vacStatus, w)
	withoutLock = token
	withLock = token
	if _, locked := s.LockReason(uid, key); locked {
		withLock = LockGlyph + " " + token
	}
	return withLock, withoutLock, wish
}

// ResolveCarry resolves the carry column ("Ü") from the previous-month edge
// data. Day locks never apply to the carry column.
func ResolveCarry(s *MonthSnapshot, uid uint) (token string, wish *WishEntry) {
	facts, ok := s.PrevEdge[uid]
	if !ok {
		return "", nil
	}
	token, wish = resolveToken(facts.Shift, facts.VacationStatus, facts.Wish)
	return token, wish
}

// resolveToken applies the fixed precedence: raw code, then vacation
// overlay, then wish-free overlay. The vacation overlay wins over any
// wish-free state.
func resolveToken(raw, vacStatus string, wish *WishEntry) (string, *WishEntry) {
	switch vacStatus {
	case models.VacationApproved:
		return CodeVacation, nil
	case models.VacationPending:
		return TokenVacationPending, nil
	}

	if wish == nil {
		return raw, nil
	}

	switch {
	case wish.Status == models.WunschfreiPending && wish.RequestedBy == models.RequestedByAdmin:
		return wish.RequestedShift + " (A)?", wish
	case wish.Status == models.WunschfreiPending:
		switch wish.RequestedShift {
		case models.RequestedShiftWF:
			return CodeWF, wish
		case models.RequestedShiftSplit:
			return TokenSplitPending, wish
		default:
			return wish.RequestedShift + "?", wish
		}
	case wish.accepted() && wish.RequestedShift == models.RequestedShiftWF && raw == "":
		return CodeWishFree, wish
	}

	return raw, wish
}
