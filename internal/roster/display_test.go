package roster

import (
	"testing"
	"time"

	"dienstplan/internal/models"
)

func TestResolveCell_Precedence(t *testing.T) {
	day := Date(2024, time.June, 12)
	tests := []struct {
		name     string
		raw      string
		vacation *models.VacationRequest
		wish     *models.WunschfreiRequest
		want     string
		wantWish bool
	}{
		{name: "plain shift", raw: CodeDay, want: CodeDay},
		{name: "empty cell", raw: "", want: ""},
		{
			name:     "approved vacation overrides shift",
			raw:      CodeNight,
			vacation: &models.VacationRequest{UserID: 1, StartDate: day, EndDate: day, Status: models.VacationApproved},
			want:     CodeVacation,
		},
		{
			name:     "pending vacation shows question mark",
			raw:      CodeDay,
			vacation: &models.VacationRequest{UserID: 1, StartDate: day, EndDate: day, Status: models.VacationPending},
			want:     TokenVacationPending,
		},
		{
			name:     "vacation wins over pending wish",
			raw:      "",
			vacation: &models.VacationRequest{UserID: 1, StartDate: day, EndDate: day, Status: models.VacationApproved},
			wish:     &models.WunschfreiRequest{UserID: 1, RequestDate: day, RequestedShift: models.RequestedShiftWF, Status: models.WunschfreiPending, RequestedBy: models.RequestedByUser},
			want:     CodeVacation,
		},
		{
			name:     "pending wish free",
			raw:      "",
			wish:     &models.WunschfreiRequest{UserID: 1, RequestDate: day, RequestedShift: models.RequestedShiftWF, Status: models.WunschfreiPending, RequestedBy: models.RequestedByUser},
			want:     CodeWF,
			wantWish: true,
		},
		{
			name:     "pending split request",
			raw:      "",
			wish:     &models.WunschfreiRequest{UserID: 1, RequestDate: day, RequestedShift: models.RequestedShiftSplit, Status: models.WunschfreiPending, RequestedBy: models.RequestedByUser},
			want:     TokenSplitPending,
			wantWish: true,
		},
		{
			name:     "pending concrete shift request",
			raw:      "",
			wish:     &models.WunschfreiRequest{UserID: 1, RequestDate: day, RequestedShift: CodeDay, Status: models.WunschfreiPending, RequestedBy: models.RequestedByUser},
			want:     "T.?",
			wantWish: true,
		},
		{
			name:     "pending admin-origin request",
			raw:      "",
			wish:     &models.WunschfreiRequest{UserID: 1, RequestDate: day, RequestedShift: CodeNight, Status: models.WunschfreiPending, RequestedBy: models.RequestedByAdmin},
			want:     "N. (A)?",
			wantWish: true,
		},
		{
			name:     "accepted wish free without entry",
			raw:      "",
			wish:     &models.WunschfreiRequest{UserID: 1, RequestDate: day, RequestedShift: models.RequestedShiftWF, Status: models.WunschfreiAcceptedByAdmin, RequestedBy: models.RequestedByUser},
			want:     CodeWishFree,
			wantWish: true,
		},
		{
			name:     "legacy approved status counts as accepted",
			raw:      "",
			wish:     &models.WunschfreiRequest{UserID: 1, RequestDate: day, RequestedShift: models.RequestedShiftWF, Status: models.WunschfreiLegacyApproved, RequestedBy: models.RequestedByUser},
			want:     CodeWishFree,
			wantWish: true,
		},
		{
			name:     "accepted wish free yields to concrete entry",
			raw:      CodeDay,
			wish:     &models.WunschfreiRequest{UserID: 1, RequestDate: day, RequestedShift: models.RequestedShiftWF, Status: models.WunschfreiAcceptedByAdmin, RequestedBy: models.RequestedByUser},
			want:     CodeDay,
			wantWish: true,
		},
		{
			name:     "rejected wish leaves raw",
			raw:      CodeNight,
			wish:     &models.WunschfreiRequest{UserID: 1, RequestDate: day, RequestedShift: models.RequestedShiftWF, Status: models.WunschfreiRejectedByAdmin, RequestedBy: models.RequestedByUser},
			want:     CodeNight,
			wantWish: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{users: []*models.User{testUser(1, "Adler", models.NoDog)}}
			if tt.raw != "" {
				store.entries = append(store.entries, entry(1, day, tt.raw))
			}
			if tt.vacation != nil {
				store.vacations = append(store.vacations, tt.vacation)
			}
			if tt.wish != nil {
				store.wishes = append(store.wishes, tt.wish)
			}
			_, snap, err := loadManager(store, 2024, 6)
			if err != nil {
				t.Fatalf("LoadMonth: %v", err)
			}

			withLock, withoutLock, wish := ResolveCell(snap, 1, day)
			if withoutLock != tt.want {
				t.Errorf("withoutLock = %q, want %q", withoutLock, tt.want)
			}
			if withLock != withoutLock {
				t.Errorf("withLock = %q, expected no glyph on unlocked cell", withLock)
			}
			if (wish != nil) != tt.wantWish {
				t.Errorf("wish = %v, wantWish = %v", wish, tt.wantWish)
			}
		})
	}
}

func TestResolveCell_LockGlyph(t *testing.T) {
	day := Date(2024, time.June, 12)
	store := &fakeStore{
		users:   []*models.User{testUser(1, "Adler", models.NoDog)},
		entries: []*models.ShiftEntry{entry(1, day, CodeDay)},
		locks:   []*models.DayLock{{UserID: 1, Date: day, Reason: "Krank"}},
	}
	_, snap, err := loadManager(store, 2024, 6)
	if err != nil {
		t.Fatalf("LoadMonth: %v", err)
	}

	withLock, withoutLock, _ := ResolveCell(snap, 1, day)
	if withoutLock != CodeDay {
		t.Errorf("withoutLock = %q, want %q", withoutLock, CodeDay)
	}
	if withLock != LockGlyph+" "+CodeDay {
		t.Errorf("withLock = %q, want glyph prefix", withLock)
	}

	reason, ok := snap.LockReason(1, DateKey(day))
	if !ok || reason != "Krank" {
		t.Errorf("LockReason = %q, %v", reason, ok)
	}
}

// Resolving a cell twice must give the same answer: resolution reads state,
// it never mutates it.
func TestResolveCell_Idempotent(t *testing.T) {
	day := Date(2024, time.June, 12)
	store := &fakeStore{
		users:     []*models.User{testUser(1, "Adler", models.NoDog)},
		entries:   []*models.ShiftEntry{entry(1, day, CodeNight)},
		vacations: []*models.VacationRequest{{UserID: 1, StartDate: day, EndDate: day, Status: models.VacationPending}},
	}
	_, snap, err := loadManager(store, 2024, 6)
	if err != nil {
		t.Fatalf("LoadMonth: %v", err)
	}

	first, _, _ := ResolveCell(snap, 1, day)
	second, _, _ := ResolveCell(snap, 1, day)
	if first != second {
		t.Errorf("resolution not stable: %q then %q", first, second)
	}
}

func TestResolveCarry(t *testing.T) {
	lastOfMay := Date(2024, time.May, 31)
	store := &fakeStore{
		users: []*models.User{
			testUser(1, "Adler", models.NoDog),
			testUser(2, "Berger", models.NoDog),
		},
		entries:   []*models.ShiftEntry{entry(1, lastOfMay, CodeNight)},
		vacations: []*models.VacationRequest{{UserID: 2, StartDate: Date(2024, time.May, 27), EndDate: lastOfMay, Status: models.VacationApproved}},
		locks:     []*models.DayLock{{UserID: 1, Date: lastOfMay, Reason: "Krank"}},
	}
	_, snap, err := loadManager(store, 2024, 6)
	if err != nil {
		t.Fatalf("LoadMonth: %v", err)
	}

	token, _ := ResolveCarry(snap, 1)
	if token != CodeNight {
		t.Errorf("carry for user 1 = %q, want %q (locks never reach the carry column)", token, CodeNight)
	}
	token, _ = ResolveCarry(snap, 2)
	if token != CodeVacation {
		t.Errorf("carry for user 2 = %q, want %q", token, CodeVacation)
	}
	if token, _ := ResolveCarry(snap, 99); token != "" {
		t.Errorf("carry for unknown user = %q, want empty", token)
	}
}
