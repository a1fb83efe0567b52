package roster

import (
	"testing"

	"dienstplan/internal/models"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"07:00", 420, false},
		{"19:30", 1170, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"07:60", 0, true},
		{"7", 0, true},
		{"", 0, true},
		{"ab:cd", 0, true},
	}
	for _, tt := range tests {
		got, err := parseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseClock(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("parseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRegistry_MidnightWrap(t *testing.T) {
	r := NewRegistry(DefaultShiftTypes(), testLogger())

	start, end, ok := r.Interval(CodeNight)
	if !ok || start != 19*60 || end != 31*60 {
		t.Errorf("N. interval = %d-%d (%v), want 1140-1860", start, end, ok)
	}
	start, end, ok = r.Interval(CodeTwentyFour)
	if !ok || start != 7*60 || end != 31*60 {
		t.Errorf("24 interval = %d-%d (%v), want 420-1860", start, end, ok)
	}
	if _, _, ok := r.Interval(CodeVacation); ok {
		t.Error("U has no times and must have no interval")
	}
	if _, _, ok := r.Interval("??"); ok {
		t.Error("unknown code must have no interval")
	}
}

func TestOverlaps(t *testing.T) {
	day := [2]int{7 * 60, 19 * 60}
	night := [2]int{19 * 60, 31 * 60}
	six := [2]int{13 * 60, 19 * 60}

	if Overlaps(day[0], day[1], night[0], night[1]) {
		t.Error("T. and N. touch at 19:00 but do not overlap")
	}
	if !Overlaps(day[0], day[1], six[0], six[1]) {
		t.Error("T. and 6 must overlap")
	}
	if !Overlaps(night[0], night[1], night[0], night[1]) {
		t.Error("identical intervals must overlap")
	}
}

func TestNightCarryHours(t *testing.T) {
	r := NewRegistry(DefaultShiftTypes(), testLogger())
	if got := r.NightCarryHours(); got != 7.0 {
		t.Errorf("NightCarryHours = %v, want 7.0 from the 07:00 end time", got)
	}

	// Without a usable end time on N. the engine falls back to 6.0.
	fallback := NewRegistry([]models.ShiftType{
		{Abbrev: CodeNight, Name: "Nachtdienst", Hours: 12},
	}, testLogger())
	if got := fallback.NightCarryHours(); got != 6.0 {
		t.Errorf("NightCarryHours fallback = %v, want 6.0", got)
	}
}

func TestCodeClassification(t *testing.T) {
	for _, code := range []string{CodeDay, CodeSix, CodeQA, CodeSecurity} {
		if !IsEarlyShift(code) {
			t.Errorf("IsEarlyShift(%q) = false", code)
		}
	}
	for _, code := range []string{CodeNight, CodeTwentyFour, CodeVacation, ""} {
		if IsEarlyShift(code) {
			t.Errorf("IsEarlyShift(%q) = true", code)
		}
	}

	for _, code := range []string{"", CodeVacation, CodeWishFree, CodeEU, CodeWF, CodeFrei} {
		if !IsFreeIndicator(code) {
			t.Errorf("IsFreeIndicator(%q) = false", code)
		}
	}
	if IsFreeIndicator(CodeDay) {
		t.Error("IsFreeIndicator(T.) = true")
	}

	for _, token := range []string{CodeVacation, CodeWishFree, TokenVacationPending, TokenSplitPending, ""} {
		if IsCounted(token) {
			t.Errorf("IsCounted(%q) = true", token)
		}
	}
	for _, token := range []string{CodeDay, CodeNight, CodeFrei} {
		if !IsCounted(token) {
			t.Errorf("IsCounted(%q) = false", token)
		}
	}
}

func TestRegistry_HoursAndKnown(t *testing.T) {
	r := NewRegistry(DefaultShiftTypes(), testLogger())
	if !r.Known(CodeDay) || r.Known("??") {
		t.Error("Known misclassifies codes")
	}
	if got := r.Hours(CodeDay); got != 12 {
		t.Errorf("Hours(T.) = %v, want 12", got)
	}
	if got := r.Hours("??"); got != 0 {
		t.Errorf("Hours(??) = %v, want 0", got)
	}
}
