package roster

import (
	"fmt"
	"strconv"
	"strings"

	"dienstplan/internal/models"

	"github.com/sirupsen/logrus"
)

// Shift codes with fixed meaning for the engine.
const (
	CodeDay        = "T."
	CodeNight      = "N."
	CodeSix        = "6"
	CodeTwentyFour = "24"
	CodeQA         = "QA"
	CodeSecurity   = "S"
	CodeVacation   = "U"
	CodeWishFree   = "X"
	CodeEU         = "EU"
	CodeWF         = "WF"
	CodeFrei       = "FREI"
)

// Display-only tokens produced by the resolver.
const (
	TokenVacationPending = "U?"
	TokenSplitPending    = "T./N.?"
	LockGlyph            = "🔒"
)

// earlyShifts start too soon after a night shift to respect the rest period.
var earlyShifts = map[string]bool{
	CodeDay:      true,
	CodeSix:      true,
	CodeQA:       true,
	CodeSecurity: true,
}

// freeIndicators mean "not working" for conflict purposes.
var freeIndicators = map[string]bool{
	"":           true,
	CodeVacation: true,
	CodeWishFree: true,
	CodeEU:       true,
	CodeWF:       true,
	CodeFrei:     true,
}

// nonCountedTokens are excluded from the per-day headcounts.
var nonCountedTokens = map[string]bool{
	CodeVacation:         true,
	CodeWishFree:         true,
	CodeEU:               true,
	CodeWF:               true,
	TokenVacationPending: true,
	TokenSplitPending:    true,
}

// IsEarlyShift reports whether the code starts early enough to violate the
// rest period after a night shift.
func IsEarlyShift(code string) bool {
	return earlyShifts[code]
}

// IsFreeIndicator reports whether the code means "not working".
func IsFreeIndicator(code string) bool {
	return freeIndicators[code]
}

// IsCounted reports whether the token participates in daily headcounts.
func IsCounted(token string) bool {
	return token != "" && !nonCountedTokens[token]
}

type interval struct {
	start int // minutes since midnight
	end   int // exclusive; > 1440 when the shift crosses midnight
}

// Registry holds the loaded shift-type table plus the precomputed interval
// table used by the dog-overlap check. Rebuild it whenever the shift-type
// table changes.
type Registry struct {
	logger    *logrus.Logger
	types     map[string]models.ShiftType
	intervals map[string]interval
	warned    map[string]bool
}

func NewRegistry(types []models.ShiftType, logger *logrus.Logger) *Registry {
	r := &Registry{
		logger:    logger,
		types:     make(map[string]models.ShiftType, len(types)),
		intervals: make(map[string]interval, len(types)),
		warned:    make(map[string]bool),
	}
	for _, st := range types {
		r.types[st.Abbrev] = st
		if !st.HasTimes() {
			continue
		}
		start, err1 := parseClock(st.StartTime)
		end, err2 := parseClock(st.EndTime)
		if err1 != nil || err2 != nil {
			logger.WithField("abbrev", st.Abbrev).Warn("Shift type has malformed times, excluded from overlap checks")
			continue
		}
		if end <= start {
			end += 24 * 60 // crosses midnight
		}
		r.intervals[st.Abbrev] = interval{start: start, end: end}
	}
	return r
}

func parseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: Uhrzeit %q nicht im Format HH:MM", ErrValidation, s)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%w: ungültige Stunden in %q", ErrValidation, s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: ungültige Minuten in %q", ErrValidation, s)
	}
	return hours*60 + minutes, nil
}

// Known reports whether the code exists in the registry.
func (r *Registry) Known(code string) bool {
	_, ok := r.types[code]
	return ok
}

// Hours returns the code's hours; unknown codes contribute zero.
func (r *Registry) Hours(code string) float64 {
	st, ok := r.types[code]
	if !ok {
		return 0
	}
	return st.Hours
}

func (r *Registry) Color(code string) string {
	st, ok := r.types[code]
	if !ok {
		return "#FFFFFF"
	}
	return st.Color
}

// Interval returns the shift's minute interval for overlap checks. A shift
// without usable times cannot participate; the first miss per code is logged
// so a silent false negative does not go unnoticed.
func (r *Registry) Interval(code string) (start, end int, ok bool) {
	iv, ok := r.intervals[code]
	if !ok {
		if r.Known(code) && !IsFreeIndicator(code) && !r.warned[code] {
			r.warned[code] = true
			r.logger.WithField("abbrev", code).Warn("Shift type has no times, dog overlap check skips it")
		}
		return 0, 0, false
	}
	return iv.start, iv.end, true
}

// NightCarryHours returns the post-midnight hours of the night shift,
// derived from its end time. Falls back to 6.0 when the end time is missing
// or malformed; the fallback is logged once.
func (r *Registry) NightCarryHours() float64 {
	st, ok := r.types[CodeNight]
	if ok && st.EndTime != "" {
		if end, err := parseClock(st.EndTime); err == nil {
			return float64(end) / 60.0
		}
	}
	if !r.warned[CodeNight+":carry"] {
		r.warned[CodeNight+":carry"] = true
		r.logger.Warn("Night shift has no usable end time, assuming 6.0 carry hours")
	}
	return 6.0
}

// Overlaps reports whether two minute intervals overlap.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

// DefaultShiftTypes seeds a fresh database with the standard K9 detail
// shift table.
func DefaultShiftTypes() []models.ShiftType {
	return []models.ShiftType{
		{Abbrev: CodeDay, Name: "Tagdienst", Color: "#ADD8E6", Hours: 12, StartTime: "07:00", EndTime: "19:00"},
		{Abbrev: CodeNight, Name: "Nachtdienst", Color: "#00008B", Hours: 12, StartTime: "19:00", EndTime: "07:00"},
		{Abbrev: CodeSix, Name: "6-Stunden-Dienst", Color: "#90EE90", Hours: 6, StartTime: "13:00", EndTime: "19:00"},
		{Abbrev: CodeTwentyFour, Name: "24-Stunden-Dienst", Color: "#FFA500", Hours: 24, StartTime: "07:00", EndTime: "07:00"},
		{Abbrev: CodeQA, Name: "Qualitätssicherung", Color: "#FFFF00", Hours: 8, StartTime: "08:00", EndTime: "16:00"},
		{Abbrev: CodeSecurity, Name: "Sicherungsdienst", Color: "#FF6347", Hours: 12, StartTime: "06:00", EndTime: "18:00"},
		{Abbrev: CodeVacation, Name: "Urlaub", Color: "#32CD32", Hours: 8},
		{Abbrev: CodeWishFree, Name: "Wunschfrei gewährt", Color: "#D3D3D3", Hours: 0},
		{Abbrev: CodeEU, Name: "Erholungsurlaub", Color: "#98FB98", Hours: 8},
		{Abbrev: CodeWF, Name: "Wunschfrei", Color: "#D3D3D3", Hours: 0},
		{Abbrev: CodeFrei, Name: "Frei", Color: "#FFFFFF", Hours: 0},
	}
}
