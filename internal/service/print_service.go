package service

import (
	"fmt"
	"html/template"
	"os"
	"time"

	"dienstplan/internal/roster"

	"github.com/sirupsen/logrus"
)

// PrintService renders the loaded month as a single-table HTML document in
// the system temp directory. Opening it in the default browser is left to
// the shell around the engine.
type PrintService struct {
	holidays *HolidayService
	logger   *logrus.Logger
}

func NewPrintService(holidays *HolidayService) *PrintService {
	return &PrintService{
		holidays: holidays,
		logger:   logrus.New(),
	}
}

type printDay struct {
	Day     int
	Weekday string
	Tint    bool
}

type printCell struct {
	Token string
	Color string
}

type printRow struct {
	Name  string
	Dog   string
	Carry string
	Cells []printCell
	Hours float64
}

type printView struct {
	Title string
	Days  []printDay
	Rows  []printRow
}

var printTemplate = template.Must(template.New("roster").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
table { border-collapse: collapse; font-family: sans-serif; font-size: 11px; }
th, td { border: 1px solid #444; padding: 2px 4px; text-align: center; }
th.tint, td.tint { background-color: #EEE; }
td.name { text-align: left; white-space: nowrap; }
</style>
</head>
<body>
<h2>{{.Title}}</h2>
<table>
<tr>
<th>Name</th><th>Hund</th><th>Ü</th>
{{range .Days}}<th{{if .Tint}} class="tint"{{end}}>{{.Day}}<br>{{.Weekday}}</th>{{end}}
<th>Stunden</th>
</tr>
{{range .Rows}}
<tr>
<td class="name">{{.Name}}</td><td>{{.Dog}}</td><td>{{.Carry}}</td>
{{range .Cells}}<td style="background-color: {{.Color}}">{{.Token}}</td>{{end}}
<td>{{printf "%.2f" .Hours}}</td>
</tr>
{{end}}
</table>
</body>
</html>
`))

var weekdayShort = map[time.Weekday]string{
	time.Monday:    "Mo",
	time.Tuesday:   "Di",
	time.Wednesday: "Mi",
	time.Thursday:  "Do",
	time.Friday:    "Fr",
	time.Saturday:  "Sa",
	time.Sunday:    "So",
}

// WriteMonth renders the snapshot to a temp HTML file and returns its path.
// Cell colors come from the registry via the without-lock token.
func (s *PrintService) WriteMonth(dm *roster.DataManager) (string, error) {
	snap := dm.Snapshot()
	if snap == nil {
		return "", fmt.Errorf("%w: kein Monat geladen", roster.ErrValidation)
	}
	registry := dm.Registry()
	first, last := roster.MonthBounds(snap.Year, snap.Month)

	view := printView{
		Title: fmt.Sprintf("Dienstplan %02d/%d", snap.Month, snap.Year),
	}
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		_, holiday := s.holidays.IsHoliday(d)
		weekend := d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
		view.Days = append(view.Days, printDay{
			Day:     d.Day(),
			Weekday: weekdayShort[d.Weekday()],
			Tint:    holiday || weekend,
		})
	}

	for _, u := range snap.Users {
		carry, _ := roster.ResolveCarry(snap, u.ID)
		row := printRow{
			Name:  u.FullName(),
			Dog:   u.Diensthund,
			Carry: carry,
			Hours: dm.MonthlyHours(u.ID),
		}
		for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
			withLock, withoutLock, _ := roster.ResolveCell(snap, u.ID, d)
			row.Cells = append(row.Cells, printCell{
				Token: withLock,
				Color: registry.Color(withoutLock),
			})
		}
		view.Rows = append(view.Rows, row)
	}

	f, err := os.CreateTemp("", "dienstplan-*.html")
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := printTemplate.Execute(f, view); err != nil {
		os.Remove(f.Name())
		return "", err
	}

	s.logger.WithField("path", f.Name()).Info("Print view written")
	return f.Name(), nil
}
