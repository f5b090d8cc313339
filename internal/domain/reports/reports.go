// Package reports renders the printable PDF exports: the weekly plan
// sheet and the monthly KPI summary.
package reports

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"studioplan/internal/domain/kpi"
	"studioplan/internal/domain/planning"
	"studioplan/internal/domain/schedule"
)

func newDoc(title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(14)
	return pdf
}

// WeeklyPlanPDF writes the plan entries of one week as a printable
// sheet, grouped by assignee in start order.
func WeeklyPlanPDF(w io.Writer, weekOf time.Time, entries []planning.Entry) error {
	start := schedule.StartOfWeek(weekOf)
	end := schedule.DayEnd(start.AddDate(0, 0, 6))
	title := fmt.Sprintf("Weekly plan — week %d (%s)", schedule.WeekNumber(start), start.Format("Jan 2, 2006"))
	pdf := newDoc(title)

	byPerson := map[string][]planning.Entry{}
	var people []string
	for _, e := range entries {
		if !schedule.Overlaps(e.StartTime, e.EndTime, start, end) {
			continue
		}
		if _, seen := byPerson[e.AssignedTo]; !seen {
			people = append(people, e.AssignedTo)
		}
		byPerson[e.AssignedTo] = append(byPerson[e.AssignedTo], e)
	}

	if len(people) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 8, "No plan entries this week.")
		return pdf.Output(w)
	}

	for _, person := range people {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, person)
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(60, 7, "Task", "1", 0, "L", true, 0, "")
		pdf.CellFormat(45, 7, "Project", "1", 0, "L", true, 0, "")
		pdf.CellFormat(35, 7, "Start", "1", 0, "L", true, 0, "")
		pdf.CellFormat(35, 7, "End", "1", 0, "L", true, 0, "")
		pdf.CellFormat(30, 7, "Status", "1", 1, "L", true, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		for _, e := range byPerson[person] {
			pdf.CellFormat(60, 7, e.TaskType, "1", 0, "L", false, 0, "")
			pdf.CellFormat(45, 7, e.ProjectCode, "1", 0, "L", false, 0, "")
			pdf.CellFormat(35, 7, e.StartTime.Format("Mon Jan 2"), "1", 0, "L", false, 0, "")
			pdf.CellFormat(35, 7, e.EndTime.Format("Mon Jan 2"), "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 7, e.Status, "1", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}
	return pdf.Output(w)
}

// MonthlyKPIPDF writes the KPI leaderboard of one month.
func MonthlyKPIPDF(w io.Writer, month time.Month, year int, rows []kpi.LeaderboardRow) error {
	title := fmt.Sprintf("KPI summary — %s %d", month, year)
	pdf := newDoc(title)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(12, 7, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(60, 7, "Employee", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 7, "Role", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 7, "Earned", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, "Target", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, "Efficiency", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 7, "Tasks", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, "Attitude", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for i, row := range rows {
		pdf.CellFormat(12, 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(60, 7, row.Employee.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, row.Employee.Role, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%.1f", row.Earned), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%.1f", row.Employee.TargetKPI), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.0f%%", row.Efficiency), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", row.TaskCount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.1f", row.Attitude), "1", 1, "R", false, 0, "")
	}
	return pdf.Output(w)
}
