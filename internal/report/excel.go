// Package report generates spreadsheet exports from evaluation records.
// This is write-only consumption of the record store: nothing here mutates
// core state.
package report

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"performanceEvaluation/internal/eval"
	"performanceEvaluation/models"
)

// Exporter writes xlsx reports into a fixed exports directory.
type Exporter struct {
	dir string
}

func NewExporter(dir string) (*Exporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create exports directory: %w", err)
	}
	return &Exporter{dir: dir}, nil
}

// ExportEvaluationsDetail writes one row per evaluation with base columns
// plus one column per criterion. An empty filename gets a timestamped
// default. Returns the written file path.
func (x *Exporter) ExportEvaluationsDetail(evaluations []models.Evaluation, criteria []models.Criterion, users []models.User, filename string) (string, error) {
	if filename == "" {
		filename = "evaluations_detail_" + time.Now().Format("20060102_150405") + ".xlsx"
	}
	path := filepath.Join(x.dir, filename)

	userNames := make(map[string]string, len(users))
	for _, u := range users {
		name := u.FullName
		if name == "" {
			name = u.Username
		}
		userNames[u.ID] = name
	}
	// Stable criterion column order.
	ordered := make([]models.Criterion, len(criteria))
	copy(ordered, criteria)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Name < ordered[j].Name })

	header := []interface{}{"Evaluation ID", "Date", "Employee", "Evaluator", "Status", "Comments"}
	for _, c := range ordered {
		header = append(header, c.Name)
	}

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Evaluations"
	f.SetSheetName("Sheet1", sheet)
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return "", err
	}
	for i, ev := range evaluations {
		row := []interface{}{
			ev.ID,
			ev.Date,
			nameOrID(userNames, ev.EmployeeID),
			nameOrID(userNames, ev.EvaluatorID),
			string(ev.Status),
			ev.Comments,
		}
		for _, c := range ordered {
			if score, ok := ev.Scores[c.ID]; ok {
				row = append(row, score)
			} else {
				row = append(row, nil)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return "", err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}

// ExportEmployeeSummary writes one row per employee summary. An empty
// filename gets a timestamped default. Returns the written file path.
func (x *Exporter) ExportEmployeeSummary(summaries []eval.Summary, filename string) (string, error) {
	if filename == "" {
		filename = "employee_summary_" + time.Now().Format("20060102_150405") + ".xlsx"
	}
	path := filepath.Join(x.dir, filename)

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Summary"
	f.SetSheetName("Sheet1", sheet)
	header := []interface{}{"Employee Name", "Email", "Total Evaluations", "Final Evaluations", "Average Score", "Latest Score"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return "", err
	}
	for i, s := range summaries {
		row := []interface{}{
			s.EmployeeName,
			s.Email,
			s.TotalEvaluations,
			s.FinalEvaluations,
			round2(s.AverageScore),
			round2(s.LatestScore),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return "", err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}

func nameOrID(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	// Dangling reference (user deleted after the evaluation was written).
	return id
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
