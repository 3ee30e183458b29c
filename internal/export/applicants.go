// Package export renders job applicants into spreadsheet workbooks.
package export

import (
	"bytes"
	"fmt"
	"time"

	"alumnihub/internal/repository"

	"github.com/xuri/excelize/v2"
)

const (
	// SheetName is the worksheet holding one row per applicant.
	SheetName = "Applicants"
	// ContentType is the MIME type of the generated workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	appliedAtLayout = "2006-01-02 15:04:05"
)

type column struct {
	header string
	width  float64
}

var columns = []column{
	{"User ID", 12},
	{"Full Name", 30},
	{"Email", 30},
	{"Phone", 20},
	{"Graduation Year", 18},
	{"Language", 20},
	{"LinkedIn", 30},
	{"Skills", 30},
	{"Applied At", 22},
}

// Headers returns the header row in column order.
func Headers() []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.header
	}
	return out
}

// Filename is the attachment name for a job's applicant export.
func Filename(jobID uint) string {
	return fmt.Sprintf("applications-%d.xlsx", jobID)
}

// ApplicantsWorkbook builds the xlsx workbook for the given applicants.
func ApplicantsWorkbook(applicants []repository.Applicant) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c.header
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, col, col, c.width); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, style); err != nil {
		return nil, fmt.Errorf("apply header style: %w", err)
	}

	for i, a := range applicants {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := applicantRow(a)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

func applicantRow(a repository.Applicant) []any {
	var year any = ""
	if a.GraduationYear != nil {
		year = *a.GraduationYear
	}
	return []any{
		a.ID,
		a.FullName,
		a.Email,
		a.Phone,
		year,
		a.Language,
		a.LinkedIn,
		a.Skills,
		formatAppliedAt(a.AppliedAt),
	}
}

func formatAppliedAt(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(appliedAtLayout)
}
