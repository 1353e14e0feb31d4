package confidence

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/scandocs/pipeline/internal/entity"
)

// WriteXLSX renders a comparison report as a single-sheet XLSX workbook,
// returned as bytes for the caller to write wherever it likes.
func WriteXLSX(report entity.ConfidenceReport, labelA, labelB string) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Comparison"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	defaultSheet := f.GetSheetName(0)
	if defaultSheet != sheet {
		_ = f.DeleteSheet(defaultSheet)
	}

	headers := []string{"Metric", labelA, labelB}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	rows := []struct {
		metric string
		a, b   any
	}{
		{"Files", report.A.Files, report.B.Files},
		{"Sum", report.A.Sum, report.B.Sum},
		{"Average", report.A.Average, report.B.Average},
		{"Median", report.A.Median, report.B.Median},
		{"Wins", report.AWins, report.BWins},
	}
	for r, row := range rows {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, r+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, row.metric)
		write(2, row.a)
		write(3, row.b)
	}
	tieCell, _ := excelize.CoordinatesToCellName(1, len(rows)+2)
	_ = f.SetCellValue(sheet, tieCell, "Ties")
	tieVal, _ := excelize.CoordinatesToCellName(2, len(rows)+2)
	_ = f.SetCellValue(sheet, tieVal, report.Ties)

	_ = f.SetColWidth(sheet, "A", "A", 14)
	_ = f.SetColWidth(sheet, "B", "C", 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
