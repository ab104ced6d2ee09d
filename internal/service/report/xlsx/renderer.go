package xlsx

import (
	"fmt"

	"github.com/smartstow/move-planner/internal/service/report/types"
	"github.com/xuri/excelize/v2"
)

// PlanSheet is the name of the worksheet holding the plan.
const PlanSheet = "Plan"

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatXLSX
}

func (r *Renderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (r *Renderer) Render(data *types.ReportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", PlanSheet); err != nil {
		return nil, err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2C3E50"}},
	})
	if err != nil {
		return nil, err
	}
	sectionStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	if err != nil {
		return nil, err
	}

	w := &sheetWriter{f: f, sheet: PlanSheet, row: 1}
	w.write(titleStyle, data.Title)
	w.write(0, fmt.Sprintf("Generated: %s at %s", data.Timestamps.Generated, data.Timestamps.GeneratedTime))
	w.row++

	for _, section := range data.Sections {
		w.write(sectionStyle, section.Title)
		w.write(headerStyle, "Item", "Value", "Details")
		for _, row := range section.Rows {
			w.write(0, row.Label, row.Value, row.Note)
		}
		w.row++
	}

	if len(data.Warnings) > 0 {
		w.write(sectionStyle, "Warnings")
		for _, warning := range data.Warnings {
			w.write(0, warning)
		}
	}
	if w.err != nil {
		return nil, w.err
	}

	if err := f.SetColWidth(PlanSheet, "A", "A", 32); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(PlanSheet, "B", "B", 24); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(PlanSheet, "C", "C", 60); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetWriter appends rows and keeps the first error.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	err   error
}

func (w *sheetWriter) write(style int, values ...string) {
	if w.err != nil {
		return
	}
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, w.row)
		if err != nil {
			w.err = err
			return
		}
		if err := w.f.SetCellValue(w.sheet, cell, v); err != nil {
			w.err = err
			return
		}
	}
	if style != 0 && len(values) > 0 {
		first, _ := excelize.CoordinatesToCellName(1, w.row)
		last, _ := excelize.CoordinatesToCellName(len(values), w.row)
		if err := w.f.SetCellStyle(w.sheet, first, last, style); err != nil {
			w.err = err
			return
		}
	}
	w.row++
}
