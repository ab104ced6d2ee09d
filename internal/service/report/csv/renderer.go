package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/smartstow/move-planner/internal/service/report/types"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatCSV
}

func (r *Renderer) ContentType() string {
	return "text/csv; charset=utf-8"
}

func (r *Renderer) Render(data *types.ReportData) ([]byte, error) {
	var csvRows [][]string

	csvRows = append(csvRows, []string{strings.ToUpper(data.Title)})
	csvRows = append(csvRows, []string{fmt.Sprintf("Generated: %s at %s",
		data.Timestamps.Generated, data.Timestamps.GeneratedTime)})
	csvRows = append(csvRows, []string{""})

	for _, section := range data.Sections {
		csvRows = r.addSection(csvRows, section)
	}

	if len(data.Warnings) > 0 {
		csvRows = append(csvRows, []string{"WARNINGS"})
		for _, w := range data.Warnings {
			csvRows = append(csvRows, []string{w})
		}
	}

	return r.convertRowsToCSV(csvRows)
}

func (r *Renderer) addSection(csvRows [][]string, section types.Section) [][]string {
	csvRows = append(csvRows, []string{strings.ToUpper(section.Title)})
	csvRows = append(csvRows, []string{"Item", "Value", "Details"})
	for _, row := range section.Rows {
		csvRows = append(csvRows, []string{row.Label, row.Value, row.Note})
	}
	csvRows = append(csvRows, []string{""})

	return csvRows
}

func (r *Renderer) convertRowsToCSV(csvRows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.WriteAll(csvRows); err != nil {
		return nil, fmt.Errorf("failed to write CSV data: %w", err)
	}

	return buf.Bytes(), nil
}
