package types

import (
	"github.com/smartstow/move-planner/internal/estimation"
	"github.com/smartstow/move-planner/internal/household"
)

type ReportRenderer interface {
	Render(data *ReportData) ([]byte, error)
	SupportedFormat() ReportFormat
	ContentType() string
}

type PlanProcessor interface {
	ProcessPlan(table TableInfo, snapshot household.Snapshot, result estimation.Result) (*ReportData, error)
}

type ReportFormat string

const (
	ReportFormatCSV  ReportFormat = "csv"
	ReportFormatHTML ReportFormat = "html"
	ReportFormatXLSX ReportFormat = "xlsx"
)

type ReportOptions struct {
	Format ReportFormat
	// Title replaces the default report heading when set.
	Title string
	// IncludeInputs adds the household section listing what was declared.
	IncludeInputs bool
}

// TableInfo is what a report needs to know about the reference table behind the estimate.
type TableInfo struct {
	Version    string
	Name       string
	HobbyNames map[string]string
}

type ReportData struct {
	Title      string
	Table      TableInfo
	Display    estimation.Display
	Sections   []Section
	Warnings   []string
	Options    ReportOptions
	Timestamps ReportTimestamps
}

// Section is a titled list of label/value rows, rendered the same way by every format.
type Section struct {
	Title string
	Rows  []Row
}

type Row struct {
	Label string
	Value string
	Note  string
}

type ReportTimestamps struct {
	Generated     string
	GeneratedTime string
}
