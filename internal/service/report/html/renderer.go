package html

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/smartstow/move-planner/internal/service/report/types"
)

type Renderer struct {
	tmpl *template.Template
}

type templateData struct {
	CSS           template.CSS
	Title         string
	GeneratedDate string
	GeneratedTime string
	Truck         string
	TotalHours    string
	Boxes         string
	Plan          string
	PlanMessage   string
	Warnings      []string
	Sections      []types.Section
}

func NewRenderer() *Renderer {
	return &Renderer{tmpl: template.Must(template.New("report").Parse(htmlReportTemplate))}
}

func (r *Renderer) SupportedFormat() types.ReportFormat {
	return types.ReportFormatHTML
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(data *types.ReportData) ([]byte, error) {
	td := templateData{
		CSS:           template.CSS(printableCSS),
		Title:         data.Title,
		GeneratedDate: data.Timestamps.Generated,
		GeneratedTime: data.Timestamps.GeneratedTime,
		Truck:         data.Display.Truck,
		TotalHours:    data.Display.TotalHours,
		Boxes:         data.Display.Boxes,
		Plan:          data.Display.Plan,
		PlanMessage:   data.Display.PlanMessage,
		Warnings:      data.Warnings,
		Sections:      data.Sections,
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, td); err != nil {
		return nil, fmt.Errorf("failed to execute HTML template: %w", err)
	}

	return buf.Bytes(), nil
}

const printableCSS = `
        body { font-family: Arial, sans-serif; margin: 20px; background: #f5f5f5; }
        .container { max-width: 960px; margin: 0 auto; background: white; padding: 30px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        .header { text-align: center; margin-bottom: 30px; }
        .header h1 { color: #2c3e50; margin-bottom: 10px; font-size: 2.2em; }
        .header p { color: #7f8c8d; }
        .summary-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(180px, 1fr)); gap: 20px; margin: 30px 0; }
        .summary-card { background: #3498db; color: white; padding: 20px; border-radius: 8px; text-align: center; }
        .summary-card h4 { margin: 0 0 10px 0; font-size: 14px; font-weight: 600; }
        .summary-card .number { font-size: 24px; font-weight: bold; }
        .warning { background: #e74c3c; color: white; padding: 15px; border-radius: 8px; margin: 20px 0; }
        .section h2 { color: #2c3e50; border-left: 4px solid #3498db; padding-left: 15px; }
        table { width: 100%; border-collapse: collapse; margin: 20px 0; }
        th, td { padding: 10px 14px; text-align: left; border-bottom: 1px solid #ddd; }
        th { background: #2c3e50; color: white; font-weight: 600; }
        tr:nth-child(even) { background-color: #f8f9fa; }
        .footer { text-align: center; margin-top: 40px; color: #7f8c8d; border-top: 1px solid #eee; padding-top: 20px; }
        @media print { body { background: white; } .container { box-shadow: none; } .section { break-inside: avoid; } }
`

const htmlReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <style>{{.CSS}}</style>
</head>
<body>
<div class="container">
    <div class="header">
        <h1>{{.Title}}</h1>
        <p>Generated {{.GeneratedDate}} at {{.GeneratedTime}}</p>
    </div>
    <div class="summary-grid">
        <div class="summary-card"><h4>Truck</h4><div class="number">{{.Truck}}</div></div>
        <div class="summary-card"><h4>Boxes</h4><div class="number">{{.Boxes}}</div></div>
        <div class="summary-card"><h4>Labor hours</h4><div class="number">{{.TotalHours}}</div></div>
        <div class="summary-card"><h4>Plan</h4><div class="number">{{.Plan}}</div></div>
    </div>
    {{range .Warnings}}<div class="warning">{{.}}</div>
    {{end}}
    {{range .Sections}}<div class="section">
        <h2>{{.Title}}</h2>
        <table>
            <tr><th>Item</th><th>Value</th><th>Details</th></tr>
            {{range .Rows}}<tr><td>{{.Label}}</td><td>{{.Value}}</td><td>{{.Note}}</td></tr>
            {{end}}
        </table>
    </div>
    {{end}}
    <div class="footer">
        <p>{{.PlanMessage}}</p>
    </div>
</div>
</body>
</html>
`
