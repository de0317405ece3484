package service

import (
	"html/template"
	"io"

	"github.com/ludo-technologies/bincheck/domain"
	"github.com/ludo-technologies/bincheck/internal/version"
)

// runHTMLData carries a run report into the HTML template
type runHTMLData struct {
	Report  *domain.RunReport
	Version string
}

// writeRunHTML renders a standalone HTML page for a run report
func (f *OutputFormatterImpl) writeRunHTML(report *domain.RunReport, writer io.Writer) error {
	funcMap := template.FuncMap{
		"percent": func(rate float64) float64 { return rate * 100 },
		"statusClass": func(s domain.Status) string {
			switch s {
			case domain.StatusPass:
				return "pass"
			case domain.StatusFail:
				return "fail"
			case domain.StatusError:
				return "error"
			default:
				return "skip"
			}
		},
	}

	tmpl := template.Must(template.New("run").Funcs(funcMap).Parse(runHTMLTemplate))
	return tmpl.Execute(writer, runHTMLData{
		Report:  report,
		Version: version.GetVersion(),
	})
}

const runHTMLTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Check Suite Report</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
            margin: 0;
            padding: 2rem;
            background: #f5f6f8;
            color: #24292e;
        }
        .container { max-width: 960px; margin: 0 auto; }
        h1 { margin-bottom: 0.25rem; }
        .meta { color: #6a737d; margin-bottom: 1.5rem; }
        .cards {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(140px, 1fr));
            gap: 1rem;
            margin-bottom: 2rem;
        }
        .card {
            background: #fff;
            border-radius: 6px;
            padding: 1rem;
            box-shadow: 0 1px 3px rgba(0,0,0,0.08);
            text-align: center;
        }
        .card .value { font-size: 1.8rem; font-weight: 600; }
        .card .label { color: #6a737d; font-size: 0.85rem; }
        table {
            width: 100%;
            border-collapse: collapse;
            background: #fff;
            border-radius: 6px;
            overflow: hidden;
            box-shadow: 0 1px 3px rgba(0,0,0,0.08);
        }
        th, td { padding: 0.6rem 0.9rem; text-align: left; border-bottom: 1px solid #eaecef; }
        th { background: #fafbfc; font-weight: 600; }
        .status { font-weight: 600; }
        .status.pass { color: #22863a; }
        .status.fail { color: #cb2431; }
        .status.error { color: #b31d28; }
        .status.skip { color: #6a737d; }
        footer { margin-top: 2rem; color: #6a737d; font-size: 0.8rem; }
    </style>
</head>
<body>
<div class="container">
    <h1>Check Suite Report</h1>
    <div class="meta">
        {{.Report.Timestamp}} &middot; {{.Report.Summary.BinaryPath}} &middot;
        Overall: <span class="status {{statusClass .Report.Summary.OverallStatus}}">{{.Report.Summary.OverallStatus}}</span>
    </div>
    <div class="cards">
        <div class="card"><div class="value">{{.Report.TotalTests}}</div><div class="label">Total</div></div>
        <div class="card"><div class="value">{{.Report.Passed}}</div><div class="label">Passed</div></div>
        <div class="card"><div class="value">{{.Report.Failed}}</div><div class="label">Failed</div></div>
        <div class="card"><div class="value">{{.Report.Skipped}}</div><div class="label">Skipped</div></div>
        <div class="card"><div class="value">{{.Report.Errors}}</div><div class="label">Errors</div></div>
        <div class="card"><div class="value">{{printf "%.1f%%" (percent .Report.Summary.PassRate)}}</div><div class="label">Pass Rate</div></div>
    </div>
    <table>
        <thead>
            <tr><th>Status</th><th>Check</th><th>Category</th><th>Message</th><th>Duration</th></tr>
        </thead>
        <tbody>
            {{range .Report.Results}}
            <tr>
                <td class="status {{statusClass .Status}}">{{.Status}}</td>
                <td>{{.Name}}</td>
                <td>{{.Category}}</td>
                <td>{{.Message}}</td>
                <td>{{printf "%.3fs" .Duration}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>
    <footer>Generated by bincheck {{.Version}}</footer>
</div>
</body>
</html>
`
