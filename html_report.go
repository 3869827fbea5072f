package main

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
)

var htmlReportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"currency":   FormatCurrency,
	"rate":       FormatRate,
	"date":       func(r MarketRate) string { return r.LastUpdated.Format("2006-01-02") },
	"disclaimer": func() string { return disclaimer },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Simple Path Calculator: {{.Summary.Amount}}</title>
    <style>
        :root {
            --primary: #2563eb;
            --success: #16a34a;
            --warning: #ea580c;
            --bg: #f8fafc;
            --card-bg: #ffffff;
            --text: #1e293b;
            --text-muted: #64748b;
            --border: #e2e8f0;
        }
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: var(--bg);
            color: var(--text);
            line-height: 1.6;
            padding: 2rem;
        }
        .container { max-width: 900px; margin: 0 auto; }
        h1 { font-size: 1.75rem; margin-bottom: 0.5rem; color: var(--primary); }
        h2 {
            font-size: 1.25rem;
            margin: 1.5rem 0 1rem;
            padding-bottom: 0.5rem;
            border-bottom: 2px solid var(--primary);
        }
        .subtitle { color: var(--text-muted); margin-bottom: 1.5rem; }
        .card {
            background: var(--card-bg);
            border-radius: 8px;
            box-shadow: 0 1px 3px rgba(0,0,0,0.1);
            padding: 1.5rem;
            margin-bottom: 1.5rem;
        }
        .grid-2 { display: grid; gap: 1rem; grid-template-columns: repeat(2, 1fr); }
        @media (max-width: 768px) { .grid-2 { grid-template-columns: 1fr; } }
        .value { font-size: 1.75rem; font-weight: 700; color: var(--success); }
        .muted { color: var(--text-muted); font-size: 0.875rem; }
        table { width: 100%; border-collapse: collapse; font-size: 0.875rem; }
        th, td { padding: 0.5rem; text-align: right; border-bottom: 1px solid var(--border); }
        th:first-child, td:first-child { text-align: left; }
        th { background: var(--primary); color: white; }
        blockquote { border-left: 4px solid var(--primary); padding-left: 1rem; font-style: italic; }
        .warning { color: var(--warning); }
    </style>
</head>
<body>
<div class="container">
    <h1>Your Investment Projection</h1>
    <p class="subtitle">If you invested {{.Summary.Amount}} in a total stock market index fund for {{.Projection.Years}} years</p>

    <div class="grid-2">
        <div class="card">
            <h3>Conservative ({{rate .ConservativeRate}})</h3>
            <div class="value">{{.Summary.Conservative}}</div>
            <p>Gain: +{{.Summary.ConservativeGain}}</p>
            <p>Multiplier: {{.Summary.ConservativeMultiplier}}</p>
            <p class="muted">({{.Summary.ConservativeAnnual}} annually)</p>
        </div>
        <div class="card">
            <h3>Optimistic ({{rate .OptimisticRate}})</h3>
            <div class="value">{{.Summary.Optimistic}}</div>
            <p>Gain: +{{.Summary.OptimisticGain}}</p>
            <p>Multiplier: {{.Summary.OptimisticMultiplier}}</p>
            <p class="muted">({{.Summary.OptimisticAnnual}} annually)</p>
        </div>
    </div>

    <div class="card">
        <h2>{{.Suggestion.Emoji}} Augie's Suggestion</h2>
        <p>{{.Suggestion.Message}}</p>
        {{with .Suggestion.Item}}
        <p><strong>{{.Name}}</strong> by {{.Brand}}, {{$.Suggestion.PriceText}}</p>
        <p>You could buy <strong>{{$.Suggestion.Quantity}}</strong> of these!</p>
        <p><a href="{{$.Suggestion.ShopURL}}">Shop on Chewy</a></p>
        {{end}}
    </div>

    <div class="card">
        <h2>Wisdom from JL Collins</h2>
        <blockquote>"{{.Quote}}"</blockquote>
    </div>

    {{if .Schedule}}
    <div class="card">
        <h2>Year-by-Year Growth</h2>
        <table>
            <tr><th>Year</th><th>Conservative</th><th>Optimistic</th></tr>
            {{range .Schedule}}
            <tr><td>{{.Year}}</td><td>{{currency .Conservative}}</td><td>{{currency .Optimistic}}</td></tr>
            {{end}}
        </table>
    </div>
    {{end}}

    <p class="muted{{if .MarketData.IsFallback}} warning{{end}}">Market data source: {{.MarketData.Source}} (Last updated: {{date .MarketData}})</p>
    <p class="muted">{{disclaimer}}</p>
</div>
</body>
</html>
`))

// GenerateHTMLReport writes a standalone HTML page for a calculation result
func GenerateHTMLReport(result CalculationResult, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := htmlReportTemplate.Execute(f, result); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}
	return nil
}

// reportFilename builds the export path for a calculation under dir
func reportFilename(dir string, result CalculationResult, ext string) string {
	name := fmt.Sprintf("projection-%s-%s.%s",
		result.CalculatedAt.Format("2006-01-02-150405"), shortID(result.ID), ext)
	return filepath.Join(dir, name)
}

// ExportReports writes the requested HTML and PDF reports for result into dir
// and returns the paths written.
func ExportReports(result CalculationResult, dir string, html, pdf bool) ([]string, error) {
	if !html && !pdf {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create report directory: %w", err)
	}

	var written []string
	if html {
		path := reportFilename(dir, result, "html")
		if err := GenerateHTMLReport(result, path); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	if pdf {
		data, err := GenerateProjectionPDFReport(result)
		if err != nil {
			return written, fmt.Errorf("generate pdf report: %w", err)
		}
		path := reportFilename(dir, result, "pdf")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
