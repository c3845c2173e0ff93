package notifier

import (
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"ipoalert/internal/model"
)

const reportHTML = `<html><body>
{{if .Matches}}<h2>US IPOs Today (Offer Amount &gt; $200M)</h2>
{{else}}<h2>No US IPOs Today Above Threshold</h2>
{{end}}<p><b>US market date (NY):</b> {{.MarketDate}}<br/>
<b>Run time (Dubai):</b> {{.RunTime}}<br/>
<b>IPO records returned by API:</b> {{.TotalItems}}</p>
{{if .Matches}}<table border="1" style="border-collapse:collapse; width:100%;">
<tr style="background:#4CAF50;color:white;">
<th>Ticker</th><th>Company</th><th>Offer Amount</th><th>Price</th><th>Calc</th>
</tr>
{{range .Matches}}<tr><td><b>{{.Ticker}}</b></td><td>{{.Company}}</td><td>{{.OfferAmount}}</td><td>{{.Price}}</td><td>{{.CalcMethod}}</td></tr>
{{end}}</table>
{{else}}<p>No IPOs found with offer amount &gt; $200M.</p>
{{end}}{{if .Errors}}<h3>Errors (brief)</h3><ul>
{{range .Errors}}<li><code>{{.}}</code></li>
{{end}}</ul>
{{end}}</body></html>
`

var reportTmpl = template.Must(template.New("report").Parse(reportHTML))

type reportData struct {
	MarketDate string
	RunTime    string
	TotalItems int
	Matches    []model.Match
	Errors     []string
}

// Render builds the email subject and HTML body for one run. All upstream
// text is escaped by the template engine.
func Render(marketDate string, matches []model.Match, errors []string, totalItems int, runTime time.Time) (string, string) {
	var subject string
	if len(matches) > 0 {
		subject = fmt.Sprintf("US IPOs Today > $200M — %s", marketDate)
	} else {
		subject = fmt.Sprintf("No US IPOs Today > $200M — %s", marketDate)
	}

	data := reportData{
		MarketDate: marketDate,
		RunTime:    runTime.Format("2006-01-02 15:04:05 MST"),
		TotalItems: totalItems,
		Matches:    matches,
		Errors:     errors,
	}

	var b strings.Builder
	if err := reportTmpl.Execute(&b, data); err != nil {
		slog.Error("render report", "error", err)
	}
	return subject, b.String()
}
