package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
)

// HTMLFormatter produces a standalone HTML report
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":       FormatCurrency,
	"mult":       FormatMultiplier,
	"entryValue": FormatEntryValue,
	"yesno":      YesNo,
	"orNone":     conditionsOrNone,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(r *Report) ([]byte, error) {
	if r == nil || r.Result == nil {
		return nil, fmt.Errorf("report has no prediction result")
	}
	var buf bytes.Buffer
	data := struct {
		*Report
		Title string
	}{r, reportTitle(r)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
