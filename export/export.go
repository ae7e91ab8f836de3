package export

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"text/template"

	"docusense/domain"
)

type Format string

const (
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
)

const filenamePrefix = "text-summarizer-summary"

var markdownTemplate = template.Must(template.New("markdown").Parse(`# Document Summary

## Generated Summary
{{.Summary}}

---

## Analysis

**Quality Score:** {{.Percent}}%
*Justification: {{.Justification}}*
{{- if .WithSentiment}}

**Sentiment:** {{.Sentiment}}
**Tone:** {{.Tone}}
{{- end}}`))

var textTemplate = template.Must(template.New("text").Parse(`DOCUMENT SUMMARY
================

GENERATED SUMMARY
-----------------
{{.Summary}}

-----------------

ANALYSIS
--------
Quality Score: {{.Percent}}%
Justification: {{.Justification}}
{{- if .WithSentiment}}

Sentiment: {{.Sentiment}}
Tone: {{.Tone}}
{{- end}}`))

type view struct {
	Summary       string
	Percent       int
	Justification string
	WithSentiment bool
	Sentiment     string
	Tone          string
}

func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatMarkdown, FormatText:
		return f, nil
	case "":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown export format %q", raw)
	}
}

func (f Format) Filename() string {
	return filenamePrefix + "." + string(f)
}

func (f Format) ContentType() string {
	if f == FormatMarkdown {
		return "text/markdown; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

// QualityPercent rounds half up, like the browser export did.
func QualityPercent(score float64) int {
	return int(math.Floor(score*100 + 0.5))
}

// Render writes the result in the given format. Sentiment and tone only
// appear when both are set.
func Render(format Format, result domain.AnalysisResult) (string, error) {
	tmpl := markdownTemplate
	if format == FormatText {
		tmpl = textTemplate
	}

	v := view{
		Summary:       result.Summary,
		Percent:       QualityPercent(result.QualityScore),
		Justification: result.Justification,
	}
	if result.Sentiment != nil && result.Tone != nil && *result.Sentiment != "" && *result.Tone != "" {
		v.WithSentiment = true
		v.Sentiment = *result.Sentiment
		v.Tone = *result.Tone
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("rendering %s export: %w", format, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
