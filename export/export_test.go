package export

import (
	"strings"
	"testing"

	"docusense/domain"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestRender_Markdown(t *testing.T) {
	req := require.New(t)
	result := domain.AnalysisResult{
		Summary:       "- Revenue grew\n- Costs fell",
		Sentiment:     lo.ToPtr("positive"),
		Tone:          lo.ToPtr("formal"),
		QualityScore:  0.875,
		Justification: "Clear and complete.",
	}

	content, err := Render(FormatMarkdown, result)
	req.NoError(err)
	req.Equal(`# Document Summary

## Generated Summary
- Revenue grew
- Costs fell

---

## Analysis

**Quality Score:** 88%
*Justification: Clear and complete.*

**Sentiment:** positive
**Tone:** formal`, content)
}

func TestRender_Text_WithoutSentiment(t *testing.T) {
	req := require.New(t)
	result := domain.AnalysisResult{
		Summary:       "A short paragraph.",
		QualityScore:  0.5,
		Justification: "Too brief.",
	}

	content, err := Render(FormatText, result)
	req.NoError(err)
	req.Equal(`DOCUMENT SUMMARY
================

GENERATED SUMMARY
-----------------
A short paragraph.

-----------------

ANALYSIS
--------
Quality Score: 50%
Justification: Too brief.`, content)
}

func TestRender_SentimentNeedsBothFields(t *testing.T) {
	req := require.New(t)
	result := domain.AnalysisResult{
		Summary:       "Paragraph.",
		Sentiment:     lo.ToPtr("negative"),
		QualityScore:  0.3,
		Justification: "Vague.",
	}

	for _, format := range []Format{FormatMarkdown, FormatText} {
		content, err := Render(format, result)
		req.NoError(err)
		req.NotContains(content, "Sentiment")
		req.NotContains(content, "negative")
	}
}

func TestQualityPercent(t *testing.T) {
	req := require.New(t)
	req.Equal(0, QualityPercent(0))
	req.Equal(100, QualityPercent(1))
	req.Equal(83, QualityPercent(0.826))
	req.Equal(88, QualityPercent(0.875))
	req.Equal(1, QualityPercent(0.005))
}

func TestParseFormat(t *testing.T) {
	req := require.New(t)

	f, err := ParseFormat("TXT")
	req.NoError(err)
	req.Equal(FormatText, f)
	req.Equal("text-summarizer-summary.txt", f.Filename())

	f, err = ParseFormat("")
	req.NoError(err)
	req.Equal(FormatMarkdown, f)
	req.Equal("text-summarizer-summary.md", f.Filename())

	_, err = ParseFormat("pdf")
	req.Error(err)
}

func TestRoundTrip(t *testing.T) {
	results := []domain.AnalysisResult{
		{
			Summary:       "- Point one\n- Point two with *stars*",
			QualityScore:  0.826,
			Justification: "Accurate, but misses the conclusion.",
		},
		{
			Summary:       "Paragraph mentioning ---\n\n## Analysis inside the text.",
			Sentiment:     lo.ToPtr("neutral"),
			Tone:          lo.ToPtr("informal"),
			QualityScore:  1,
			Justification: "Multi-line\njustification.",
		},
		{
			Summary:       "Sentiment: positive is quoted here.",
			Sentiment:     lo.ToPtr("sad"),
			Tone:          lo.ToPtr("pessimistic"),
			QualityScore:  0,
			Justification: "Off topic.",
		},
	}

	for _, format := range []Format{FormatMarkdown, FormatText} {
		for _, result := range results {
			req := require.New(t)
			content, err := Render(format, result)
			req.NoError(err)

			parsed, err := Parse(format, content)
			req.NoError(err, "format %s", format)
			req.Equal(result.Summary, parsed.Summary)
			req.Equal(QualityPercent(result.QualityScore), parsed.QualityPercent)
			req.Equal(result.Justification, parsed.Justification)
			req.Equal(result.Sentiment, parsed.Sentiment)
			req.Equal(result.Tone, parsed.Tone)
		}
	}
}

func TestParse_Malformed(t *testing.T) {
	req := require.New(t)

	_, err := Parse(FormatMarkdown, "DOCUMENT SUMMARY\n")
	req.ErrorIs(err, ErrMalformedExport)

	_, err = Parse(FormatText, "DOCUMENT SUMMARY\n================\n\nGENERATED SUMMARY\n-----------------\nonly a summary")
	req.ErrorIs(err, ErrMalformedExport)

	_, err = Parse(Format("pdf"), "")
	req.ErrorIs(err, ErrMalformedExport)
}

func TestRoundTrip_MarkersInsideJustification(t *testing.T) {
	results := []domain.AnalysisResult{
		{
			Summary:       "Short summary.",
			QualityScore:  0.5,
			Justification: "Quotes the layout:\n\n---\n\n## Analysis\n\n**Quality Score:** 10%\n*Justification: nested*",
		},
		{
			Summary:       "Short summary.",
			QualityScore:  0.7,
			Justification: "Mentions\n\n**Sentiment:** happy\nas a heading, then more text.",
		},
		{
			Summary:       "Short summary.",
			Sentiment:     lo.ToPtr("happy"),
			Tone:          lo.ToPtr("optimistic"),
			QualityScore:  0.9,
			Justification: "Text has\n\nSentiment: sad\nTone: formal\nin the middle.",
		},
		{
			Summary:       "Quotes\n\n-----------------\n\nANALYSIS\n--------\nQuality Score: high\nin the summary.",
			QualityScore:  0.25,
			Justification: "Fine.",
		},
	}

	for _, format := range []Format{FormatMarkdown, FormatText} {
		for _, result := range results {
			req := require.New(t)
			content, err := Render(format, result)
			req.NoError(err)

			parsed, err := Parse(format, content)
			req.NoError(err, "format %s", format)
			req.Equal(result.Summary, parsed.Summary)
			req.Equal(QualityPercent(result.QualityScore), parsed.QualityPercent)
			req.Equal(result.Justification, parsed.Justification)
			req.Equal(result.Sentiment, parsed.Sentiment)
			req.Equal(result.Tone, parsed.Tone)
		}
	}
}

func TestRender_TrimsTrailingWhitespace(t *testing.T) {
	req := require.New(t)
	result := domain.AnalysisResult{Summary: "S.", QualityScore: 1, Justification: "Ends with a newline.\n"}

	content, err := Render(FormatText, result)
	req.NoError(err)
	req.True(strings.HasSuffix(content, "Justification: Ends with a newline."))

	parsed, err := Parse(FormatText, content)
	req.NoError(err)
	req.Equal("Ends with a newline.", parsed.Justification)
}
