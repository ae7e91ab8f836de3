package export

import (
	"fmt"
	"strconv"
	"strings"
)

var ErrMalformedExport = fmt.Errorf("malformed export")

// Parsed holds the fields recovered from an export.
type Parsed struct {
	Summary        string
	QualityPercent int
	Justification  string
	Sentiment      *string
	Tone           *string
}

type layout struct {
	head             string
	analysis         string
	justification    string
	justificationEnd string
	sentiment        string
	tone             string
}

var layouts = map[Format]layout{
	FormatMarkdown: {
		head:             "# Document Summary\n\n## Generated Summary\n",
		analysis:         "\n\n---\n\n## Analysis\n\n**Quality Score:** ",
		justification:    "%\n*Justification: ",
		justificationEnd: "*",
		sentiment:        "\n\n**Sentiment:** ",
		tone:             "\n**Tone:** ",
	},
	FormatText: {
		head:          "DOCUMENT SUMMARY\n================\n\nGENERATED SUMMARY\n-----------------\n",
		analysis:      "\n\n-----------------\n\nANALYSIS\n--------\nQuality Score: ",
		justification: "%\nJustification: ",
		sentiment:     "\n\nSentiment: ",
		tone:          "\nTone: ",
	},
}

// Parse recovers the fields of a rendered export.
func Parse(format Format, content string) (Parsed, error) {
	l, ok := layouts[format]
	if !ok {
		return Parsed{}, fmt.Errorf("%w: unknown format %q", ErrMalformedExport, format)
	}

	body, ok := strings.CutPrefix(content, l.head)
	if !ok {
		return Parsed{}, fmt.Errorf("%w: missing %s header", ErrMalformedExport, format)
	}
	summary, rawPercent, rest, ok := l.splitAnalysis(body)
	if !ok {
		return Parsed{}, fmt.Errorf("%w: missing analysis section", ErrMalformedExport)
	}
	percent, err := strconv.Atoi(rawPercent)
	if err != nil {
		return Parsed{}, fmt.Errorf("%w: quality score %q: %v", ErrMalformedExport, rawPercent, err)
	}
	parsed := Parsed{Summary: summary, QualityPercent: percent}

	if j := strings.LastIndex(rest, l.sentiment); j >= 0 && strings.HasSuffix(rest[:j], l.justificationEnd) {
		sentiment, tone, found := strings.Cut(rest[j+len(l.sentiment):], l.tone)
		if found && singleLine(sentiment) && singleLine(tone) {
			parsed.Sentiment = &sentiment
			parsed.Tone = &tone
			rest = rest[:j]
		}
	}

	justification, ok := strings.CutSuffix(rest, l.justificationEnd)
	if !ok {
		return Parsed{}, fmt.Errorf("%w: unterminated justification", ErrMalformedExport)
	}
	parsed.Justification = justification
	return parsed, nil
}

// splitAnalysis anchors on the first analysis marker followed by a score and
// the justification marker, so the marker text may reappear in the
// justification.
func (l layout) splitAnalysis(body string) (summary, percent, rest string, ok bool) {
	offset := 0
	for {
		i := strings.Index(body[offset:], l.analysis)
		if i < 0 {
			return "", "", "", false
		}
		start := offset + i
		raw, after, found := strings.Cut(body[start+len(l.analysis):], l.justification)
		if found && isDigits(raw) {
			return body[:start], raw, after, true
		}
		offset = start + 1
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func singleLine(s string) bool {
	return s != "" && !strings.Contains(s, "\n")
}
