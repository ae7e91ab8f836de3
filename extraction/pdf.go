package extraction

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf16"

	apperrors "docusense/errors"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/text/encoding/charmap"
)

// PDFExtractor reads the text layer of a PDF with pdfcpu.
// Scanned documents without a text layer yield ErrNoTextLayer.
type PDFExtractor struct {
	log *slog.Logger
}

func NewPDFExtractor(log *slog.Logger) *PDFExtractor {
	return &PDFExtractor{log: log}
}

func (e *PDFExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	conf := model.NewDefaultConfiguration()
	pdfCtx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return "", fmt.Errorf("pdfcpu read: %w", err)
	}

	var text strings.Builder
	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		pageText := extractPageText(pdfCtx, pageNr)
		if pageText == "" {
			continue
		}
		if text.Len() > 0 {
			text.WriteByte('\n')
		}
		text.WriteString(pageText)
	}

	if text.Len() == 0 {
		return "", apperrors.ErrNoTextLayer
	}
	e.log.Debug("PDF text extracted", "pages", pdfCtx.PageCount, "chars", text.Len())
	return text.String(), nil
}

func extractPageText(ctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil || r == nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return textFromContentStream(data)
}

// textFromContentStream keeps the operands of the text-showing operators
// (Tj, TJ, ', ") and turns positioning operators (Td, TD, T*) into whitespace.
// Operators may share a line, as most generators emit them.
func textFromContentStream(data []byte) string {
	var sb strings.Builder
	var operands []string

	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case c == '(':
			literal, next := readLiteral(data, i)
			operands = append(operands, decodeText(unescapeLiteral(literal)))
			i = next
		case c == '<' && i+1 < len(data) && data[i+1] == '<':
			i += 2
		case c == '<':
			hex, next := readHex(data, i)
			operands = append(operands, decodeText(hex))
			i = next
		case c == '%':
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}
		case c == '[' || c == ']' || isWhitespace(c):
			i++
		case c == '>' || c == '/' || c == '{' || c == '}':
			// Names and dictionaries carry no readable text.
			i = skipToken(data, i+1)
		default:
			next := skipToken(data, i)
			if next == i {
				i++
				continue
			}
			token := string(data[i:next])
			i = next
			if isNumber(token) {
				continue
			}
			switch token {
			case "Tj", "TJ":
				for _, operand := range operands {
					sb.WriteString(operand)
				}
			case "'", `"`:
				for _, operand := range operands {
					sb.WriteByte('\n')
					sb.WriteString(operand)
				}
			case "Td", "TD":
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
			case "T*":
				sb.WriteByte('\n')
			}
			operands = operands[:0]
		}
	}

	return cleanText(sb.String())
}

// readLiteral returns the raw bytes of the balanced literal string opening at start.
func readLiteral(data []byte, start int) ([]byte, int) {
	depth := 0
	for i := start; i < len(data); i++ {
		switch data[i] {
		case '\\':
			i++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return data[start+1 : i], i + 1
			}
		}
	}
	return data[start+1:], len(data)
}

func skipToken(data []byte, i int) int {
	for i < len(data) && !isWhitespace(data[i]) && !isDelimiter(data[i]) {
		i++
	}
	return i
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == 0
}

func isDelimiter(c byte) bool {
	return strings.IndexByte("()<>[]{}/%", c) >= 0
}

func isNumber(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if !unicode.IsDigit(r) && r != '.' && r != '-' && r != '+' {
			return false
		}
	}
	return true
}

// readHex decodes the hex string opening at start. Whitespace is ignored and
// a missing final digit counts as 0.
func readHex(data []byte, start int) ([]byte, int) {
	var out []byte
	var digits []byte
	i := start + 1
	for ; i < len(data) && data[i] != '>'; i++ {
		if v, ok := hexValue(data[i]); ok {
			digits = append(digits, v)
		}
	}
	if len(digits)%2 == 1 {
		digits = append(digits, 0)
	}
	for j := 0; j < len(digits); j += 2 {
		out = append(out, digits[j]<<4|digits[j+1])
	}
	if i < len(data) {
		i++
	}
	return out, i
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// decodeText turns string operand bytes into UTF-8. Strings with a UTF-16BE
// or UTF-8 byte order mark are decoded as such, everything else as WinAnsi,
// the encoding of the standard fonts.
func decodeText(raw []byte) string {
	switch {
	case bytes.HasPrefix(raw, []byte{0xFE, 0xFF}):
		units := make([]uint16, 0, len(raw)/2)
		for i := 2; i+1 < len(raw); i += 2 {
			units = append(units, uint16(raw[i])<<8|uint16(raw[i+1]))
		}
		return string(utf16.Decode(units))
	case bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}):
		return string(raw[3:])
	}
	text, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(text)
}

// unescapeLiteral handles the escape sequences of PDF literal strings.
func unescapeLiteral(raw []byte) []byte {
	var sb bytes.Buffer
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] < '0' || raw[i] > '7' {
				sb.WriteByte(raw[i])
				continue
			}
			// Octal escape, up to three digits (\040 is a space).
			val := int(raw[i] - '0')
			for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
				i++
				val = val*8 + int(raw[i]-'0')
			}
			sb.WriteByte(byte(val))
		}
	}
	return sb.Bytes()
}

func cleanText(text string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		case unicode.IsPrint(r):
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(sb.String())
}
