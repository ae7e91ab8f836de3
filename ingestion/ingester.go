package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"docusense/domain"
	"docusense/domain/mimetypes"
	apperrors "docusense/errors"
	"docusense/extraction"

	"github.com/gabriel-vasile/mimetype"
)

const (
	MsgUnsupportedType  = "Only .txt and .pdf files are accepted."
	msgExtractionPrefix = "Failed to extract text from PDF"
)

// FileTooLargeMessage names the limit the way the upload form does: "4MB".
func FileTooLargeMessage(maxFileSize int64) string {
	return fmt.Sprintf("File size must be less than %s.", sizeLabel(maxFileSize))
}

func ContentTooShortMessage(minLength int) string {
	return fmt.Sprintf("Extracted document content is less than %d characters. Please provide a longer document.", minLength)
}

func sizeLabel(size int64) string {
	switch {
	case size >= domain.MB && size%domain.MB == 0:
		return fmt.Sprintf("%dMB", size/domain.MB)
	case size >= domain.KB && size%domain.KB == 0:
		return fmt.Sprintf("%dKB", size/domain.KB)
	default:
		return fmt.Sprintf("%d bytes", size)
	}
}

type Config struct {
	MaxFileSize      int64
	AllowedMimeTypes []mimetypes.MIME
	MinContentLength int
}

func DefaultConfig() Config {
	return Config{
		MaxFileSize:      4 * domain.MB,
		AllowedMimeTypes: []mimetypes.MIME{mimetypes.TextPlain, mimetypes.ApplicationPDF},
		MinContentLength: 50,
	}
}

type Ingester struct {
	log       *slog.Logger
	cfg       Config
	extractor extraction.Extractor
}

func NewIngester(log *slog.Logger, cfg Config, extractor extraction.Extractor) *Ingester {
	return &Ingester{log: log, cfg: cfg, extractor: extractor}
}

func (i *Ingester) Config() Config {
	return i.cfg
}

// Ingest normalizes a text or file input into a Document.
// It never checks the content length: that is the job of Validate.
func (i *Ingester) Ingest(ctx context.Context, spec domain.InputSpec) (domain.Document, error) {
	switch input := spec.(type) {
	case domain.TextInput:
		return domain.Document(input.Content), nil
	case domain.FileInput:
		return i.ingestFile(ctx, input)
	default:
		return "", apperrors.Validation(fmt.Sprintf("unsupported input type %T", spec))
	}
}

func (i *Ingester) ingestFile(ctx context.Context, file domain.FileInput) (domain.Document, error) {
	// A zero-byte upload is the same as no upload.
	if file.Empty() {
		return "", nil
	}

	size := file.Size
	if size < int64(len(file.Bytes)) {
		size = int64(len(file.Bytes))
	}
	if size > i.cfg.MaxFileSize {
		return "", apperrors.Validation(FileTooLargeMessage(i.cfg.MaxFileSize))
	}

	declared := file.DeclaredMimeType
	if strings.TrimSpace(declared) == "" {
		declared = mimetype.Detect(file.Bytes).String()
		i.log.Debug("No MIME type declared, sniffed content", "file", file.Name, "mime_type", declared)
	}

	mt, ok := mimetypes.Allowed(declared, i.cfg.AllowedMimeTypes)
	if !ok {
		i.log.Info("Rejected upload", "file", file.Name, "mime_type", declared)
		return "", apperrors.Validation(MsgUnsupportedType)
	}

	switch mt {
	case mimetypes.ApplicationPDF:
		text, err := i.extractor.Extract(ctx, file.Bytes)
		if err != nil {
			return "", apperrors.Extraction(fmt.Sprintf("%s: %v", msgExtractionPrefix, err), err)
		}
		return domain.Document(text), nil
	default:
		return domain.Document(decodeUTF8(file.Bytes)), nil
	}
}

// Validate enforces the minimum trimmed length of a document.
func Validate(doc domain.Document, minLength int) (domain.Document, error) {
	if !LongEnough(doc.String(), minLength) {
		return doc, apperrors.Validation(ContentTooShortMessage(minLength))
	}
	return doc, nil
}

func LongEnough(content string, minLength int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(content)) >= minLength
}

// decodeUTF8 drops a leading BOM and replaces invalid sequences with U+FFFD.
func decodeUTF8(data []byte) string {
	text := strings.TrimPrefix(string(data), "\uFEFF")
	return strings.ToValidUTF8(text, "\uFFFD")
}
