//go:generate go run go.uber.org/mock/mockgen -source=analyzer_service.go -destination=../mocks/mock_analyzer_service.go -package=mocks
package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"

	"docusense/domain"
	apperrors "docusense/errors"
	"docusense/ingestion"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

const (
	MsgSuccess        = "Summary generated successfully."
	MsgSummaryType    = "Please choose a summary type (quick or deep)."
	MsgInputType      = "Please choose an input type (text or file)."
	MsgNoUsableInput  = "Please provide either text content or a non-empty file."
	MsgEmptyResponse  = "Failed to generate summary. The AI model returned an empty response. Please try again with different content."
	MsgUnknownFailure = "Failed to process document: An unknown error occurred."
	processPrefix     = "Failed to process document: "
	classifyPrefix    = "Failed to analyze sentiment: "
	scoringPrefix     = "Failed to generate summary: "
	tagMinContent     = "min_content"
	tagNonEmptyFile   = "non_empty_file"
	fieldSummaryType  = "SummaryType"
	fieldInputType    = "InputType"
	fieldContent      = "DocumentContent"
	fieldDocumentFile = "DocumentFile"
)

// violationOrder fixes the order in which field violations are reported.
var violationOrder = []string{fieldContent, fieldDocumentFile, fieldSummaryType, fieldInputType}

type IAnalyzerService interface {
	Analyze(ctx context.Context, request domain.AnalyzeRequest) domain.RequestState
}

type AnalyzerService struct {
	log              *slog.Logger
	ingester         *ingestion.Ingester
	summarizer       *Summarizer
	scorer           *Scorer
	minContentLength int
	validate         *validator.Validate
}

func NewAnalyzerService(log *slog.Logger, ingester *ingestion.Ingester, summarizer *Summarizer, scorer *Scorer) *AnalyzerService {
	s := &AnalyzerService{
		log:              log,
		ingester:         ingester,
		summarizer:       summarizer,
		scorer:           scorer,
		minContentLength: ingester.Config().MinContentLength,
		validate:         validator.New(),
	}
	s.validate.RegisterStructValidation(s.validateInput, domain.AnalyzeRequest{})
	return s
}

// Analyze runs ingestion, validation, summarization, scoring and composition
// in that order. Every failure ends in an error state: nothing escapes.
func (s *AnalyzerService) Analyze(ctx context.Context, request domain.AnalyzeRequest) (state domain.RequestState) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Analysis panicked", "panic", r)
			state = domain.ErrorState(MsgUnknownFailure)
		}
	}()

	if messages := s.violations(request); len(messages) > 0 {
		return domain.ErrorState(strings.Join(messages, ", "))
	}
	mode := domain.SummaryMode(request.SummaryType)

	doc, err := s.ingester.Ingest(ctx, inputSpec(request))
	if err != nil {
		return s.fail("ingestion", err, apperrors.Message(err))
	}

	doc, err = ingestion.Validate(doc, s.minContentLength)
	if err != nil {
		return s.fail("validation", err, apperrors.Message(err))
	}

	summary, err := s.summarizer.Summarize(ctx, doc, mode)
	if err != nil {
		switch {
		case stderrors.Is(err, apperrors.ErrEmptyResponse):
			return s.fail("summarization", err, MsgEmptyResponse)
		case stderrors.Is(err, apperrors.ErrClassification):
			return s.fail("classification", err, classifyPrefix+apperrors.Message(err))
		default:
			return s.fail("summarization", err, processPrefix+apperrors.Message(err))
		}
	}

	quality, err := s.scorer.Score(ctx, summary.Text(), doc)
	if err != nil {
		return s.fail("scoring", err, scoringPrefix+apperrors.Message(err))
	}

	result := Compose(summary, quality)
	s.log.Info("Analysis succeeded",
		"input_type", request.InputType,
		"summary_type", mode,
		"quality_score", result.QualityScore)
	return domain.SuccessState(MsgSuccess, result)
}

func (s *AnalyzerService) fail(stage string, err error, message string) domain.RequestState {
	s.log.Warn("Analysis failed", "stage", stage, "error", err)
	return domain.ErrorState(message)
}

func inputSpec(request domain.AnalyzeRequest) domain.InputSpec {
	if domain.InputType(request.InputType) == domain.InputFile {
		return *request.DocumentFile
	}
	return domain.TextInput{Content: request.DocumentContent}
}

// validateInput checks the field selected by the input type discriminator.
func (s *AnalyzerService) validateInput(sl validator.StructLevel) {
	request := sl.Current().Interface().(domain.AnalyzeRequest)
	switch domain.InputType(request.InputType) {
	case domain.InputText:
		if !ingestion.LongEnough(request.DocumentContent, s.minContentLength) {
			sl.ReportError(request.DocumentContent, fieldContent, fieldContent, tagMinContent, fmt.Sprint(s.minContentLength))
		}
	case domain.InputFile:
		if request.DocumentFile == nil || request.DocumentFile.Empty() {
			sl.ReportError(request.DocumentFile, fieldDocumentFile, fieldDocumentFile, tagNonEmptyFile, "")
		}
	}
}

func (s *AnalyzerService) violations(request domain.AnalyzeRequest) []string {
	err := s.validate.Struct(request)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !stderrors.As(err, &validationErrs) {
		return []string{processPrefix + err.Error()}
	}

	byField := lo.SliceToMap(validationErrs, func(fe validator.FieldError) (string, string) {
		return fe.Field(), s.violationMessage(fe.Field())
	})
	return lo.FilterMap(violationOrder, func(field string, _ int) (string, bool) {
		message, ok := byField[field]
		return message, ok
	})
}

func (s *AnalyzerService) violationMessage(field string) string {
	switch field {
	case fieldSummaryType:
		return MsgSummaryType
	case fieldInputType:
		return MsgInputType
	case fieldContent:
		return fmt.Sprintf("Please paste text (min %d chars).", s.minContentLength)
	default:
		return MsgNoUsableInput
	}
}
