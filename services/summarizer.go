package services

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"

	"docusense/ai"
	"docusense/domain"
	apperrors "docusense/errors"
	"docusense/sentiment"
)

// ClassificationPolicy decides what a deep summary does when the
// sentiment classifier fails.
type ClassificationPolicy string

const (
	PolicyDegrade ClassificationPolicy = "degrade"
	PolicyFail    ClassificationPolicy = "fail"
)

type quickSummaryOutput struct {
	Summary string `json:"summary"`
}

type deepSummaryOutput struct {
	Summary   string `json:"summary"`
	Sentiment string `json:"sentiment"`
	Tone      string `json:"tone"`
}

type Summarizer struct {
	log        *slog.Logger
	generator  ai.Generator
	classifier sentiment.Classifier
	policy     ClassificationPolicy
}

func NewSummarizer(log *slog.Logger, generator ai.Generator, classifier sentiment.Classifier, policy ClassificationPolicy) *Summarizer {
	return &Summarizer{log: log, generator: generator, classifier: classifier, policy: policy}
}

// Summarize routes the document to the quick or the deep branch.
func (s *Summarizer) Summarize(ctx context.Context, doc domain.Document, mode domain.SummaryMode) (domain.SummaryOutcome, error) {
	switch mode {
	case domain.ModeQuick:
		return s.quick(ctx, doc)
	case domain.ModeDeep:
		return s.deep(ctx, doc)
	default:
		return nil, apperrors.Validation(fmt.Sprintf("unknown summary mode %q", mode))
	}
}

func (s *Summarizer) quick(ctx context.Context, doc domain.Document) (domain.SummaryOutcome, error) {
	prompt, err := ai.QuickSummaryPrompt(doc.String())
	if err != nil {
		return nil, apperrors.Generation(err.Error(), err)
	}
	var out quickSummaryOutput
	if err := s.complete(ctx, prompt, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.Summary) == "" {
		return nil, emptyResponse()
	}
	return domain.QuickSummary{Summary: out.Summary}, nil
}

// deep keeps the generated sentiment and tone only as placeholders:
// a successful classification always overwrites them.
func (s *Summarizer) deep(ctx context.Context, doc domain.Document) (domain.SummaryOutcome, error) {
	prompt, err := ai.DeepSummaryPrompt(doc.String())
	if err != nil {
		return nil, apperrors.Generation(err.Error(), err)
	}
	var out deepSummaryOutput
	if err := s.complete(ctx, prompt, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.Summary) == "" {
		return nil, emptyResponse()
	}

	summary := domain.DeepSummary{Summary: out.Summary, Sentiment: out.Sentiment, Tone: out.Tone}
	classified, err := s.classifier.Classify(ctx, doc)
	if err != nil {
		if !stderrors.Is(err, apperrors.ErrClassification) {
			err = apperrors.Classification(err.Error(), err)
		}
		if s.policy == PolicyFail {
			return nil, err
		}
		s.log.Warn("Sentiment classification failed, keeping generated values",
			"error", err,
			"sentiment", summary.Sentiment,
			"tone", summary.Tone)
		return summary, nil
	}

	s.log.Debug("Sentiment overwritten by classifier",
		"draft_sentiment", summary.Sentiment, "sentiment", classified.Sentiment,
		"draft_tone", summary.Tone, "tone", classified.Tone)
	summary.Sentiment = classified.Sentiment
	summary.Tone = classified.Tone
	return summary, nil
}

func (s *Summarizer) complete(ctx context.Context, prompt ai.Prompt, out any) error {
	raw, err := s.generator.Complete(ctx, prompt)
	if err != nil {
		if stderrors.Is(err, apperrors.ErrEmptyResponse) {
			return emptyResponse()
		}
		return apperrors.Generation(err.Error(), err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperrors.Generation(fmt.Sprintf("invalid %s output: %v", prompt.Name, err), err)
	}
	return nil
}

func emptyResponse() error {
	return apperrors.Generation(apperrors.ErrEmptyResponse.Error(), apperrors.ErrEmptyResponse)
}
