package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"docusense/ai"
	"docusense/domain"
	apperrors "docusense/errors"
)

type qualityScoringOutput struct {
	QualityScore  *float64 `json:"qualityScore"`
	Justification string   `json:"justification"`
}

type Scorer struct {
	log       *slog.Logger
	generator ai.Generator
}

func NewScorer(log *slog.Logger, generator ai.Generator) *Scorer {
	return &Scorer{log: log, generator: generator}
}

// Score rates the produced summary against the full document.
// The score is returned as is: never rounded, never clamped.
func (s *Scorer) Score(ctx context.Context, summary string, doc domain.Document) (domain.QualityOutcome, error) {
	prompt, err := ai.QualityScoringPrompt(summary, doc.String())
	if err != nil {
		return domain.QualityOutcome{}, apperrors.Generation(err.Error(), err)
	}
	raw, err := s.generator.Complete(ctx, prompt)
	if err != nil {
		return domain.QualityOutcome{}, apperrors.Generation(err.Error(), err)
	}

	var out qualityScoringOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return domain.QualityOutcome{}, apperrors.Generation(fmt.Sprintf("invalid %s output: %v", prompt.Name, err), err)
	}
	if out.QualityScore == nil {
		return domain.QualityOutcome{}, apperrors.Generation("the AI model returned no quality score", nil)
	}
	score := *out.QualityScore
	if math.IsNaN(score) || score < 0 || score > 1 {
		return domain.QualityOutcome{}, apperrors.Generation(fmt.Sprintf("quality score %v is outside [0, 1]", score), nil)
	}

	s.log.Debug("Summary scored", "quality_score", score)
	return domain.QualityOutcome{QualityScore: score, Justification: out.Justification}, nil
}
