package services

import (
	"docusense/domain"

	"github.com/samber/lo"
)

// Compose merges the summary and the quality outcome. Sentiment and tone
// are only ever taken from a deep summary, otherwise they stay nil.
func Compose(summary domain.SummaryOutcome, quality domain.QualityOutcome) domain.AnalysisResult {
	result := domain.AnalysisResult{
		Summary:       summary.Text(),
		QualityScore:  quality.QualityScore,
		Justification: quality.Justification,
	}
	if deep, ok := summary.(domain.DeepSummary); ok {
		result.Sentiment = lo.EmptyableToPtr(deep.Sentiment)
		result.Tone = lo.EmptyableToPtr(deep.Tone)
	}
	return result
}
