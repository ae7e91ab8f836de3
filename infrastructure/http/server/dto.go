package server

import (
	"time"

	"docusense/domain"
	"docusense/repositories"
)

// Form fields of POST /api/v1/analyses.
const (
	FieldDocumentContent = "documentContent"
	FieldDocumentFile    = "documentFile"
	FieldSummaryType     = "summaryType"
	FieldInputType       = "inputType"
)

// AnalyzeResponse is the request state, plus the record ID once stored.
type AnalyzeResponse struct {
	ID string `json:"id,omitempty"`
	domain.RequestState
}

type AnalysisView struct {
	ID          string                `json:"id"`
	At          time.Time             `json:"at"`
	InputType   string                `json:"inputType"`
	SummaryType string                `json:"summaryType"`
	FileName    string                `json:"fileName,omitempty"`
	Result      domain.AnalysisResult `json:"result"`
}

type SearchResponse struct {
	Items      []AnalysisView `json:"items"`
	NextCursor *string        `json:"nextCursor,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func toView(analysis repositories.Analysis) AnalysisView {
	return AnalysisView{
		ID:          analysis.ID.String(),
		At:          analysis.At,
		InputType:   string(analysis.InputType),
		SummaryType: string(analysis.SummaryType),
		FileName:    analysis.FileName,
		Result:      analysis.Result,
	}
}
