package domain

type Status string

const (
	StatusIdle    Status = "idle"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// SummaryOutcome is produced by exactly one summarization branch.
// Only DeepSummary carries sentiment and tone.
type SummaryOutcome interface {
	Mode() SummaryMode
	Text() string
}

type QuickSummary struct {
	Summary string
}

func (QuickSummary) Mode() SummaryMode { return ModeQuick }
func (q QuickSummary) Text() string    { return q.Summary }

type DeepSummary struct {
	Summary   string
	Sentiment string
	Tone      string
}

func (DeepSummary) Mode() SummaryMode { return ModeDeep }
func (d DeepSummary) Text() string    { return d.Summary }

type QualityOutcome struct {
	QualityScore  float64 `json:"qualityScore"`
	Justification string  `json:"justification"`
}

// AnalysisResult has a stable shape whatever the mode: sentiment and tone
// are null unless a deep summary provided them.
type AnalysisResult struct {
	Summary       string  `json:"summary"`
	Sentiment     *string `json:"sentiment"`
	Tone          *string `json:"tone"`
	QualityScore  float64 `json:"qualityScore"`
	Justification string  `json:"justification"`
}

type RequestState struct {
	Status  Status          `json:"status"`
	Message string          `json:"message"`
	Result  *AnalysisResult `json:"result"`
}

func IdleState() RequestState {
	return RequestState{Status: StatusIdle}
}

func SuccessState(message string, result AnalysisResult) RequestState {
	return RequestState{Status: StatusSuccess, Message: message, Result: &result}
}

func ErrorState(message string) RequestState {
	return RequestState{Status: StatusError, Message: message}
}
