package domain

// AnalyzeRequest holds the raw caller fields. InputType is authoritative:
// DocumentContent is ignored for file inputs and DocumentFile for text inputs.
type AnalyzeRequest struct {
	DocumentContent string
	DocumentFile    *FileInput
	SummaryType     string `validate:"required,oneof=quick deep"`
	InputType       string `validate:"required,oneof=text file"`
}
