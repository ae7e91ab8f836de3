package domain

const (
	KB = 1024
	MB = 1024 * KB
)

// Document is the normalized plain-text form of any accepted input.
type Document string

func (d Document) String() string {
	return string(d)
}

type InputType string

const (
	InputText InputType = "text"
	InputFile InputType = "file"
)

type SummaryMode string

const (
	ModeQuick SummaryMode = "quick"
	ModeDeep  SummaryMode = "deep"
)

// InputSpec is either a TextInput or a FileInput.
// The caller's inputType discriminator decides which one is built.
type InputSpec interface {
	Type() InputType
}

type TextInput struct {
	Content string
}

func (TextInput) Type() InputType { return InputText }

type FileInput struct {
	Name             string
	Bytes            []byte
	DeclaredMimeType string
	Size             int64
}

func (FileInput) Type() InputType { return InputFile }

// Empty reports whether the upload carries no content at all.
func (f FileInput) Empty() bool {
	return f.Size == 0 && len(f.Bytes) == 0
}
