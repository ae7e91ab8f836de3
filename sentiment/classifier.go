//go:generate go run go.uber.org/mock/mockgen -source=classifier.go -destination=../mocks/mock_classifier.go -package=mocks
package sentiment

import (
	"context"
	"unicode/utf16"

	"docusense/domain"
)

const (
	Positive = "positive"
	Negative = "negative"
	Neutral  = "neutral"
)

const (
	Formal      = "formal"
	Informal    = "informal"
	Optimistic  = "optimistic"
	Pessimistic = "pessimistic"
	Joyful      = "joyful"
	Sad         = "sad"
)

var (
	Sentiments = []string{Positive, Negative, Neutral}
	Tones      = []string{Formal, Informal, Optimistic, Pessimistic, Joyful, Sad}
)

type Result struct {
	Sentiment string
	Tone      string
}

// Classifier is the sentiment/tone collaborator used by deep summaries.
type Classifier interface {
	Classify(ctx context.Context, doc domain.Document) (Result, error)
}

// LengthClassifier is a deterministic fallback that never fails:
// the document length in UTF-16 code units picks the sentiment and the tone.
type LengthClassifier struct{}

func (LengthClassifier) Classify(_ context.Context, doc domain.Document) (Result, error) {
	length := len(utf16.Encode([]rune(doc.String())))
	return Result{
		Sentiment: Sentiments[length%len(Sentiments)],
		Tone:      Tones[(length+1)%len(Tones)],
	}, nil
}
