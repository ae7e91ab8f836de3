package sentiment

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"docusense/domain"
	apperrors "docusense/errors"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestLengthClassifier_Classify(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	classifier := LengthClassifier{}

	tests := []struct {
		length    int
		sentiment string
		tone      string
	}{
		{length: 60, sentiment: Positive, tone: Informal},
		{length: 61, sentiment: Negative, tone: Optimistic},
		{length: 200, sentiment: Neutral, tone: Pessimistic},
		{length: 0, sentiment: Positive, tone: Informal},
	}

	for _, tt := range tests {
		result, err := classifier.Classify(ctx, domain.Document(strings.Repeat("a", tt.length)))
		req.NoError(err)
		req.Equal(tt.sentiment, result.Sentiment, "length %d", tt.length)
		req.Equal(tt.tone, result.Tone, "length %d", tt.length)
		req.Contains(Sentiments, result.Sentiment)
	}

	// Characters outside the BMP count as two units.
	result, err := classifier.Classify(ctx, domain.Document("😀"))
	req.NoError(err)
	req.Equal(Neutral, result.Sentiment)
	req.Equal(Pessimistic, result.Tone)

	result, err = classifier.Classify(ctx, domain.Document("é"))
	req.NoError(err)
	req.Equal(Negative, result.Sentiment)
	req.Equal(Optimistic, result.Tone)
}

func TestLexiconClassifier_Classify(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	classifier, err := NewLexiconClassifier(log)
	require.NoError(t, err)

	tests := []struct {
		name      string
		text      string
		sentiment string
		tone      string
	}{
		{
			name:      "Positive business update",
			text:      "The company reported excellent growth this quarter. Sales were strong and the new product was a great success with customers everywhere.",
			sentiment: Positive,
			tone:      Optimistic,
		},
		{
			name:      "Negative incident report",
			text:      "The migration failed twice and caused a serious loss of data. The delay created a crisis for the support team and damage to our reputation.",
			sentiment: Negative,
			tone:      Pessimistic,
		},
		{
			name:      "Formal neutral notice",
			text:      "Pursuant to the agreement, the parties shall meet quarterly. Furthermore, minutes will be recorded and accordingly shared with every member of the board.",
			sentiment: Neutral,
			tone:      Formal,
		},
		{
			name:      "Joyful words win the tone",
			text:      "We were delighted to celebrate the anniversary together. It was a wonderful evening and everyone was glad to be there with their families and friends.",
			sentiment: Neutral,
			tone:      Joyful,
		},
		{
			name:      "Prefixes do not count as words",
			text:      "They said goodbye at the station and walked home slowly through the quiet streets of the old town, talking about the weather and the trains.",
			sentiment: Neutral,
			tone:      Formal,
		},
		{
			name:      "French document uses the French lexicon",
			text:      "Le trimestre a été marqué par une croissance remarquable et un succès commercial. Les équipes sont fières de ce progrès et restent très motivées pour la suite.",
			sentiment: Positive,
			tone:      Optimistic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			result, err := classifier.Classify(context.Background(), domain.Document(tt.text))
			req.NoError(err)
			req.Equal(tt.sentiment, result.Sentiment)
			req.Equal(tt.tone, result.Tone)
		})
	}
}

func TestLexiconClassifier_UnsupportedLanguage(t *testing.T) {
	req := require.New(t)
	classifier, err := NewLexiconClassifier(logs.GetLoggerFromLevel(slog.LevelDebug))
	req.NoError(err)

	text := "Компания сообщила о значительном росте продаж в этом квартале, и новый продукт был хорошо принят клиентами по всей стране."
	_, err = classifier.Classify(context.Background(), domain.Document(text))
	req.ErrorIs(err, apperrors.ErrClassification)
	req.ErrorIs(err, apperrors.ErrUnsupportedLanguage)
}

func TestNormalize(t *testing.T) {
	req := require.New(t)
	req.Equal("in accordance with", string(normalize("  In-accordance, WITH! ")))
	req.Equal("succès", string(normalize("Succès")))
	req.Equal("", string(normalize("...")))
}
