package services

import (
	"encoding/json"
	"log/slog"
	"testing"

	"docusense/ai"
	"docusense/ingestion"
	"docusense/mocks"

	"github.com/mama165/sdk-go/logs"
	"go.uber.org/mock/gomock"
)

// promptNamed matches an ai.Prompt by its name.
type promptNamed string

func (p promptNamed) Matches(x any) bool {
	prompt, ok := x.(ai.Prompt)
	return ok && prompt.Name == string(p)
}

func (p promptNamed) String() string {
	return "prompt named " + string(p)
}

const (
	quickPrompt   = promptNamed("quick_summary")
	deepPrompt    = promptNamed("deep_summary")
	scoringPrompt = promptNamed("summary_quality_scoring")
)

func raw(s string) json.RawMessage {
	return json.RawMessage(s)
}

type fixture struct {
	generator  *mocks.MockGenerator
	classifier *mocks.MockClassifier
	extractor  *mocks.MockExtractor
	summarizer *Summarizer
	scorer     *Scorer
	service    *AnalyzerService
}

func newFixture(t *testing.T, policy ClassificationPolicy) fixture {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)

	f := fixture{
		generator:  mocks.NewMockGenerator(ctrl),
		classifier: mocks.NewMockClassifier(ctrl),
		extractor:  mocks.NewMockExtractor(ctrl),
	}
	f.summarizer = NewSummarizer(log, f.generator, f.classifier, policy)
	f.scorer = NewScorer(log, f.generator)
	ingester := ingestion.NewIngester(log, ingestion.DefaultConfig(), f.extractor)
	f.service = NewAnalyzerService(log, ingester, f.summarizer, f.scorer)
	return f
}
