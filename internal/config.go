package internal

import (
	"fmt"
	"time"

	"docusense/ingestion"
	"docusense/services"
)

const (
	ClassifierLexicon = "lexicon"
	ClassifierLength  = "length"
)

type Config struct {
	LogLevel             string        `env:"LOG_LEVEL,default=INFO"`
	Host                 string        `env:"HOST,default=0.0.0.0"`
	Port                 int           `env:"PORT,default=8080"`
	OpenAIAPIKey         string        `env:"OPENAI_API_KEY,required=true"`
	OpenAIBaseURL        string        `env:"OPENAI_BASE_URL"`
	OpenAIModel          string        `env:"OPENAI_MODEL,default=gpt-4o-mini"`
	GenerationTimeout    time.Duration `env:"GENERATION_TIMEOUT,default=60s"`
	MaxFileSize          int64         `env:"MAX_FILE_SIZE,default=4194304"`
	MinContentLength     int           `env:"MIN_CONTENT_LENGTH,default=50"`
	SentimentClassifier  string        `env:"SENTIMENT_CLASSIFIER,default=lexicon"`
	ClassificationPolicy string        `env:"CLASSIFICATION_POLICY,default=degrade"`
	BadgerFilepath       string        `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath        string        `env:"BLUGE_FILEPATH,required=true"`
	SearchLimit          int           `env:"SEARCH_LIMIT,default=20"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

// Validate rejects values the env tags cannot express.
func (c Config) Validate() error {
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive, got %d", c.MaxFileSize)
	}
	if c.MinContentLength < 0 {
		return fmt.Errorf("MIN_CONTENT_LENGTH must not be negative, got %d", c.MinContentLength)
	}
	if c.SearchLimit <= 0 {
		return fmt.Errorf("SEARCH_LIMIT must be positive, got %d", c.SearchLimit)
	}
	switch c.SentimentClassifier {
	case ClassifierLexicon, ClassifierLength:
	default:
		return fmt.Errorf("SENTIMENT_CLASSIFIER must be %q or %q, got %q", ClassifierLexicon, ClassifierLength, c.SentimentClassifier)
	}
	switch services.ClassificationPolicy(c.ClassificationPolicy) {
	case services.PolicyDegrade, services.PolicyFail:
	default:
		return fmt.Errorf("CLASSIFICATION_POLICY must be %q or %q, got %q", services.PolicyDegrade, services.PolicyFail, c.ClassificationPolicy)
	}
	return nil
}

func (c Config) Ingestion() ingestion.Config {
	cfg := ingestion.DefaultConfig()
	cfg.MaxFileSize = c.MaxFileSize
	cfg.MinContentLength = c.MinContentLength
	return cfg
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
