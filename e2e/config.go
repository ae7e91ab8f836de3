package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// DOCUSENSE_ADDR points at a running server; the suites are skipped without it
	ServerAddr string `envconfig:"DOCUSENSE_ADDR"`
	// E2E_DEBUG_JSON dumps every response body as JSON
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours     bool   `envconfig:"E2E_COLOURS" default:"true"`
	FixturesDir string `envconfig:"E2E_FIXTURES_DIR" default:"testdata"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
