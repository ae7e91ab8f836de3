package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"docusense/infrastructure/http/client"

	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
)

type BaseHTTPSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseHTTPSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.ServerAddr == "" {
		s.T().Skip("DOCUSENSE_ADDR is not set")
	}
}

// WithServer runs fn as a named step against the live server.
// Generation can be slow, hence the generous timeout.
func (s *BaseHTTPSuite) WithServer(name string, fn func(ctx context.Context, c *client.AnalysisClient)) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()
	start := time.Now()
	fn(ctx, client.NewAnalysisClient(s.Config.ServerAddr, 120*time.Second))
	s.T().Logf("%s done in %v", name, time.Since(start))
}

// Dump logs v as indented JSON when E2E_DEBUG_JSON is enabled.
func (s *BaseHTTPSuite) Dump(label string, v any) {
	if !s.Config.DebugJSON {
		return
	}
	body, err := json.MarshalIndent(v, "", "  ")
	s.Require().NoError(err)
	s.T().Logf("%s:\n%s", label, body)
}
