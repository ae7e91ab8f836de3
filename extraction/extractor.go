//go:generate go run go.uber.org/mock/mockgen -source=extractor.go -destination=../mocks/mock_extractor.go -package=mocks
package extraction

import "context"

// Extractor turns a whole binary document into best-effort plain text.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}
