package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStageError_Kinds(t *testing.T) {
	req := require.New(t)

	err := Generation("empty", ErrEmptyResponse)
	req.True(stderrors.Is(err, ErrGeneration))
	req.True(stderrors.Is(err, ErrEmptyResponse))
	req.False(stderrors.Is(err, ErrValidation))

	wrapped := fmt.Errorf("summarize: %w", err)
	req.True(stderrors.Is(wrapped, ErrGeneration))
	req.Equal("empty", Message(wrapped))

	req.True(stderrors.Is(Validation("too short"), ErrValidation))
	req.Equal("plain", Message(fmt.Errorf("plain")))
}
