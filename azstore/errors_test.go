package azstore

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingHeaderError(t *testing.T) {
	err := &MissingHeaderError{Header: HeaderETag}
	require.Equal(t, "response is missing the 'ETag' header", err.Error())
}

func TestIsMissingHeader(t *testing.T) {
	require.True(t, IsMissingHeader(&MissingHeaderError{Header: HeaderETag}))
	require.True(t, IsMissingHeader(fmt.Errorf("failed to decode: %w", &MissingHeaderError{Header: HeaderETag})))
	require.False(t, IsMissingHeader(assert.AnError))
	require.False(t, IsMissingHeader(nil))
}

func TestParseError(t *testing.T) {
	err := &ParseError{Kind: "lease status", Value: "active"}
	require.Equal(t, "failed to parse lease status from 'active'", err.Error())
}

func TestParseErrorWithInner(t *testing.T) {
	err := &ParseError{Kind: "int", Value: "12abc", inner: assert.AnError}

	require.Equal(t, fmt.Sprintf("failed to parse int from '12abc': %v", assert.AnError), err.Error())
	require.ErrorIs(t, err, assert.AnError)
}
