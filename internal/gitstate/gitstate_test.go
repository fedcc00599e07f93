package gitstate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadNonRepository(t *testing.T) {
	dir := t.TempDir()

	_, err := Head(context.Background(), dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHeadMissingDirectory(t *testing.T) {
	_, err := Head(context.Background(), "/nonexistent/path/for/sure")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}
