package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/envelope/internal/pipeline"
	"github.com/philipparndt/envelope/pkg/envelope"
	"github.com/stretchr/testify/require"
)

func generateFixture(t *testing.T) *pipeline.Result {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "route.yaml")
	require.NoError(t, os.WriteFile(filename, []byte("points: [[0,0,0], [100,0,0], [100,0,100]]\n"), 0o644))

	result, err := pipeline.Generate(filename, envelope.Options{}, nil)
	require.NoError(t, err)
	t.Cleanup(result.Close)
	return result
}
