package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "formation version")
	assert.Contains(t, out, "methods: KNN, Static, UvA")
}

func TestDocumentCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "team.conf")

	_, err := run(t, "new", path, "--model", "UvA")
	require.NoError(t, err)

	out, err := run(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "valid UvA formation")

	out, err = run(t, "position", path, "--unum", "1")
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	out, err = run(t, "inspect", path, "--format", "graph")
	require.NoError(t, err)
	assert.Contains(t, out, "graph LR")

	_, err = run(t, "new", path)
	assert.Error(t, err, "refuses to overwrite")
}
