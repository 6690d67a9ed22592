package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_InvalidDeclaration(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	invalidHCL := `
		framework "bigpipe" {
			template = "x"
		// Missing closing brace here
	`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "main.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(invalidHCL), 0600), "failed to set up test file")

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, errOut, []string{"render", "-d", filePath, "-p", "template"})

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load declarations")
	require.Contains(t, err.Error(), "failed to parse")
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	err := run(context.Background(), out, errOut, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error for help")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	err := run(context.Background(), out, errOut, []string{"library", "--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "unknown flag: --this-is-not-a-valid-flag")
}

func TestRun_Render(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	decl := "frameworks:\n  - name: page\n    fragment: \"<p>{fittings:body}</p>\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.yaml"), []byte(decl), 0600))

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	err := run(context.Background(), out, errOut, []string{"render", "-d", dir, "-p", "fragment", "--data", "body=hi"})

	require.NoError(t, err)
	require.Equal(t, "<p>hi</p>\n", out.String())
}
