package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	apperrors "handlestats/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HANDLESTATS_SOURCE",
		"HANDLESTATS_SCHEMA",
		"HANDLESTATS_ADDR",
		"HANDLESTATS_STRICT_HEADERS",
		"HANDLESTATS_FETCH_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func generateSample(t *testing.T, participants string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "survey.csv")
	_, err := execute(t, "generate", "--participants", participants, "--seed", "7", "-o", path)
	require.NoError(t, err)
	return path
}

func TestGenerate_Deterministic(t *testing.T) {
	clearEnv(t)
	first, err := execute(t, "generate", "--participants", "5", "--seed", "3")
	require.NoError(t, err)
	second, err := execute(t, "generate", "--participants", "5", "--seed", "3")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Contains(t, first, "Positioning Accuracy_1")
}

func TestAnalyze_GeneratedExport(t *testing.T) {
	clearEnv(t)
	path := generateSample(t, "12")

	out, err := execute(t, "analyze", path, "--compact")
	require.NoError(t, err)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.EqualValues(t, 12, result["participants"])
	assert.Len(t, result["statisticalResults"], 7)
}

func TestAnalyze_SourceFromEnvironment(t *testing.T) {
	clearEnv(t)
	path := generateSample(t, "4")
	t.Setenv("HANDLESTATS_SOURCE", path)

	out, err := execute(t, "analyze", "--compact")
	require.NoError(t, err)
	assert.Contains(t, out, `"participants":4`)
}

func TestAnalyze_MissingSource(t *testing.T) {
	clearEnv(t)
	_, err := execute(t, "analyze")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConfigInvalid, apperrors.GetCode(err))
}

func TestAnalyze_StrictHeaders(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "partial.csv")
	require.NoError(t, os.WriteFile(path, []byte("Gender,Comfort\nFemale,4\n"), 0o600))

	_, err := execute(t, "analyze", path)
	require.NoError(t, err)

	_, err = execute(t, "analyze", path, "--strict-headers")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeSchemaDrift, apperrors.GetCode(err))
}

func TestReport_Formats(t *testing.T) {
	clearEnv(t)
	path := generateSample(t, "6")

	md, err := execute(t, "report", path)
	require.NoError(t, err)
	assert.Contains(t, md, "# Handle Comparison Survey Results")

	html, err := execute(t, "report", path, "--format", "html")
	require.NoError(t, err)
	assert.Contains(t, html, "<h1")

	_, err = execute(t, "report", path, "--format", "pdf")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetCode(err))
}
