package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	main "github.com/fwojciec/docchat/cmd/docchat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv clears key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

// canceledContext returns a context that is already done, so Run stops
// serving right after startup.
func canceledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "docchat")
	assert.Contains(t, stdout.String(), "--groq-api-key")
	assert.Contains(t, stdout.String(), "--upload-dir")
	assert.Nil(t, m.Server)
}

func TestMain_Run_InvalidEnum(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--fetcher=curl", "--env-file="}, &stdout, &stderr)

	require.Error(t, err)
	assert.Nil(t, m.Server)
}

func TestMain_Run_RejectsNonPositiveMaxTokens(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--max-tokens=0", "--groq-api-key=k", "--env-file="}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "max-tokens")
}

func TestMain_Run_MissingGroqKey(t *testing.T) {
	unsetenv(t, "GROQ_API_KEY")

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--env-file="}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "groq API key not set")
	assert.Contains(t, stderr.String(), "GROQ_API_KEY")
	assert.Nil(t, m.Server)
}

func TestMain_Run_MissingGeminiKey(t *testing.T) {
	unsetenv(t, "GEMINI_API_KEY")

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--provider=gemini", "--groq-api-key=unused", "--env-file="}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini API key not set")
	assert.Contains(t, stderr.String(), "GEMINI_API_KEY")
}

func TestMain_Run_StartsAndStops(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "uploads")
	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(canceledContext(), []string{
		"--addr=127.0.0.1:0",
		"--upload-dir=" + dir,
		"--groq-api-key=test-key",
		"--env-file=",
	}, &stdout, &stderr)

	require.NoError(t, err)
	require.NotNil(t, m.Server)
	assert.Equal(t, int64(32<<20), m.Server.MaxUploadBytes)
	assert.DirExists(t, dir)
	assert.Contains(t, stderr.String(), "msg=listening")
	assert.Contains(t, stderr.String(), "provider=groq")
}

func TestMain_Run_LoadsEnvFile(t *testing.T) {
	unsetenv(t, "GROQ_API_KEY")

	tmp := t.TempDir()
	envFile := filepath.Join(tmp, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("GROQ_API_KEY=from-file\n"), 0644))

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(canceledContext(), []string{
		"--addr=127.0.0.1:0",
		"--upload-dir=" + filepath.Join(tmp, "uploads"),
		"--env-file", envFile,
		"--log-format=json",
	}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Equal(t, "from-file", os.Getenv("GROQ_API_KEY"))
	assert.Contains(t, stderr.String(), `"msg":"listening"`)
}
