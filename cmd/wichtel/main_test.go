package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "persons.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_PrintsToStdout(t *testing.T) {
	in := writeInput(t, `{"persons": ["NameA", "NameB"]}`)
	var stdout, stderr bytes.Buffer

	code := run([]string{"-i", in}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	out := stdout.String()
	require.True(t, strings.HasPrefix(out, "Result: "), out)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(out, "Result: ")), &got))
	require.Equal(t, map[string]string{"NameA": "NameB", "NameB": "NameA"}, got)
}

func TestRun_WritesOutputFile(t *testing.T) {
	in := writeInput(t, `{"persons": []}`)
	out := filepath.Join(t.TempDir(), "result.json")
	var stdout, stderr bytes.Buffer

	code := run([]string{"--input-file", in, "--output-file", out}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	require.Empty(t, stdout.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.JSONEq(t, `{}`, string(data))
}

func TestRun_SoloIsSkipped(t *testing.T) {
	in := writeInput(t, `{"persons": ["Solo"]}`)
	var stdout, stderr bytes.Buffer

	code := run([]string{"-i", in}, &stdout, &stderr)

	require.Equal(t, 0, code)
	require.Equal(t, "Result: {}\n", stdout.String())
	require.Contains(t, stderr.String(), "person left without a recipient")
}

func TestRun_AbortPolicyFails(t *testing.T) {
	in := writeInput(t, `{"persons": ["Solo"]}`)
	var stdout, stderr bytes.Buffer

	code := run([]string{"-i", in, "-policy", "abort"}, &stdout, &stderr)

	require.Equal(t, 1, code)
	require.Empty(t, stdout.String())
	require.Contains(t, stderr.String(), "unable to calculate wichtels")
}

func TestRun_Failures(t *testing.T) {
	t.Run("missing input flag", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		require.Equal(t, 1, run(nil, &stdout, &stderr))
		require.Empty(t, stdout.String())
	})

	t.Run("missing input file", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run([]string{"-i", filepath.Join(t.TempDir(), "none.json")}, &stdout, &stderr)
		require.Equal(t, 1, code)
		require.Empty(t, stdout.String())
	})

	t.Run("malformed json", func(t *testing.T) {
		in := writeInput(t, `{"persons": "Alice"}`)
		var stdout, stderr bytes.Buffer
		require.Equal(t, 1, run([]string{"-i", in}, &stdout, &stderr))
		require.Empty(t, stdout.String())
	})

	t.Run("help exits cleanly", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		require.Equal(t, 0, run([]string{"-h"}, &stdout, &stderr))
	})
}
