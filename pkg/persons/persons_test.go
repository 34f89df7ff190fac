package persons

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arnavshah/wichtel-api-go/pkg/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRead(t *testing.T) {
	t.Run("json list", func(t *testing.T) {
		path := writeFile(t, "persons.json", `{"persons": ["Alice", "Bob", "Carol"]}`)

		got, err := Read(path)

		require.NoError(t, err)
		require.Equal(t, []string{"Alice", "Bob", "Carol"}, got)
	})

	t.Run("empty json list", func(t *testing.T) {
		path := writeFile(t, "persons.json", `{"persons": []}`)

		got, err := Read(path)

		require.NoError(t, err)
		require.NotNil(t, got)
		require.Empty(t, got)
	})

	t.Run("keeps duplicates and order", func(t *testing.T) {
		path := writeFile(t, "persons.json", `{"persons": ["B", "A", "B"]}`)

		got, err := Read(path)

		require.NoError(t, err)
		require.Equal(t, []string{"B", "A", "B"}, got)
	})

	t.Run("yaml list", func(t *testing.T) {
		path := writeFile(t, "persons.yaml", "persons:\n  - Alice\n  - Bob\n")

		got, err := Read(path)

		require.NoError(t, err)
		require.Equal(t, []string{"Alice", "Bob"}, got)
	})

	t.Run("missing persons field", func(t *testing.T) {
		path := writeFile(t, "persons.json", `{"people": ["Alice"]}`)

		_, err := Read(path)

		require.ErrorIs(t, err, ErrMissingPersons)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := writeFile(t, "persons.json", `{"persons": [`)

		_, err := Read(path)

		require.Error(t, err)
		require.Contains(t, err.Error(), "parse")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Read(filepath.Join(t.TempDir(), "nope.json"))

		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestWrite(t *testing.T) {
	m := models.Assignment{"Alice": "Bob", "Bob": "Alice"}

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")
		require.NoError(t, Write(path, m))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Contains(t, string(data), "\n  \"Alice\": \"Bob\"")

		var got models.Assignment
		require.NoError(t, json.Unmarshal(data, &got))
		require.Equal(t, m, got)
	})

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.yml")
		require.NoError(t, Write(path, m))

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var got models.Assignment
		require.NoError(t, yaml.Unmarshal(data, &got))
		require.Equal(t, m, got)
	})

	t.Run("unwritable path", func(t *testing.T) {
		err := Write(filepath.Join(t.TempDir(), "missing", "out.json"), m)

		require.Error(t, err)
	})
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Print(&buf, models.Assignment{}))
	require.Equal(t, "Result: {}\n", buf.String())

	buf.Reset()
	require.NoError(t, Print(&buf, models.Assignment{"A": "B"}))
	require.Equal(t, "Result: {\n  \"A\": \"B\"\n}\n", buf.String())
}
