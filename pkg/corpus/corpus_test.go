package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xhad/holocron/internal/models"
)

func TestRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "dataset.json"))

	characters := []models.Character{
		{Name: "Luke Skywalker", Portrayal: "Mark Hamill", Description: "A farm boy turned Jedi."},
		{Name: "Leia Organa", Portrayal: "Carrie Fisher", Description: "Princess of Alderaan."},
		{Name: "Han Solo", Portrayal: "Harrison Ford", Description: "A smuggler."},
	}

	require.NoError(t, store.Write(characters))

	loaded, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, characters, loaded)
}

func TestWriteIsHumanReadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.json")
	store := NewStore(path)

	require.NoError(t, store.Write([]models.Character{
		{Name: "Yoda", Portrayal: "Frank Oz", Description: "Jedi Master."},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[\n"))
	assert.Contains(t, string(data), `"name": "Yoda"`)
}

func TestWriteEmptyCorpus(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "dataset.json"))

	require.NoError(t, store.Write(nil))

	loaded, err := store.Read()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestReadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.json"))

	_, err := store.Read()
	require.Error(t, err)

	var malformed *MalformedError
	assert.False(t, errors.As(err, &malformed), "missing file is an I/O error, not a malformed artifact")
}

func TestReadMalformedArtifact(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not JSON", "definitely not json"},
		{"wrong shape", `{"name": "Yoda"}`},
		{"truncated", `[{"name": "Yoda"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "dataset.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := NewStore(path).Read()
			require.Error(t, err)

			var malformed *MalformedError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, path, malformed.Path)
		})
	}
}
