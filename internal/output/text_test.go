package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteTextFileCreatesParentDirs(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "deeper", "file.txt")
	require.NoError(t, WriteTextFile(path, "hello\n"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "hello\n", string(content))
}

func TestWriteTextFileOverwritesExisting(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, WriteTextFile(path, "first version with more bytes\n"))
	require.NoError(t, WriteTextFile(path, "second\n"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "second\n", string(content))
}

func TestWriteTextFileEmptyContent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, WriteTextFile(path, ""))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Empty(t, string(content))
}
