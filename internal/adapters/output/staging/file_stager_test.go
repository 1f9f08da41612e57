package staging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageAndRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	stager, err := NewDiskStager(dir)
	require.NoError(t, err)
	assert.DirExists(t, dir)

	path, err := stager.Stage(strings.NewReader("hello"), ".pdf")
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.Equal(t, ".pdf", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, stager.Remove(path))
	assert.NoFileExists(t, path)

	// removing twice is not an error
	assert.NoError(t, stager.Remove(path))
	assert.NoError(t, stager.Remove(""))
}

func TestStageUsesUniqueNames(t *testing.T) {
	stager, err := NewDiskStager(t.TempDir())
	require.NoError(t, err)

	first, err := stager.Stage(strings.NewReader("a"), ".txt")
	require.NoError(t, err)
	second, err := stager.Stage(strings.NewReader("b"), ".txt")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
