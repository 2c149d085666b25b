package dict

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDict(t *testing.T, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "dict.txt")
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadBakesInBlankAndSpace(t *testing.T) {
	path := writeDict(t, "a", "b", "c")
	cs, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0, cs.BlankIndex())
	assert.Equal(t, 5, cs.Size()) // blank + 3 tokens + trailing space
	assert.Equal(t, "a", cs.Token(1))
	assert.Equal(t, "b", cs.Token(2))
	assert.Equal(t, "c", cs.Token(3))
	assert.Equal(t, " ", cs.Token(4))
	assert.Equal(t, "", cs.Token(0), "blank index must never resolve to a token")
}

func TestIndexLookup(t *testing.T) {
	path := writeDict(t, "x", "y")
	cs, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1, cs.Index("x"))
	assert.Equal(t, 2, cs.Index("y"))
	assert.Equal(t, 3, cs.Index(" "))
	assert.Equal(t, -1, cs.Index("missing"))
}

func TestLoadSkipsBlankLinesAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dict.txt")
	content := "\ufeffa\n\nb\n  \nc\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cs, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "a", cs.Token(1))
	assert.Equal(t, "b", cs.Token(2))
	assert.Equal(t, "c", cs.Token(3))
}

func TestLoadEmptyPath(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadEmptyDictionary(t *testing.T) {
	path := writeDict(t)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/dict.txt")
	assert.Error(t, err)
}

func TestTokenOutOfRange(t *testing.T) {
	path := writeDict(t, "a")
	cs, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "", cs.Token(-1))
	assert.Equal(t, "", cs.Token(cs.Size()))
	assert.Equal(t, "", cs.Token(cs.Size()+10))
}

func TestDuplicateTokensKeepFirstIndex(t *testing.T) {
	path := writeDict(t, "a", "a", "b")
	cs, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cs.Index("a"))
}

func TestNilCharsetIsSafe(t *testing.T) {
	var cs *Charset
	assert.Equal(t, "", cs.Token(1))
	assert.Equal(t, -1, cs.Index("a"))
}
