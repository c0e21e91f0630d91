package audit

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "state", "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestRecordWriteAndDelete(t *testing.T) {
	j := newTestJournal(t)

	j.RecordWrite("notes/idea.txt", []byte("hello"))
	j.RecordDelete("notes/idea.txt")

	entries, err := j.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Most recent first
	assert.Equal(t, "delete", entries[0].Operation)
	assert.Equal(t, "notes/idea.txt", entries[0].Path)
	assert.Empty(t, entries[0].ContentHash)

	assert.Equal(t, "write", entries[1].Operation)
	assert.Equal(t, int64(5), entries[1].SizeBytes)
	assert.Len(t, entries[1].ContentHash, 16)
	assert.False(t, entries[1].Timestamp.IsZero())
}

func TestContentHashIsDeterministic(t *testing.T) {
	j := newTestJournal(t)

	j.RecordWrite("a.txt", []byte("same content"))
	j.RecordWrite("b.txt", []byte("same content"))
	j.RecordWrite("c.txt", []byte("different"))

	entries, err := j.Recent(3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, entries[1].ContentHash, entries[2].ContentHash)
	assert.NotEqual(t, entries[0].ContentHash, entries[1].ContentHash)
}

func TestRecentLimit(t *testing.T) {
	j := newTestJournal(t)
	for i := 0; i < 10; i++ {
		j.RecordDelete("f.txt")
	}

	entries, err := j.Recent(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")

	j, err := Open(path)
	require.NoError(t, err)
	j.RecordWrite("persisted.txt", []byte("x"))
	require.NoError(t, j.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	entries, err := reopened.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "persisted.txt", entries[0].Path)
}
