package tui

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	_ "github.com/vovakirdan/tetris-arcade/internal/games/tetris"
	"github.com/vovakirdan/tetris-arcade/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "tui.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}
