package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuild(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		l, err := Build(Options{Path: "/nonexistent/dir/log"})
		require.NoError(t, err)
		require.False(t, l.Core().Enabled(zap.ErrorLevel))
	})

	t.Run("json to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mdedit.log")
		l, err := Build(Options{Enabled: true, Path: path})
		require.NoError(t, err)
		require.False(t, l.Core().Enabled(zap.DebugLevel))

		l.Info("hello", zap.Int("n", 1))
		_ = l.Sync()

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Contains(t, string(data), `"msg":"hello"`)
		require.Contains(t, string(data), `"n":1`)
	})

	t.Run("verbose", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mdedit.log")
		l, err := Build(Options{Enabled: true, Verbose: true, Path: path})
		require.NoError(t, err)
		require.True(t, l.Core().Enabled(zap.DebugLevel))
	})
}

func TestReplace(t *testing.T) {
	prev := Get()
	t.Cleanup(func() { Replace(prev) })

	Replace(nil)
	require.NotNil(t, Get())

	l := zap.NewExample()
	Replace(l)
	require.Same(t, l, Get())
}
