package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureSubdDir_CreatesPrivateDirectory(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureSubdDir("exports")
	require.NoError(t, err)

	want := filepath.Join(tmp, "exports")
	require.Equal(t, want, got)

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm())
	}
}

func TestEnsureSubdDir_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	first, err := EnsureSubdDir("exports")
	require.NoError(t, err)

	second, err := EnsureSubdDir("exports")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsureSubdDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	require.NoError(t, os.WriteFile("exports", []byte("x"), 0o600))

	_, err := EnsureSubdDir("exports")
	require.Error(t, err)
}

func TestWritePrivate(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	path, err := WritePrivate("exports", "vault.enc", []byte("sealed"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmp, "exports", "vault.enc"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("sealed"), data)

	if runtime.GOOS != "windows" {
		fi, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
	}
}

func TestWritePrivate_StripsDirectoryFromName(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	path, err := WritePrivate("exports", "../../escape.enc", []byte("x"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmp, "exports", "escape.enc"), path)
}

func TestWritePrivate_DirError(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	require.NoError(t, os.WriteFile("exports", []byte("x"), 0o600))

	_, err := WritePrivate("exports", "vault.enc", []byte("x"))
	require.Error(t, err)
}
