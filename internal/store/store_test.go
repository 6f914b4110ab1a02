package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-insight/internal/config"
	"github.com/tartampluch/go-insight/internal/store"
)

// backends opens one fresh instance of every driver.
func backends(t *testing.T) map[string]store.Store {
	t.Helper()
	dir := t.TempDir()
	ctx := context.Background()

	out := map[string]store.Store{}
	for driver, name := range map[string]string{
		config.DriverMemory: "",
		config.DriverFile:   config.StoreFileName,
		config.DriverSQLite: config.StoreDBName,
	} {
		s, err := store.Open(ctx, driver, filepath.Join(dir, name))
		require.NoError(t, err, driver)
		t.Cleanup(func() { _ = s.Close() })
		out[driver] = s
	}
	return out
}

func TestStore_Contract(t *testing.T) {
	ctx := context.Background()

	for driver, s := range backends(t) {
		t.Run(driver, func(t *testing.T) {
			_, err := s.Get(ctx, "missing")
			assert.ErrorIs(t, err, store.ErrNotFound)

			require.NoError(t, s.Set(ctx, "daily.2024-01-02", []byte(`{"notes":"b"}`)))
			require.NoError(t, s.Set(ctx, "daily.2024-01-01", []byte(`{"notes":"a"}`)))
			require.NoError(t, s.Set(ctx, "lifestyle.fullName", []byte(`"Ada"`)))

			got, err := s.Get(ctx, "lifestyle.fullName")
			require.NoError(t, err)
			assert.JSONEq(t, `"Ada"`, string(got))

			// Overwrite.
			require.NoError(t, s.Set(ctx, "lifestyle.fullName", []byte(`"Ada Lovelace"`)))
			got, err = s.Get(ctx, "lifestyle.fullName")
			require.NoError(t, err)
			assert.JSONEq(t, `"Ada Lovelace"`, string(got))

			keys, err := s.Keys(ctx, "daily.")
			require.NoError(t, err)
			assert.Equal(t, []string{"daily.2024-01-01", "daily.2024-01-02"}, keys)

			all, err := s.Keys(ctx, "")
			require.NoError(t, err)
			assert.Len(t, all, 3)

			none, err := s.Keys(ctx, "finance.")
			require.NoError(t, err)
			assert.NotNil(t, none)
			assert.Empty(t, none)

			require.NoError(t, s.Delete(ctx, "daily.2024-01-01"))
			require.NoError(t, s.Delete(ctx, "daily.2024-01-01"), "deleting twice is fine")
			_, err = s.Get(ctx, "daily.2024-01-01")
			assert.ErrorIs(t, err, store.ErrNotFound)
		})
	}
}

func TestStore_PrefixIsLiteral(t *testing.T) {
	ctx := context.Background()
	for driver, s := range backends(t) {
		t.Run(driver, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, "a_b", []byte(`1`)))
			require.NoError(t, s.Set(ctx, "axb", []byte(`2`)))
			keys, err := s.Keys(ctx, "a_")
			require.NoError(t, err)
			assert.Equal(t, []string{"a_b"}, keys)
		})
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := store.Open(context.Background(), "redis", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrDriverUnsupport)
}

func TestOpen_EmptyPath(t *testing.T) {
	for _, driver := range []string{config.DriverFile, config.DriverSQLite} {
		_, err := store.Open(context.Background(), driver, "")
		require.Error(t, err, driver)
		assert.Contains(t, err.Error(), config.ErrStorePathEmpty)
	}
}

func TestFileStore_Persists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", config.StoreFileName)

	s, err := store.NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, config.StoreKeyBirthDate, []byte(`"1990-01-01"`)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, config.FilePermUserRW, info.Mode().Perm())

	reopened, err := store.NewFileStore(path)
	require.NoError(t, err)
	got, err := reopened.Get(ctx, config.StoreKeyBirthDate)
	require.NoError(t, err)
	assert.JSONEq(t, `"1990-01-01"`, string(got))

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches, "temp files are cleaned up")
}

func TestFileStore_RejectsInvalidJSON(t *testing.T) {
	s, err := store.NewFileStore(filepath.Join(t.TempDir(), "s.json"))
	require.NoError(t, err)

	err = s.Set(context.Background(), "k", []byte(`{not json`))
	require.Error(t, err)
	_, err = s.Get(context.Background(), "k")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), config.FilePermUserRW))

	_, err := store.NewFileStore(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrStoreDecode)
}

func TestSQLiteStore_MigratesOnceAndPersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), config.StoreDBName)

	s, err := store.NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	v, err := s.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.SchemaVersion, v)
	require.NoError(t, s.Set(ctx, "k", []byte(`42`)))
	require.NoError(t, s.Close())

	s, err = store.NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `42`, string(got))
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	v := []byte(`"abc"`)
	require.NoError(t, s.Set(ctx, "k", v))
	v[1] = 'X'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `"abc"`, string(got))
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := store.NewMemoryStore()
	assert.ErrorIs(t, s.Set(ctx, "k", []byte(`1`)), context.Canceled)
	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}
