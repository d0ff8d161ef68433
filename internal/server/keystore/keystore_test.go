package keystore

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/dmitrijs2005/cybervault/internal/common"
	"github.com/dmitrijs2005/cybervault/internal/logging"
	"github.com/fernet/fernet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() (logging.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil))), &buf
}

func TestGetOrCreateKey_GeneratesAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server_secret.key")
	l, buf := newTestLogger()

	key, err := New(path, l).GetOrCreateKey(context.Background())
	require.NoError(t, err)
	require.NotNil(t, key)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, key.Encode(), string(b))
	assert.Len(t, string(b), 44)

	if runtime.GOOS != "windows" {
		fi, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
	}

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "back up this file")
	assert.Contains(t, out, path)
}

func TestGetOrCreateKey_SameFileSameKeyAcrossRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server_secret.key")
	l, buf := newTestLogger()

	first, err := New(path, l).GetOrCreateKey(context.Background())
	require.NoError(t, err)
	buf.Reset()

	second, err := New(path, l).GetOrCreateKey(context.Background())
	require.NoError(t, err)

	assert.Equal(t, *first, *second)
	assert.NotContains(t, buf.String(), "generated new server master key")
}

func TestGetOrCreateKey_DeletedFileYieldsDifferentKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server_secret.key")

	first, err := New(path, logging.Nop{}).GetOrCreateKey(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))

	second, err := New(path, logging.Nop{}).GetOrCreateKey(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, *first, *second)
}

func TestGetOrCreateKey_LoadsExistingFernetKeyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server_secret.key")

	var want fernet.Key
	require.NoError(t, want.Generate())
	require.NoError(t, os.WriteFile(path, []byte(want.Encode()+"\n"), 0o600))

	got, err := New(path, logging.Nop{}).GetOrCreateKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, *got)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want.Encode()+"\n", string(b), "existing key file must not be rewritten")
}

func TestGetOrCreateKey_MalformedFileIsFatal(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty", content: ""},
		{name: "not base64", content: "this is not a key!!"},
		{name: "too short", content: "c2hvcnQ="},
		{name: "too long", content: strings.Repeat("QUFB", 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "server_secret.key")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := New(path, logging.Nop{}).GetOrCreateKey(context.Background())
			require.ErrorIs(t, err, common.ErrorCrypto)

			b, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(b), "malformed key file must be left alone")
		})
	}
}

func TestGetOrCreateKey_UnreadableIsFatal(t *testing.T) {
	// a directory at the key path cannot be read as a file
	path := filepath.Join(t.TempDir(), "server_secret.key")
	require.NoError(t, os.Mkdir(path, 0o700))

	_, err := New(path, logging.Nop{}).GetOrCreateKey(context.Background())
	require.ErrorIs(t, err, common.ErrorCrypto)
}

func TestGetOrCreateKey_CachesAndReturnsCopies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server_secret.key")
	ks := New(path, logging.Nop{})

	a, err := ks.GetOrCreateKey(context.Background())
	require.NoError(t, err)
	a[0] ^= 0xff

	require.NoError(t, os.Remove(path))

	b, err := ks.GetOrCreateKey(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, *a, *b, "caller mutation must not leak into the cached key")

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "cached key must not touch the filesystem again")
}
