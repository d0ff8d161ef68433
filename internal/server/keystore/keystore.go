// Package keystore owns the server master key: it loads the key file at
// startup, or generates and persists a new key when none exists.
//
// The file holds the key as URL-safe base64 text (44 characters), the same
// format Fernet tooling writes, so existing key files keep working.
package keystore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/awnumar/memguard"
	"github.com/dmitrijs2005/cybervault/internal/common"
	"github.com/dmitrijs2005/cybervault/internal/filex"
	"github.com/dmitrijs2005/cybervault/internal/logging"
	"github.com/fernet/fernet-go"
)

const keyFileMode = 0o600

// KeyStore loads or creates the key file at a fixed path. The key is read
// once and cached for the lifetime of the KeyStore.
type KeyStore struct {
	path   string
	logger logging.Logger

	mu  sync.Mutex
	key *fernet.Key
}

func New(path string, l logging.Logger) *KeyStore {
	return &KeyStore{path: path, logger: l.With("module", "keystore")}
}

// Path returns the key file location.
func (s *KeyStore) Path() string {
	return s.path
}

// GetOrCreateKey returns the master key. An existing file is never
// overwritten; a missing one is created with a fresh random key. A file that
// cannot be read or does not hold a valid key yields common.ErrorCrypto,
// which callers must treat as fatal.
func (s *KeyStore) GetOrCreateKey(ctx context.Context) (*fernet.Key, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.key != nil {
		return copyKey(s.key), nil
	}

	key, err := s.load()
	if errors.Is(err, fs.ErrNotExist) {
		key, err = s.create(ctx)
	}
	if err != nil {
		return nil, err
	}

	s.key = key
	return copyKey(key), nil
}

func (s *KeyStore) load() (*fernet.Key, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: key file %s unreadable: %w", common.ErrorCrypto, s.path, err)
	}
	defer memguard.WipeBytes(raw)

	key, err := fernet.DecodeKey(string(bytes.TrimSpace(raw)))
	if err != nil {
		return nil, fmt.Errorf("%w: key file %s is malformed: %w", common.ErrorCrypto, s.path, err)
	}
	return key, nil
}

func (s *KeyStore) create(ctx context.Context) (*fernet.Key, error) {
	var key fernet.Key
	if err := key.Generate(); err != nil {
		return nil, fmt.Errorf("%w: generate key: %w", common.ErrorCrypto, err)
	}

	encoded := []byte(key.Encode())
	defer memguard.WipeBytes(encoded)

	err := filex.WriteNew(s.path, encoded, keyFileMode)
	if errors.Is(err, fs.ErrExist) {
		// another process won the race; its key is the key
		return s.load()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: persist key file %s: %w", common.ErrorCrypto, s.path, err)
	}

	s.logger.Warn(ctx, "generated new server master key; back up this file, losing it makes every stored recovery record undecryptable",
		"path", s.path)

	return &key, nil
}

func copyKey(k *fernet.Key) *fernet.Key {
	c := *k
	return &c
}
