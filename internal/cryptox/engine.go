// Package cryptox wraps the server master key into authenticated
// encryption of short text values (security questions and answers).
//
// Tokens are Fernet tokens: version, timestamp, random IV, AES-128-CBC
// ciphertext and an HMAC-SHA256 tag, URL-safe base64 encoded. A token is
// self-contained, so decryption needs only the token and the key.
package cryptox

import (
	"fmt"

	"github.com/dmitrijs2005/cybervault/internal/common"
	"github.com/fernet/fernet-go"
)

// noTTL disables the token age check: recovery records never expire.
const noTTL = -1

// Engine encrypts and decrypts strings with one immutable key.
// It holds no per-call state and is safe for concurrent use.
type Engine struct {
	keys []*fernet.Key
}

// NewEngine returns an Engine bound to key.
func NewEngine(key *fernet.Key) (*Engine, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: nil key", common.ErrorCrypto)
	}
	k := *key
	return &Engine{keys: []*fernet.Key{&k}}, nil
}

// Encrypt returns a token for plaintext. The empty string maps to the empty
// string so that an unset field stays unset in storage.
func (e *Engine) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	tok, err := fernet.EncryptAndSign([]byte(plaintext), e.keys[0])
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrorCrypto, err)
	}
	return string(tok), nil
}

// DecryptStrict verifies and decrypts ciphertext. Anything that is not a
// valid token under the current key yields common.ErrorCrypto.
func (e *Engine) DecryptStrict(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}
	msg := fernet.VerifyAndDecrypt([]byte(ciphertext), noTTL, e.keys)
	if msg == nil {
		return "", fmt.Errorf("%w: token rejected", common.ErrorCrypto)
	}
	return string(msg), nil
}

// Decrypt is DecryptStrict with the legacy fallback: input that does not
// verify is returned unchanged. Rows written before encryption was enabled
// hold plaintext, and they must keep working.
//
// The fallback cannot tell legacy plaintext from a corrupted or foreign
// token. Callers that need that distinction use DecryptStrict.
func (e *Engine) Decrypt(ciphertext string) string {
	plaintext, err := e.DecryptStrict(ciphertext)
	if err != nil {
		return passthroughLegacy(ciphertext)
	}
	return plaintext
}

// passthroughLegacy is the only place rejected tokens are turned into
// plaintext.
func passthroughLegacy(input string) string {
	return input
}
