package wire

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/fernet/fernet-go"
)

// DefaultPassphrase is the fixed passphrase both peers derive the transport
// key from. This is obfuscation, not authenticated encryption against an
// active adversary: every client ships the same passphrase, and the framing
// depends on both ends deriving the identical key.
const DefaultPassphrase = "pong_game_2024"

// Codec symmetrically encrypts and decrypts one message frame at a time
// using the Fernet scheme, interoperable with the existing clients.
type Codec struct {
	key *fernet.Key
}

// NewCodec derives a Fernet key from the passphrase
// (urlsafe base64 of its SHA-256 digest) and returns a codec for it.
func NewCodec(passphrase string) (*Codec, error) {
	digest := sha256.Sum256([]byte(passphrase))
	key, err := fernet.DecodeKey(base64.URLEncoding.EncodeToString(digest[:]))
	if err != nil {
		return nil, fmt.Errorf("derive transport key: %w", err)
	}
	return &Codec{key: key}, nil
}

// Encrypt seals one plaintext frame into an opaque blob
func (c *Codec) Encrypt(plaintext []byte) ([]byte, error) {
	blob, err := fernet.EncryptAndSign(plaintext, c.key)
	if err != nil {
		return nil, fmt.Errorf("encrypt frame: %w", err)
	}
	return blob, nil
}

// Decrypt opens one blob. A frame that fails verification returns
// ErrDecryptFailure; corruption and truncation are indistinguishable here.
func (c *Codec) Decrypt(blob []byte) ([]byte, error) {
	plaintext := fernet.VerifyAndDecrypt(blob, 0, []*fernet.Key{c.key})
	if plaintext == nil {
		return nil, ErrDecryptFailure
	}
	return plaintext, nil
}
