package store

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// Codec turns entry files into secrets and back
type Codec interface {
	// Extension is the file suffix of entries handled by this codec
	Extension() string
	Encode(plain []byte) ([]byte, error)
	Decode(data []byte) ([]byte, error)
}

// Codec names accepted by NewCodec
const (
	CodecPlain  = "plain"
	CodecSealed = "sealed"
)

// NewCodec returns the codec registered under name
func NewCodec(name, passphrase string) (Codec, error) {
	switch name {
	case "", CodecPlain:
		return PlainCodec{}, nil
	case CodecSealed:
		return NewSealedCodec(passphrase)
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}

// PlainCodec stores secrets as-is
type PlainCodec struct{}

func (PlainCodec) Extension() string { return ".pass" }

func (PlainCodec) Encode(plain []byte) ([]byte, error) { return plain, nil }

func (PlainCodec) Decode(data []byte) ([]byte, error) { return data, nil }

// argon2id parameters for the sealed codec
const (
	kdfTime    = 1
	kdfMemory  = 64 * 1024
	kdfThreads = 4
	keyLen     = 32
	saltLen    = 16
)

var sealedMagic = []byte("PGS1")

// SealedCodec encrypts each entry with AES-256-GCM under a key derived
// from a passphrase. File layout: magic | salt | nonce | ciphertext.
type SealedCodec struct {
	passphrase []byte
}

// NewSealedCodec creates a sealed codec for passphrase
func NewSealedCodec(passphrase string) (*SealedCodec, error) {
	if passphrase == "" {
		return nil, errors.New("sealed codec requires a passphrase")
	}
	return &SealedCodec{passphrase: []byte(passphrase)}, nil
}

func (c *SealedCodec) Extension() string { return ".sealed" }

func (c *SealedCodec) Encode(plain []byte) ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	gcm, err := c.aead(salt)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(sealedMagic)+saltLen+len(nonce)+len(plain)+gcm.Overhead())
	out = append(out, sealedMagic...)
	out = append(out, salt...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, plain, sealedMagic), nil
}

func (c *SealedCodec) Decode(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, sealedMagic) {
		return nil, fmt.Errorf("%w: not a sealed entry", ErrDecrypt)
	}
	data = data[len(sealedMagic):]
	if len(data) < saltLen {
		return nil, fmt.Errorf("%w: entry too short", ErrDecrypt)
	}
	salt, data := data[:saltLen], data[saltLen:]

	gcm, err := c.aead(salt)
	if err != nil {
		return nil, err
	}
	if len(data) < gcm.NonceSize() {
		return nil, fmt.Errorf("%w: entry too short", ErrDecrypt)
	}
	nonce, ciphertext := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, ciphertext, sealedMagic)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	return plain, nil
}

func (c *SealedCodec) aead(salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey(c.passphrase, salt, kdfTime, kdfMemory, kdfThreads, keyLen)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
