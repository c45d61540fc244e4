package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/Sameerbk201/sameer-shared/internal/utils"
	"github.com/Sameerbk201/sameer-shared/logger"
)

const (
	// KeySize is the AES-256 key length in bytes (64 hex characters).
	KeySize = 32
	// IVSize is the CBC initialization vector length in bytes (32 hex characters).
	IVSize = aes.BlockSize
)

// Service encrypts, decrypts and hashes with one immutable key/IV pair.
//
// The IV is fixed for the lifetime of the service, so equal plaintexts always
// produce equal ciphertexts. Existing ciphertexts depend on this; do not build
// new formats on top of it.
type Service struct {
	block  cipher.Block
	iv     []byte
	logger logger.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for operation diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService decodes the hex key material and binds it to a new Service.
func NewService(secretKeyHex, ivHex string, opts ...Option) (*Service, error) {
	if secretKeyHex == "" || ivHex == "" {
		return nil, fmt.Errorf("%w: secret key and iv are required", ErrConfiguration)
	}

	key, err := hex.DecodeString(secretKeyHex)
	if err != nil {
		return nil, fmt.Errorf("%w: secret key is not valid hex", ErrConfiguration)
	}

	defer func() {
		for i := range key {
			key[i] = 0
		}
	}()

	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: secret key must be %d bytes, got %d", ErrConfiguration, KeySize, len(key))
	}

	iv, err := hex.DecodeString(ivHex)
	if err != nil {
		return nil, fmt.Errorf("%w: iv is not valid hex", ErrConfiguration)
	}

	if len(iv) != IVSize {
		return nil, fmt.Errorf("%w: iv must be %d bytes, got %d", ErrConfiguration, IVSize, len(iv))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: block cipher failure: %w", ErrConfiguration, err)
	}

	s := &Service{
		block:  block,
		iv:     iv,
		logger: logger.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Encrypt pads the UTF-8 bytes of plaintext with PKCS#7, encrypts them with
// AES-256-CBC and returns lowercase hex.
func (s *Service) Encrypt(plaintext string) (string, error) {
	if s == nil {
		return "", ErrNilService
	}

	if s.block == nil || len(s.iv) != IVSize {
		return "", fmt.Errorf("%w: service was not built with NewService", ErrEncryption)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	out := make([]byte, len(padded))

	cipher.NewCBCEncrypter(s.block, s.iv).CryptBlocks(out, padded)

	return hex.EncodeToString(out), nil
}

// Decrypt reverses Encrypt. Every rejection is reported as ErrDecryption
// without the underlying reason.
func (s *Service) Decrypt(ciphertextHex string) (string, error) {
	if s == nil {
		return "", ErrNilService
	}

	plaintext, err := s.decrypt(ciphertextHex)
	if err != nil {
		s.log().Debug("ciphertext rejected", logger.String("reason", err.Error()))
		return "", ErrDecryption
	}

	return plaintext, nil
}

func (s *Service) decrypt(ciphertextHex string) (string, error) {
	if s.block == nil || len(s.iv) != IVSize {
		return "", errors.New("service was not built with NewService")
	}

	data, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return "", errors.New("not hex")
	}

	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return "", errors.New("not block aligned")
	}

	out := make([]byte, len(data))
	cipher.NewCBCDecrypter(s.block, s.iv).CryptBlocks(out, data)

	unpadded, err := pkcs7Unpad(out, aes.BlockSize)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(unpadded) {
		return "", errors.New("plaintext is not utf-8")
	}

	return string(unpadded), nil
}

// Hash returns the lowercase hex SHA-256 digest of value.
func (s *Service) Hash(value string) (string, error) {
	if s == nil {
		return "", ErrNilService
	}

	return hashHex(value)
}

// HashEqual reports whether digestHex is the SHA-256 of value, comparing in constant time.
func (s *Service) HashEqual(value, digestHex string) bool {
	if s == nil {
		return false
	}

	expected, err := hashHex(value)
	if err != nil {
		return false
	}

	return utils.ConstantTimeHexEqual(expected, digestHex)
}

func hashHex(value string) (string, error) {
	h := sha256.New()
	if _, err := h.Write([]byte(value)); err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashing, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

func (s *Service) log() logger.Logger {
	if s == nil || s.logger == nil {
		return logger.NewNop()
	}

	return s.logger
}

// String redacts key material.
func (s *Service) String() string {
	if s == nil {
		return "<nil>"
	}

	return "crypto.Service{algorithm:AES-256-CBC, key:REDACTED, iv:REDACTED}"
}

// GoString redacts key material for %#v.
func (s *Service) GoString() string {
	return s.String()
}
