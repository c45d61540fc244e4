package crypto

// Cipher is the contract shared by a bound Service and the deferred Lazy handle.
type Cipher interface {
	// Encrypt returns the lowercase hex AES-256-CBC ciphertext of plaintext.
	Encrypt(plaintext string) (string, error)

	// Decrypt reverses Encrypt. Any malformed input yields ErrDecryption.
	Decrypt(ciphertextHex string) (string, error)

	// Hash returns the lowercase hex SHA-256 digest of value. It does not depend on key material.
	Hash(value string) (string, error)
}

var (
	_ Cipher = (*Service)(nil)
	_ Cipher = (*Lazy)(nil)
)
