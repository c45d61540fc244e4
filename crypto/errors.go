package crypto

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned when key material is missing or malformed.
	ErrConfiguration = errors.New("crypto: invalid configuration")

	// ErrEncryption is returned when the block cipher fails to encrypt.
	ErrEncryption = errors.New("crypto: encryption failed")

	// ErrDecryption is returned for any ciphertext that cannot be turned back into text:
	// bad hex, wrong block alignment, bad padding or non UTF-8 output.
	// The cause is deliberately not attached.
	ErrDecryption = errors.New("crypto: decryption failed")

	// ErrHashing is returned when the digest could not be computed.
	ErrHashing = errors.New("crypto: hashing failed")

	// ErrNotInitialized is returned when no service is held and none could be built
	// from the key provider.
	ErrNotInitialized = errors.New("crypto: encryption service not initialized")

	// ErrNilService is returned by methods called on a nil *Service.
	ErrNilService = errors.New("crypto: nil service")
)

const initializeHint = "set ENCRYPTION_SECRET_KEY (64 hex chars) and ENCRYPTION_IV (32 hex chars) or call Manager.Initialize with explicit keys"

// NotInitializedError reports an operation that needed the shared service
// while none was available.
type NotInitializedError struct {
	// Op is the operation that was requested, e.g. "Encrypt". Empty for Manager.Instance.
	Op string
	// Err is the reason lazy initialization failed, if any.
	Err error
}

func (e *NotInitializedError) Error() string {
	msg := ErrNotInitialized.Error()
	if e.Op != "" {
		msg = fmt.Sprintf("%s: cannot call %s", msg, e.Op)
	}

	if e.Err != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.Err)
	}

	return msg + "; " + initializeHint
}

// Unwrap exposes both the sentinel and the underlying cause to errors.Is / errors.As.
func (e *NotInitializedError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNotInitialized}
	}

	return []error{ErrNotInitialized, e.Err}
}
