package crypto

// Lazy is a Cipher that defers to the Manager's shared Service. Holding a Lazy
// never requires key material; each call resolves the Service and fails with a
// *NotInitializedError naming the operation if none can be built.
type Lazy struct {
	manager *Manager
}

// Encrypt resolves the shared Service and calls its Encrypt.
func (l *Lazy) Encrypt(plaintext string) (string, error) {
	svc, err := l.resolve("Encrypt")
	if err != nil {
		return "", err
	}

	return svc.Encrypt(plaintext)
}

// Decrypt resolves the shared Service and calls its Decrypt.
func (l *Lazy) Decrypt(ciphertextHex string) (string, error) {
	svc, err := l.resolve("Decrypt")
	if err != nil {
		return "", err
	}

	return svc.Decrypt(ciphertextHex)
}

// Hash resolves the shared Service and calls its Hash.
func (l *Lazy) Hash(value string) (string, error) {
	svc, err := l.resolve("Hash")
	if err != nil {
		return "", err
	}

	return svc.Hash(value)
}

// HashEqual resolves the shared Service and calls its HashEqual. It reports
// false when no Service can be resolved.
func (l *Lazy) HashEqual(value, digestHex string) bool {
	svc, err := l.resolve("HashEqual")
	if err != nil {
		return false
	}

	return svc.HashEqual(value, digestHex)
}

func (l *Lazy) resolve(op string) (*Service, error) {
	if l == nil {
		return nil, &NotInitializedError{Op: op}
	}

	return l.manager.resolve(op)
}
