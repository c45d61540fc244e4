// Package crypto provides AES-256-CBC encryption and SHA-256 hashing bound to a
// fixed key/IV pair, plus a Manager that owns one shared instance.
//
// A Service is built from hex key material:
//
//	svc, err := crypto.NewService(secretKeyHex, ivHex)
//
// A Manager defers construction until the first operation, reading keys from a
// KeyProvider such as config.EnvProvider:
//
//	mgr := crypto.NewManager(config.EnvProvider{}, crypto.WithManagerLogger(log))
//	ciphertext, err := mgr.Lazy().Encrypt("secret")
//
// Security note: the IV is static for a given Service, so identical plaintexts
// encrypt to identical ciphertexts and reveal equality. The behavior is kept for
// compatibility with data already encrypted this way and must not be used for
// new formats.
package crypto
