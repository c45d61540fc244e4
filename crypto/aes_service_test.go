package crypto_test

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Sameerbk201/sameer-shared/crypto"
	"github.com/Sameerbk201/sameer-shared/logger"
)

const (
	testSecretKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	testIV        = "abcdef9876543210abcdef9876543210"
)

var lowerHex = regexp.MustCompile(`^[0-9a-f]+$`)

// generateTestKeys creates a random 256-bit key and 128-bit IV in hex.
func generateTestKeys(t *testing.T) (string, string) {
	t.Helper()

	key := make([]byte, crypto.KeySize)
	iv := make([]byte, crypto.IVSize)

	_, err := rand.Read(key)
	require.NoError(t, err)
	_, err = rand.Read(iv)
	require.NoError(t, err)

	return hex.EncodeToString(key), hex.EncodeToString(iv)
}

func newTestService(t *testing.T) *crypto.Service {
	t.Helper()

	svc, err := crypto.NewService(testSecretKey, testIV)
	require.NoError(t, err)

	return svc
}

// ==============================================================================
// 1. Construction
// ==============================================================================

func TestNewService_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
		iv   string
	}{
		{name: "empty key", key: "", iv: testIV},
		{name: "empty iv", key: testSecretKey, iv: ""},
		{name: "4 char key and iv", key: "abcd", iv: "abcd"},
		{name: "128-bit key", key: strings.Repeat("ab", 16), iv: testIV},
		{name: "non hex key", key: strings.Repeat("zz", 32), iv: testIV},
		{name: "odd length key", key: testSecretKey[:63], iv: testIV},
		{name: "short iv", key: testSecretKey, iv: strings.Repeat("ab", 8)},
		{name: "long iv", key: testSecretKey, iv: strings.Repeat("ab", 32)},
		{name: "non hex iv", key: testSecretKey, iv: strings.Repeat("g", 32)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, err := crypto.NewService(tt.key, tt.iv)
			require.Error(t, err)
			assert.ErrorIs(t, err, crypto.ErrConfiguration)
			assert.Nil(t, svc)
		})
	}
}

func TestNewService_AcceptsValidKeys(t *testing.T) {
	t.Parallel()

	svc, err := crypto.NewService(testSecretKey, testIV)
	require.NoError(t, err)
	assert.NotNil(t, svc)

	upper, err := crypto.NewService(strings.ToUpper(testSecretKey), strings.ToUpper(testIV))
	require.NoError(t, err)

	a, err := svc.Encrypt("same key")
	require.NoError(t, err)
	b, err := upper.Encrypt("same key")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

// ==============================================================================
// 2. Encrypt / Decrypt
// ==============================================================================

func TestService_KnownAnswer(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	ciphertext, err := svc.Encrypt("SensitiveMessage123!")
	require.NoError(t, err)

	assert.Equal(t, "975be342770fffd21c705d7f82bfda163c5442976dcaf25439f96d2421d5b990", ciphertext)
	assert.NotEqual(t, "SensitiveMessage123!", ciphertext)
	assert.Regexp(t, lowerHex, ciphertext)

	plaintext, err := svc.Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "SensitiveMessage123!", plaintext)
}

func TestService_EmptyPlaintextIsOneFullPaddingBlock(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	ciphertext, err := svc.Encrypt("")
	require.NoError(t, err)
	assert.Equal(t, "bd5d8691ec57a234e1f34c37f71a5064", ciphertext)

	plaintext, err := svc.Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Empty(t, plaintext)
}

func TestService_RoundTrip(t *testing.T) {
	t.Parallel()

	key, iv := generateTestKeys(t)
	svc, err := crypto.NewService(key, iv)
	require.NoError(t, err)

	inputs := []string{
		"",
		"a",
		"exactly16bytes!!",
		"ssh-rsa AAAAB3NzaC1yc2E... deploy@example.dev",
		"special chars: !@#$%^&*()\n\t",
		"unicode: 日本語テスト 🎉 ñandú",
		strings.Repeat("long payload ", 200),
	}

	for _, input := range inputs {
		input := input
		t.Run(fmt.Sprintf("len_%d", len(input)), func(t *testing.T) {
			t.Parallel()

			ciphertext, err := svc.Encrypt(input)
			require.NoError(t, err)
			assert.Regexp(t, lowerHex, ciphertext)
			assert.Zero(t, len(ciphertext)%(2*crypto.IVSize))

			plaintext, err := svc.Decrypt(ciphertext)
			require.NoError(t, err)
			assert.Equal(t, input, plaintext)
		})
	}
}

func TestService_FixedIVIsDeterministic(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	first, err := svc.Encrypt("identical-plaintext")
	require.NoError(t, err)

	second, err := svc.Encrypt("identical-plaintext")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestService_InstancesAreIndependent(t *testing.T) {
	t.Parallel()

	svcA := newTestService(t)

	key, iv := generateTestKeys(t)
	svcB, err := crypto.NewService(key, iv)
	require.NoError(t, err)

	ciphertext, err := svcA.Encrypt("tenant-a")
	require.NoError(t, err)

	other, err := svcB.Encrypt("tenant-a")
	require.NoError(t, err)
	assert.NotEqual(t, ciphertext, other)

	plaintext, err := svcB.Decrypt(ciphertext)
	if err == nil {
		assert.NotEqual(t, "tenant-a", plaintext)
	} else {
		assert.ErrorIs(t, err, crypto.ErrDecryption)
	}
}

// ==============================================================================
// 3. Corrupted ciphertext
// ==============================================================================

func TestService_DecryptRejectsCorruptedInput(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	tests := []struct {
		name  string
		input string
	}{
		{name: "not block aligned", input: "deadbeef"},
		{name: "empty", input: ""},
		{name: "not hex", input: "not-a-valid-hex-string-at-all!!!"},
		{name: "odd length hex", input: "bd5d8691ec57a234e1f34c37f71a506"},
		{name: "invalid padding", input: "72fd821012e0b642143c109ec25a02d7"},
		{name: "invalid utf-8", input: "8aa44fffd62a0506542fc4cf8e01e704"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			plaintext, err := svc.Decrypt(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, crypto.ErrDecryption)
			assert.NotErrorIs(t, err, crypto.ErrEncryption)
			assert.Equal(t, crypto.ErrDecryption.Error(), err.Error())
			assert.Empty(t, plaintext)
		})
	}
}

func TestService_DecryptLogsReasonAtDebug(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.DebugLevel)

	svc, err := crypto.NewService(testSecretKey, testIV, crypto.WithLogger(logger.NewWithCore(core)))
	require.NoError(t, err)

	_, err = svc.Decrypt("deadbeef")
	require.ErrorIs(t, err, crypto.ErrDecryption)

	entries := observed.FilterMessage("ciphertext rejected").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "not block aligned", entries[0].ContextMap()["reason"])
}

// ==============================================================================
// 4. Hashing
// ==============================================================================

func TestService_Hash(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{in: "hello", want: "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"},
		{in: "A", want: "559aead08264d5795d3909718cdd05abd49572e84fe55590eef31a88a08fdffd"},
		{in: "B", want: "df7e70e5021544f4834bbee64a9e3789febc4be81470df629cad6ddb03320a5c"},
	}

	for _, tt := range tests {
		got, err := svc.Hash(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
		assert.Len(t, got, 64)
		assert.Regexp(t, lowerHex, got)
	}
}

func TestService_HashIsDeterministicAcrossInstances(t *testing.T) {
	t.Parallel()

	svcA := newTestService(t)

	key, iv := generateTestKeys(t)
	svcB, err := crypto.NewService(key, iv)
	require.NoError(t, err)

	for _, in := range []string{"", "value", "日本語"} {
		first, err := svcA.Hash(in)
		require.NoError(t, err)
		second, err := svcA.Hash(in)
		require.NoError(t, err)
		other, err := svcB.Hash(in)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, first, other)
	}

	hashA, err := svcA.Hash("A")
	require.NoError(t, err)
	hashB, err := svcA.Hash("B")
	require.NoError(t, err)
	assert.NotEqual(t, hashA, hashB)
}

func TestService_HashEqual(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	digest, err := svc.Hash("hello")
	require.NoError(t, err)

	assert.True(t, svc.HashEqual("hello", digest))
	assert.True(t, svc.HashEqual("hello", "sha256="+digest))
	assert.False(t, svc.HashEqual("hello!", digest))
	assert.False(t, svc.HashEqual("hello", "not-hex"))
}

// ==============================================================================
// 5. Nil safety and redaction
// ==============================================================================

func TestService_NilReceiver(t *testing.T) {
	t.Parallel()

	var svc *crypto.Service

	_, err := svc.Encrypt("data")
	assert.ErrorIs(t, err, crypto.ErrNilService)

	_, err = svc.Decrypt("data")
	assert.ErrorIs(t, err, crypto.ErrNilService)

	_, err = svc.Hash("data")
	assert.ErrorIs(t, err, crypto.ErrNilService)

	assert.False(t, svc.HashEqual("data", "00"))
	assert.Equal(t, "<nil>", svc.String())
}

func TestService_ZeroValueReportsEncryptionError(t *testing.T) {
	t.Parallel()

	svc := &crypto.Service{}

	_, err := svc.Encrypt("data")
	assert.ErrorIs(t, err, crypto.ErrEncryption)

	_, err = svc.Decrypt("bd5d8691ec57a234e1f34c37f71a5064")
	assert.ErrorIs(t, err, crypto.ErrDecryption)
}

func TestService_RedactsKeyMaterial(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	for _, out := range []string{
		fmt.Sprintf("%v", svc),
		fmt.Sprintf("%+v", svc),
		fmt.Sprintf("%#v", svc),
		svc.String(),
	} {
		assert.Contains(t, out, "REDACTED")
		assert.NotContains(t, out, testSecretKey)
		assert.NotContains(t, out, testIV)
	}
}
