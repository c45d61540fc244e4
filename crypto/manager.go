package crypto

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Sameerbk201/sameer-shared/logger"
)

// KeyProvider supplies hex key material for lazy initialization.
// Empty strings with a nil error mean "not configured yet".
type KeyProvider interface {
	EncryptionKeys() (secretKeyHex, ivHex string, err error)
}

// KeyProviderFunc adapts a function to KeyProvider.
type KeyProviderFunc func() (secretKeyHex, ivHex string, err error)

// EncryptionKeys calls f.
func (f KeyProviderFunc) EncryptionKeys() (string, string, error) {
	return f()
}

// Keys holds explicit key material for Manager.Initialize. Empty fields fall
// back to the KeyProvider.
type Keys struct {
	SecretKey string
	IV        string
}

// Manager owns at most one shared Service. Missing key material never fails
// construction or Initialize; the failure is deferred to the first operation
// that needs a Service.
type Manager struct {
	mu         sync.RWMutex
	current    *Service
	instanceID uuid.UUID

	provider    KeyProvider
	logger      logger.Logger
	serviceOpts []Option
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithManagerLogger sets the logger for lifecycle events. It is also handed to
// every Service the manager builds unless WithServiceOptions overrides it.
func WithManagerLogger(l logger.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithServiceOptions appends options applied to every Service the manager builds.
func WithServiceOptions(opts ...Option) ManagerOption {
	return func(m *Manager) {
		m.serviceOpts = append(m.serviceOpts, opts...)
	}
}

// NewManager returns an uninitialized Manager. provider may be nil, in which
// case only explicit keys passed to Initialize can make it ready.
func NewManager(provider KeyProvider, opts ...ManagerOption) *Manager {
	m := &Manager{
		provider: provider,
		logger:   logger.NewNop(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.logger = m.logger.With(logger.String("component", "encryption"))

	return m
}

// Initialize builds a Service from override, falling back to the provider for
// any empty field, and replaces the current one. When key material is still
// missing it logs a warning, leaves the manager uninitialized and returns nil.
// Malformed key material is returned as ErrConfiguration.
func (m *Manager) Initialize(override Keys) error {
	secretKey, iv := override.SecretKey, override.IV

	if secretKey == "" || iv == "" {
		pk, piv, err := m.providerKeys()
		if err != nil {
			m.logger.Warn("encryption key provider failed; service left uninitialized", logger.Err(err))
			m.Reset()

			return nil
		}

		if secretKey == "" {
			secretKey = pk
		}

		if iv == "" {
			iv = piv
		}
	}

	if secretKey == "" || iv == "" {
		m.logger.Warn("encryption keys not configured; service left uninitialized",
			logger.Bool("secret_key_set", secretKey != ""),
			logger.Bool("iv_set", iv != ""),
		)
		m.Reset()

		return nil
	}

	svc, err := NewService(secretKey, iv, m.buildOptions()...)
	if err != nil {
		m.logger.Error("encryption service initialization failed", logger.Err(err))
		m.Reset()

		return err
	}

	m.mu.Lock()
	m.current = svc
	m.instanceID = uuid.New()
	id := m.instanceID
	m.mu.Unlock()

	m.logger.Info("encryption service initialized", logger.String("instance_id", id.String()))

	return nil
}

// Instance returns the current Service, lazily building one from the provider
// when none is held.
func (m *Manager) Instance() (*Service, error) {
	return m.resolve("")
}

// IsReady reports whether a Service is currently held.
func (m *Manager) IsReady() bool {
	if m == nil {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.current != nil
}

// InstanceID identifies the currently held Service. ok is false when none is held.
func (m *Manager) InstanceID() (id uuid.UUID, ok bool) {
	if m == nil {
		return uuid.Nil, false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.instanceID, m.current != nil
}

// Reset drops the current Service.
func (m *Manager) Reset() {
	if m == nil {
		return
	}

	m.mu.Lock()
	m.current = nil
	m.instanceID = uuid.Nil
	m.mu.Unlock()
}

func (m *Manager) resolve(op string) (*Service, error) {
	if m == nil {
		return nil, &NotInitializedError{Op: op}
	}

	m.mu.RLock()
	svc := m.current
	m.mu.RUnlock()

	if svc != nil {
		return svc, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		return m.current, nil
	}

	secretKey, iv, err := m.providerKeys()
	if err != nil {
		return nil, &NotInitializedError{Op: op, Err: err}
	}

	if secretKey == "" || iv == "" {
		return nil, &NotInitializedError{Op: op}
	}

	svc, err = NewService(secretKey, iv, m.buildOptions()...)
	if err != nil {
		m.logger.Error("lazy encryption service initialization failed", logger.Err(err))
		return nil, &NotInitializedError{Op: op, Err: err}
	}

	m.current = svc
	m.instanceID = uuid.New()

	m.logger.Info("encryption service initialized lazily", logger.String("instance_id", m.instanceID.String()))

	return svc, nil
}

func (m *Manager) providerKeys() (string, string, error) {
	if m.provider == nil {
		return "", "", nil
	}

	return m.provider.EncryptionKeys()
}

func (m *Manager) buildOptions() []Option {
	opts := make([]Option, 0, len(m.serviceOpts)+1)
	opts = append(opts, WithLogger(m.logger))

	return append(opts, m.serviceOpts...)
}

// Lazy returns a handle that resolves the shared Service at every call.
func (m *Manager) Lazy() *Lazy {
	return &Lazy{manager: m}
}
