package publish

import (
	"context"
	"sync"
)

// Provisioner is the external domain-routing collaborator. Both operations
// are idempotent under retry: registering an already-registered domain and
// deregistering an unknown one succeed.
type Provisioner interface {
	Register(ctx context.Context, domain string) error
	Deregister(ctx context.Context, domain string) error
}

// NoopProvisioner accepts every registration. Used when no external routing
// collaborator is configured, e.g. local development.
type NoopProvisioner struct{}

func (NoopProvisioner) Register(context.Context, string) error   { return nil }
func (NoopProvisioner) Deregister(context.Context, string) error { return nil }

// MockProvisioner is an in-memory Provisioner for tests, with failure
// injection and call recording.
type MockProvisioner struct {
	mu         sync.Mutex
	registered map[string]bool

	FailRegister   error
	FailDeregister error

	RegisterCalls   []string
	DeregisterCalls []string
}

// NewMockProvisioner creates an empty mock provisioner.
func NewMockProvisioner() *MockProvisioner {
	return &MockProvisioner{registered: make(map[string]bool)}
}

func (m *MockProvisioner) Register(_ context.Context, domain string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegisterCalls = append(m.RegisterCalls, domain)
	if m.FailRegister != nil {
		return m.FailRegister
	}
	m.registered[domain] = true
	return nil
}

func (m *MockProvisioner) Deregister(_ context.Context, domain string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeregisterCalls = append(m.DeregisterCalls, domain)
	if m.FailDeregister != nil {
		return m.FailDeregister
	}
	delete(m.registered, domain)
	return nil
}

// IsRegistered reports whether a domain is currently provisioned.
func (m *MockProvisioner) IsRegistered(domain string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registered[domain]
}
