// Package common provides shared test doubles
package common

import (
	"context"
	"fmt"
	"sync"

	"github.com/bobmcallan/wealthflow/internal/interfaces"
)

// MockKVStore is an in-memory interfaces.KeyValueStore that records writes.
type MockKVStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	sets    int
	GetErr  error
	SetErr  error
	closed  bool
	written chan struct{}
}

// NewMockKVStore returns an empty store.
func NewMockKVStore() *MockKVStore {
	return &MockKVStore{data: make(map[string][]byte), written: make(chan struct{}, 64)}
}

func (m *MockKVStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, interfaces.ErrNotFound)
	}
	return append([]byte(nil), v...), nil
}

func (m *MockKVStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.data[key] = append([]byte(nil), value...)
	select {
	case m.written <- struct{}{}:
	default:
	}
	return nil
}

func (m *MockKVStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Put seeds a raw value without counting it as a write.
func (m *MockKVStore) Put(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// Raw returns the stored bytes for key.
func (m *MockKVStore) Raw(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

// Sets returns the number of Set calls, including failed ones.
func (m *MockKVStore) Sets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}

// Closed reports whether Close was called.
func (m *MockKVStore) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Written signals after each successful Set.
func (m *MockKVStore) Written() <-chan struct{} { return m.written }

// MockAdviceClient is a scripted interfaces.AdviceClient.
type MockAdviceClient struct {
	mu      sync.Mutex
	Text    string
	Err     error
	Prompts []string
}

func (m *MockAdviceClient) GenerateContent(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prompts = append(m.Prompts, prompt)
	return m.Text, m.Err
}

// LastPrompt returns the most recent prompt, or "".
func (m *MockAdviceClient) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Prompts) == 0 {
		return ""
	}
	return m.Prompts[len(m.Prompts)-1]
}

var (
	_ interfaces.KeyValueStore = (*MockKVStore)(nil)
	_ interfaces.AdviceClient  = (*MockAdviceClient)(nil)
)
