// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"taskflow/internal/kvstore"
)

// ErrInjected is a generic storage failure for error-path tests.
var ErrInjected = errors.New("injected storage failure")

// FakeStore is an in-memory kvstore.Store with error injection and a
// write log for testing.
type FakeStore struct {
	mu     sync.RWMutex
	data   map[string]string
	writes []string // keys in the order they were set or removed

	// Error injection for testing
	GetErr    map[string]error // key -> error
	SetErr    map[string]error // key -> error
	RemoveErr error
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		data:   make(map[string]string),
		GetErr: make(map[string]error),
		SetErr: make(map[string]error),
	}
}

// Put seeds a raw value without recording a write.
func (f *FakeStore) Put(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
}

// Raw returns the raw value under key.
func (f *FakeStore) Raw(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.data[key]
	return v, ok
}

// Writes returns the keys written so far, in order.
func (f *FakeStore) Writes() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]string, len(f.writes))
	copy(result, f.writes)
	return result
}

// Get implements kvstore.Store.
func (f *FakeStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := f.GetErr[key]; err != nil {
		return "", false, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.data[key]
	return v, ok, nil
}

// Set implements kvstore.Store.
func (f *FakeStore) Set(ctx context.Context, key, value string) error {
	if err := f.SetErr[key]; err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	f.writes = append(f.writes, key)
	return nil
}

// Remove implements kvstore.Store.
func (f *FakeStore) Remove(ctx context.Context, key string) error {
	if f.RemoveErr != nil {
		return f.RemoveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	f.writes = append(f.writes, key)
	return nil
}

// Close implements kvstore.Store.
func (f *FakeStore) Close() error { return nil }

var _ kvstore.Store = (*FakeStore)(nil)

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// SequenceIDs returns an ID generator yielding the given IDs in order,
// then "id-<n>" once they run out.
func SequenceIDs(ids ...string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		if n <= len(ids) {
			return ids[n-1]
		}
		return "id-" + strconv.Itoa(n)
	}
}

// NoWait is a zero-delay session.Waiter-compatible function that records
// the requested durations.
type NoWait struct {
	mu    sync.Mutex
	Waits []time.Duration
}

// Wait records d and returns immediately unless ctx is already done.
func (w *NoWait) Wait(ctx context.Context, d time.Duration) error {
	w.mu.Lock()
	w.Waits = append(w.Waits, d)
	w.mu.Unlock()
	return ctx.Err()
}
