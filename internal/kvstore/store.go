// Package kvstore provides the persistent key-value store that holds
// accounts, the active session and task partitions.
//
// Values are JSON text under string keys. There are no transactions:
// the last writer wins.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Well-known keys.
const (
	// UsersKey holds the account collection.
	UsersKey = "taskapp_users"

	// SessionKey holds the active session.
	SessionKey = "taskapp_user"

	// taskKeyPrefix prefixes a user's task partition.
	taskKeyPrefix = "tasks_"
)

// ErrCorrupt is returned by GetJSON when a stored value cannot be decoded.
// Callers treat it as "absent".
var ErrCorrupt = errors.New("corrupt value")

// TasksKey returns the partition key for a user's tasks.
func TasksKey(userID string) string {
	return taskKeyPrefix + userID
}

// Store is a string key-value store.
type Store interface {
	// Get returns the value for key. ok is false if the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases the store's resources.
	Close() error
}

// GetJSON decodes the value under key into v.
// Returns false if the key is absent. A value that does not decode
// returns false and an error wrapping ErrCorrupt.
func GetJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, string(data))
}
