// Package session owns accounts and the process-wide authentication state.
//
// A Manager registers accounts, checks credentials, and persists the
// active session through a kvstore.Store. Signup and Login wait a fixed
// delay before answering, standing in for a network round trip; the wait
// is an injectable Waiter so tests can skip it.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"taskflow/internal/kvstore"
	"taskflow/internal/service"
)

// DefaultDelay is the simulated latency of Signup and Login.
const DefaultDelay = time.Second

// Waiter blocks for a duration.
type Waiter interface {
	Wait(ctx context.Context, d time.Duration) error
}

// WaiterFunc adapts a function to Waiter.
type WaiterFunc func(ctx context.Context, d time.Duration) error

// Wait implements Waiter.
func (f WaiterFunc) Wait(ctx context.Context, d time.Duration) error { return f(ctx, d) }

// TimerWaiter sleeps for d or until ctx is done.
var TimerWaiter Waiter = WaiterFunc(func(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
})

// Manager implements service.Accounts on top of a kvstore.Store.
type Manager struct {
	store   kvstore.Store
	delay   time.Duration
	waiter  Waiter
	logger  *log.Logger
	newID   func() string
	current *service.Session
}

// Option configures a Manager.
type Option func(*Manager)

// WithDelay sets the simulated latency.
func WithDelay(d time.Duration) Option {
	return func(m *Manager) { m.delay = d }
}

// WithWaiter replaces the wait mechanism.
func WithWaiter(w Waiter) Option {
	return func(m *Manager) { m.waiter = w }
}

// WithLogger sets the debug logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithIDGenerator replaces the account ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) { m.newID = fn }
}

// New creates a Manager. No session is active until Restore, Signup or
// Login succeeds.
func New(store kvstore.Store, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		delay:  DefaultDelay,
		waiter: TimerWaiter,
		logger: log.New(io.Discard),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var _ service.Accounts = (*Manager)(nil)

// Current returns the active session or nil.
// The returned value is a copy.
func (m *Manager) Current() *service.Session {
	if m.current == nil {
		return nil
	}
	s := *m.current
	return &s
}

// Restore loads the persisted session. The session is trusted as-is,
// without checking it against the account collection.
func (m *Manager) Restore(ctx context.Context) (*service.Session, error) {
	var s *service.Session
	found, err := kvstore.GetJSON(ctx, m.store, kvstore.SessionKey, &s)
	if errors.Is(err, kvstore.ErrCorrupt) {
		m.logger.Debug("ignoring unreadable session", "err", err)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !found || s == nil || s.ID == "" {
		return nil, nil
	}
	m.current = s
	m.logger.Debug("session restored", "email", s.Email)
	return m.Current(), nil
}

// Signup registers an account and signs it in.
// Returns false if an account with email already exists; the account
// collection is then left unchanged.
func (m *Manager) Signup(ctx context.Context, name, email, password string) (*service.Session, bool, error) {
	if err := m.waiter.Wait(ctx, m.delay); err != nil {
		return nil, false, err
	}

	accounts, err := m.accounts(ctx)
	if err != nil {
		return nil, false, err
	}
	for _, a := range accounts {
		if a.Email == email {
			m.logger.Debug("signup rejected: email exists", "email", email)
			return nil, false, nil
		}
	}

	account := service.Account{
		ID:       m.newID(),
		Name:     name,
		Email:    email,
		Password: password,
	}
	accounts = append(accounts, account)
	if err := kvstore.SetJSON(ctx, m.store, kvstore.UsersKey, accounts); err != nil {
		return nil, false, fmt.Errorf("save accounts: %w", err)
	}

	s := service.SessionFor(account)
	if err := m.establish(ctx, s); err != nil {
		return nil, false, err
	}
	m.logger.Debug("account created", "id", account.ID, "email", email)
	return m.Current(), true, nil
}

// Login signs in the account whose email and password both match exactly.
// On mismatch it returns false and leaves any existing session in place.
func (m *Manager) Login(ctx context.Context, email, password string) (*service.Session, bool, error) {
	if err := m.waiter.Wait(ctx, m.delay); err != nil {
		return nil, false, err
	}

	accounts, err := m.accounts(ctx)
	if err != nil {
		return nil, false, err
	}
	for _, a := range accounts {
		if a.Email == email && a.Password == password {
			if err := m.establish(ctx, service.SessionFor(a)); err != nil {
				return nil, false, err
			}
			m.logger.Debug("logged in", "email", email)
			return m.Current(), true, nil
		}
	}
	m.logger.Debug("login rejected", "email", email)
	return nil, false, nil
}

// Logout clears the active session and its persisted copy.
func (m *Manager) Logout(ctx context.Context) error {
	m.current = nil
	if err := m.store.Remove(ctx, kvstore.SessionKey); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func (m *Manager) establish(ctx context.Context, s *service.Session) error {
	if err := kvstore.SetJSON(ctx, m.store, kvstore.SessionKey, s); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	m.current = s
	return nil
}

// accounts loads the account collection. Unreadable data is an empty
// collection.
func (m *Manager) accounts(ctx context.Context) ([]service.Account, error) {
	var accounts []service.Account
	_, err := kvstore.GetJSON(ctx, m.store, kvstore.UsersKey, &accounts)
	if errors.Is(err, kvstore.ErrCorrupt) {
		m.logger.Debug("ignoring unreadable accounts", "err", err)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return accounts, nil
}
