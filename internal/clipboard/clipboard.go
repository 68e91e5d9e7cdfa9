// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package clipboard copies secrets to the system clipboard and wipes them
// after a delay.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/atotto/clipboard"

	"github.com/MKhiriev/secure-vault/internal/config"
	"github.com/MKhiriev/secure-vault/internal/logger"
)

// DefaultClearAfter is used when neither the caller nor the configuration
// sets a delay.
const DefaultClearAfter = 15 * time.Second

// ErrUnavailable is returned by Copy and Clear when no clipboard backend
// (xclip, xsel, wl-clipboard, pbcopy) can be found.
var ErrUnavailable = errors.New("system clipboard is not available")

// backend is the system clipboard.
type backend interface {
	WriteAll(text string) error
	ReadAll() (string, error)
	Unsupported() bool
}

type systemBackend struct{}

func (systemBackend) WriteAll(text string) error { return clipboard.WriteAll(text) }
func (systemBackend) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (systemBackend) Unsupported() bool          { return clipboard.Unsupported }

// Manager owns at most one pending auto-clear. Copying again replaces it.
type Manager struct {
	backend    backend
	clearAfter time.Duration

	mu    sync.Mutex
	timer *time.Timer
	done  chan struct{}

	logger *logger.Logger
}

func New(cfg config.Clipboard, logger *logger.Logger) *Manager {
	return newManager(systemBackend{}, cfg.ClearAfter, logger)
}

func newManager(b backend, clearAfter time.Duration, logger *logger.Logger) *Manager {
	if clearAfter <= 0 {
		clearAfter = DefaultClearAfter
	}
	return &Manager{
		backend:    b,
		clearAfter: clearAfter,
		logger:     logger,
	}
}

// Available reports whether a clipboard utility was found on this system.
func (m *Manager) Available() bool {
	return !m.backend.Unsupported()
}

// Copy writes text to the clipboard and arms the auto-clear timer. A zero
// autoClear uses the configured delay; a negative one leaves the text in
// place. Any clear armed by an earlier Copy is cancelled.
func (m *Manager) Copy(text string, autoClear time.Duration) error {
	if !m.Available() {
		return ErrUnavailable
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.cancelLocked()

	if err := m.backend.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}

	if autoClear == 0 {
		autoClear = m.clearAfter
	}
	if autoClear < 0 {
		return nil
	}

	done := make(chan struct{})
	m.done = done
	m.timer = time.AfterFunc(autoClear, func() {
		m.expire(text, done)
	})

	return nil
}

// Clear cancels the pending auto-clear and wipes the clipboard.
func (m *Manager) Clear() error {
	if !m.Available() {
		return ErrUnavailable
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.cancelLocked()

	if err := m.backend.WriteAll(""); err != nil {
		return fmt.Errorf("clear clipboard: %w", err)
	}
	return nil
}

// Wait blocks until the pending auto-clear has run. If ctx ends first the
// clipboard is cleared immediately and ctx.Err() is returned.
func (m *Manager) Wait(ctx context.Context) error {
	m.mu.Lock()
	done := m.done
	m.mu.Unlock()

	if done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		if err := m.Clear(); err != nil {
			return errors.Join(ctx.Err(), err)
		}
		return ctx.Err()
	}
}

// expire wipes the clipboard if it still holds text. Content copied by
// another program in the meantime is left alone.
func (m *Manager) expire(text string, done chan struct{}) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.done != done {
		return
	}

	current, err := m.backend.ReadAll()
	if err != nil || current == text {
		if err := m.backend.WriteAll(""); err != nil {
			m.logger.Err(err).Str("func", "*Manager.expire").Msg("auto-clear of clipboard failed")
		}
	}

	m.done = nil
	m.timer = nil
	close(done)
}

func (m *Manager) cancelLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	if m.done != nil {
		close(m.done)
		m.done = nil
	}
}
