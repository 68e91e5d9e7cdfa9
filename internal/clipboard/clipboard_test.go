package clipboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/secure-vault/internal/logger"
)

type fakeBackend struct {
	mu          sync.Mutex
	content     string
	writes      []string
	writeErr    error
	unsupported bool
}

func (f *fakeBackend) WriteAll(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.content = text
	f.writes = append(f.writes, text)
	return nil
}

func (f *fakeBackend) ReadAll() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.content, nil
}

func (f *fakeBackend) Unsupported() bool { return f.unsupported }

func (f *fakeBackend) get() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.content
}

// external simulates another program writing to the clipboard.
func (f *fakeBackend) external(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.content = text
}

func TestCopy_AutoClears(t *testing.T) {
	b := &fakeBackend{}
	m := newManager(b, time.Hour, logger.Nop())

	require.NoError(t, m.Copy("s3cret", 20*time.Millisecond))
	assert.Equal(t, "s3cret", b.get())

	require.NoError(t, m.Wait(context.Background()))
	assert.Empty(t, b.get())
}

func TestCopy_NewCopyCancelsPendingClear(t *testing.T) {
	b := &fakeBackend{}
	m := newManager(b, time.Hour, logger.Nop())

	require.NoError(t, m.Copy("first", 20*time.Millisecond))
	require.NoError(t, m.Copy("second", -1))

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, "second", b.get())
}

func TestCopy_LeavesForeignContent(t *testing.T) {
	b := &fakeBackend{}
	m := newManager(b, time.Hour, logger.Nop())

	require.NoError(t, m.Copy("s3cret", 20*time.Millisecond))
	b.external("something the user copied")

	require.NoError(t, m.Wait(context.Background()))
	assert.Equal(t, "something the user copied", b.get())
}

func TestCopy_ZeroUsesConfiguredDelay(t *testing.T) {
	b := &fakeBackend{}
	m := newManager(b, 20*time.Millisecond, logger.Nop())

	require.NoError(t, m.Copy("s3cret", 0))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, m.Wait(ctx))
	assert.Empty(t, b.get())
}

func TestNewManager_DefaultDelay(t *testing.T) {
	m := newManager(&fakeBackend{}, 0, logger.Nop())

	assert.Equal(t, DefaultClearAfter, m.clearAfter)
}

func TestClear(t *testing.T) {
	b := &fakeBackend{}
	m := newManager(b, time.Hour, logger.Nop())

	require.NoError(t, m.Copy("s3cret", 0))
	require.NoError(t, m.Clear())

	assert.Empty(t, b.get())
	assert.NoError(t, m.Wait(context.Background()), "nothing pending after Clear")
}

func TestWait_ContextCancelledClearsNow(t *testing.T) {
	b := &fakeBackend{}
	m := newManager(b, time.Hour, logger.Nop())

	require.NoError(t, m.Copy("s3cret", 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, b.get())
}

func TestUnavailable(t *testing.T) {
	m := newManager(&fakeBackend{unsupported: true}, 0, logger.Nop())

	assert.False(t, m.Available())
	assert.ErrorIs(t, m.Copy("x", 0), ErrUnavailable)
	assert.ErrorIs(t, m.Clear(), ErrUnavailable)
}

func TestCopy_WriteError(t *testing.T) {
	writeErr := errors.New("xclip: exit status 1")
	m := newManager(&fakeBackend{writeErr: writeErr}, 0, logger.Nop())

	err := m.Copy("x", 0)

	assert.ErrorIs(t, err, writeErr)
	assert.NoError(t, m.Wait(context.Background()), "no clear is armed after a failed write")
}
