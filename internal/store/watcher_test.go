package store

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"passgrip/internal/domain"
)

func waitForEvent(t *testing.T, events <-chan domain.ChangeEvent, pred func(domain.ChangeEvent) bool) domain.ChangeEvent {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			require.True(t, ok, "event channel closed early")
			if pred(ev) {
				return ev
			}
		case <-deadline:
			t.Fatal("timed out waiting for store event")
		}
	}
}

func TestWatchReportsNewEntries(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	writeEntries(t, dir, map[string]string{"bank/chase": "c"})

	ctx, cancel := context.WithCancel(context.Background())
	s := New(dir, PlainCodec{}, WithDebounce(20*time.Millisecond))
	events, snap, err := s.Watch(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bank/chase"}, snap.Names())

	writeEntries(t, dir, map[string]string{"email/work": "w"})

	ev := waitForEvent(t, events, func(ev domain.ChangeEvent) bool {
		if ev.Type() != domain.EventUpdated {
			return false
		}
		return slices.Contains(ev.Snapshot.Names(), "email/work")
	})
	assert.Equal(t, []string{"bank/chase", "email/work"}, ev.Snapshot.Names())

	cancel()
	for range events {
	}
}

func TestWatchReportsRemovals(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	writeEntries(t, dir, map[string]string{"a": "1", "b": "2"})

	ctx, cancel := context.WithCancel(context.Background())
	s := New(dir, PlainCodec{}, WithDebounce(20*time.Millisecond))
	events, _, err := s.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(dir, "a.pass")))

	ev := waitForEvent(t, events, func(ev domain.ChangeEvent) bool {
		return ev.Type() == domain.EventUpdated && len(ev.Snapshot) == 1
	})
	assert.Equal(t, []string{"b"}, ev.Snapshot.Names())

	cancel()
	for range events {
	}
}

func TestWatchIgnoresOwnTempFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	s := New(dir, PlainCodec{}, WithDebounce(20*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	events, _, err := s.Watch(ctx)
	require.NoError(t, err)

	assert.False(t, s.relevant(fsEvent(filepath.Join(dir, ".passgrip-123"))))
	assert.False(t, s.relevant(fsEvent(filepath.Join(dir, "notes.txt"))))
	assert.True(t, s.relevant(fsEvent(filepath.Join(dir, "x.pass"))))

	cancel()
	for range events {
	}
}

func TestWatchFailsOnMissingStore(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := New(filepath.Join(t.TempDir(), "missing"), PlainCodec{})
	_, _, err := s.Watch(context.Background())
	assert.ErrorIs(t, err, ErrNotDirectory)
}

func TestWatchReportsChangesDuringInitialLoad(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	writeEntries(t, dir, map[string]string{"bank/chase": "c"})

	s := New(dir, PlainCodec{}, WithDebounce(20*time.Millisecond))
	s.watching = func() {
		writeEntries(t, dir, map[string]string{"bank/chase": "changed", "email/work": "w"})
	}
	ctx, cancel := context.WithCancel(context.Background())
	events, snap, err := s.Watch(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bank/chase", "email/work"}, snap.Names())

	// the writes happened after the watches were in place, so they are
	// reported even though the snapshot already holds them
	ev := waitForEvent(t, events, func(ev domain.ChangeEvent) bool {
		return ev.Type() == domain.EventUpdated
	})
	assert.Equal(t, []string{"bank/chase", "email/work"}, ev.Snapshot.Names())

	cancel()
	for range events {
	}
}

func TestWatchFailsOnStoreFile(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "store")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, _, err := New(path, PlainCodec{}).Watch(context.Background())
	assert.ErrorIs(t, err, ErrNotDirectory)
}

func fsEvent(name string) fsnotify.Event {
	return fsnotify.Event{Name: name, Op: fsnotify.Write}
}
