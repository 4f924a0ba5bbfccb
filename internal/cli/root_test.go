package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passgrip/internal/clipboard"
	"passgrip/internal/config"
	"passgrip/internal/store"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("HOME", dir)
	t.Setenv("PASSWORD_STORE_DIR", "")
	for _, name := range []string{"STORE_DIR", "CODEC", "POLL_INTERVAL", "WATCH_DEBOUNCE", "CLIPBOARD", "CLIPBOARD_CLEAR_AFTER", "LOG_FILE", "LOG_LEVEL"} {
		t.Setenv("PASSGRIP_"+name, "")
	}
	return dir
}

func stubProgram(t *testing.T, fn func(ctx context.Context, model tea.Model, out io.Writer) error) {
	t.Helper()
	orig := runProgram
	runProgram = fn
	t.Cleanup(func() { runProgram = orig })
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestFailingWatchReturnsErrorBeforeUI(t *testing.T) {
	dir := isolate(t)
	stubProgram(t, func(context.Context, tea.Model, io.Writer) error {
		t.Fatal("UI must not start when the store cannot be watched")
		return nil
	})

	_, err := execute(t, filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrNotDirectory))
	assert.Contains(t, err.Error(), "missing")
}

func TestRunStartsUIWithStoreFromArgument(t *testing.T) {
	dir := isolate(t)
	storeDir := filepath.Join(dir, "store")
	require.NoError(t, os.MkdirAll(filepath.Join(storeDir, "email"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(storeDir, "email", "work.pass"), []byte("hunter2\n"), 0o600))
	logFile := filepath.Join(dir, "test.log")

	var view string
	stubProgram(t, func(ctx context.Context, model tea.Model, out io.Writer) error {
		model, _ = model.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
		view = model.View()
		return nil
	})

	_, err := execute(t, "--log-file", logFile, "--clipboard", "osc52", storeDir)
	require.NoError(t, err)
	assert.Contains(t, view, "passgrip")
	assert.Contains(t, view, "email/work")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "starting UI")
	assert.NotContains(t, string(data), "hunter2")
}

func TestOSC52SharesTheUIOutput(t *testing.T) {
	dir := isolate(t)
	t.Setenv("TMUX", "")
	storeDir := filepath.Join(dir, "store")
	require.NoError(t, os.MkdirAll(filepath.Join(storeDir, "email"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(storeDir, "email", "work.pass"), []byte("hunter2\n"), 0o600))

	tty, err := os.Create(filepath.Join(dir, "tty"))
	require.NoError(t, err)
	defer tty.Close()
	orig := output
	output = tty
	t.Cleanup(func() { output = orig })

	stubProgram(t, func(ctx context.Context, model tea.Model, out io.Writer) error {
		term, ok := out.(*clipboard.Terminal)
		require.True(t, ok, "the UI must render through the shared terminal")
		assert.Equal(t, tty.Fd(), term.Fd())

		model, _ = model.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
		model.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
		return nil
	})

	_, err = execute(t, "--log-file", filepath.Join(dir, "test.log"), "--clipboard", "osc52", storeDir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "tty"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\x1b]52;c;"+base64.StdEncoding.EncodeToString([]byte("hunter2\n")))
}

func TestRunReportsProgramFailure(t *testing.T) {
	dir := isolate(t)
	storeDir := filepath.Join(dir, "store")
	require.NoError(t, os.MkdirAll(storeDir, 0o700))
	stubProgram(t, func(context.Context, tea.Model, io.Writer) error {
		return errors.New("no tty")
	})

	_, err := execute(t, "--log-file", filepath.Join(dir, "test.log"), storeDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no tty")
}

func TestRunRejectsInvalidFlags(t *testing.T) {
	dir := isolate(t)
	stubProgram(t, func(context.Context, tea.Model, io.Writer) error {
		t.Fatal("UI must not start with an invalid config")
		return nil
	})

	_, err := execute(t, "--codec", "rot13", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rot13")

	_, err = execute(t, "one", "two")
	require.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "passgrip.toml")

	out, err := execute(t, "config", "init", "--config", path, "--clipboard", "osc52")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, config.ClipboardOSC52, cfg.ClipboardMode)
	assert.Equal(t, config.CodecPlain, cfg.Codec)

	// an existing file is kept unless forced
	_, err = execute(t, "config", "init", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "config", "init", "--config", path, "--force")
	require.NoError(t, err)
	cfg, err = config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, config.ClipboardSystem, cfg.ClipboardMode)
}

func TestConfigInitDefaultPath(t *testing.T) {
	isolate(t)

	out, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), config.DefaultPath()))
	assert.FileExists(t, config.DefaultPath())
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "passgrip "+version+"\n", out)
}
