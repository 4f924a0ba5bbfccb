//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// CreateTestWorkspace creates an isolated directory holding an empty store
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	workspace, err := os.MkdirTemp("", "passgrip-e2e-*")
	if err != nil {
		return "", fmt.Errorf("failed to create workspace: %w", err)
	}
	tf.workspace = workspace
	if err := os.MkdirAll(filepath.Join(workspace, "store"), 0o700); err != nil {
		return "", fmt.Errorf("failed to create store: %w", err)
	}
	return workspace, nil
}

// AddEntry writes a plain entry file for name, e.g. "email/work"
func (tf *TUITestFramework) AddEntry(name, secret string) (string, error) {
	path := filepath.Join(tf.StoreDir(), filepath.FromSlash(name)+".pass")
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("failed to create entry directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(secret), 0o600); err != nil {
		return "", fmt.Errorf("failed to write entry: %w", err)
	}
	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, stamp, stamp); err != nil {
		return "", fmt.Errorf("failed to set entry time: %w", err)
	}
	return path, nil
}

// CreateStandardStore fills the store with the entries most tests use
func (tf *TUITestFramework) CreateStandardStore() error {
	entries := map[string]string{
		"bank/checking":  "b4nk\n",
		"email/personal": "p3rsonal\n",
		"email/work":     "hunter2\n",
		"social/forum":   "f0rum\n",
	}
	for name, secret := range entries {
		if _, err := tf.AddEntry(name, secret); err != nil {
			return err
		}
	}
	return nil
}
