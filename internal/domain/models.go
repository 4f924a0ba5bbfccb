package domain

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// ErrNoVault is returned when an entry was built without a backing vault
var ErrNoVault = errors.New("entry has no backing store")

// Vault is the part of the password store an entry talks to when its
// secret is read or replaced
type Vault interface {
	ReadSecret(path string) (string, error)
	WriteSecret(path, secret string) error
}

// Entry represents a single password entry
type Entry struct {
	Name    string     // store-relative name without extension, e.g. "email/work"
	Path    string     // absolute file path inside the store
	Updated *time.Time // last modification time, nil when unknown

	vault Vault
}

// NewEntry creates an entry bound to the vault that owns it
func NewEntry(name, path string, updated *time.Time, vault Vault) Entry {
	return Entry{
		Name:    name,
		Path:    path,
		Updated: updated,
		vault:   vault,
	}
}

// Secret fetches and decodes the entry body. It may fail, e.g. when
// decryption fails or the file disappeared since the last snapshot.
func (e Entry) Secret() (string, error) {
	if e.vault == nil {
		return "", ErrNoVault
	}
	return e.vault.ReadSecret(e.Path)
}

// Update replaces the entry body with secret
func (e Entry) Update(secret string) error {
	if e.vault == nil {
		return ErrNoVault
	}
	return e.vault.WriteSecret(e.Path, secret)
}

// UpdatedLabel formats the last-updated date for display
func (e Entry) UpdatedLabel() string {
	if e.Updated == nil {
		return "n/a"
	}
	return e.Updated.Format("2006-01-02")
}

// Snapshot is the ordered-by-name list of all entries last reported by the store
type Snapshot []Entry

// NewSnapshot copies entries into a snapshot sorted by name
func NewSnapshot(entries []Entry) Snapshot {
	s := make(Snapshot, len(entries))
	copy(s, entries)
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Name < s[j].Name
	})
	return s
}

// Clone returns an independent copy so callers can scan it while the
// original is being replaced
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	out := make(Snapshot, len(s))
	copy(out, s)
	return out
}

// Names returns the entry names in snapshot order
func (s Snapshot) Names() []string {
	names := make([]string, len(s))
	for i, e := range s {
		names[i] = e.Name
	}
	return names
}

// EntryName converts a store-relative file path into an entry name
func EntryName(rel, ext string) string {
	rel = strings.TrimSuffix(rel, ext)
	return strings.ReplaceAll(rel, "\\", "/")
}
