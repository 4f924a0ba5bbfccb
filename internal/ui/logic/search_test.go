package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passgrip/internal/domain"
)

func snapshotOf(names ...string) domain.Snapshot {
	entries := make([]domain.Entry, len(names))
	for i, n := range names {
		entries[i] = domain.NewEntry(n, "/store/"+n+".pass", nil, nil)
	}
	return domain.NewSnapshot(entries)
}

func namesOf(entries []domain.Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

func TestSearchEmptyQueryReturnsNameOrder(t *testing.T) {
	snap := snapshotOf("email/work", "bank/checking", "email/personal")

	assert.Equal(t, []string{"bank/checking", "email/personal", "email/work"}, namesOf(Search(snap, "")))
	assert.Equal(t, []string{"bank/checking", "email/personal", "email/work"}, namesOf(Search(snap, "   ")))
}

func TestSearchEqualMatchesTieByName(t *testing.T) {
	snap := snapshotOf("bank/checking", "email/work", "email/personal")

	assert.Equal(t, []string{"email/personal", "email/work"}, namesOf(Search(snap, "email")))
}

func TestSearchBetterMatchFirst(t *testing.T) {
	snap := snapshotOf("db/production", "web/dashboard", "db")

	got := namesOf(Search(snap, "db"))
	require.Len(t, got, 3)
	assert.Equal(t, "db", got[0])
	assert.Equal(t, "db/production", got[1])
}

func TestSearchCaseInsensitive(t *testing.T) {
	snap := snapshotOf("Email/Work", "bank")

	assert.Equal(t, []string{"Email/Work"}, namesOf(Search(snap, "email")))
	assert.Equal(t, []string{"Email/Work"}, namesOf(Search(snap, "EMAIL")))
}

func TestSearchNoMatches(t *testing.T) {
	snap := snapshotOf("bank/checking", "email/work")

	assert.Empty(t, Search(snap, "zzz"))
	assert.Empty(t, Search(nil, "zzz"))
	assert.Empty(t, Search(nil, ""))
}

func TestSearchIsDeterministic(t *testing.T) {
	snap := snapshotOf("a/ab", "ab/a", "b/a", "ba", "aab", "abab")

	first := namesOf(Search(snap, "ab"))
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, namesOf(Search(snap, "ab")))
	}
}

func TestSearchDoesNotAliasSnapshot(t *testing.T) {
	snap := snapshotOf("a", "b")

	results := Search(snap, "")
	results[0].Name = "changed"

	assert.Equal(t, "a", snap[0].Name)
}
