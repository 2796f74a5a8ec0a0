package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbonnaire/apptrack/internal/types"
)

func TestReplaceAll(t *testing.T) {
	s := New()
	s.ReplaceAll(
		[]types.ApplicationRecord{{ID: "a1"}, {ID: "a2"}},
		[]types.EmailRecord{{ID: "e1"}},
	)

	apps, emails := s.Snapshot()
	assert.Len(t, apps, 2)
	assert.Len(t, emails, 1)
	assert.Equal(t, 2, s.Len())

	// A later replace discards everything from before.
	s.ReplaceAll([]types.ApplicationRecord{{ID: "a3"}}, nil)
	apps, emails = s.Snapshot()
	require.Len(t, apps, 1)
	assert.Equal(t, "a3", apps[0].ID)
	assert.Empty(t, emails)
}

func TestPrependApplication(t *testing.T) {
	s := New()
	s.ReplaceApplications([]types.ApplicationRecord{{ID: "a1"}, {ID: "a2"}})

	s.PrependApplication(types.ApplicationRecord{ID: "new"})
	apps, _ := s.Snapshot()
	require.Len(t, apps, 3)
	assert.Equal(t, "new", apps[0].ID)
	assert.Equal(t, "a1", apps[1].ID)
}

func TestRemoveApplication(t *testing.T) {
	s := New()
	s.ReplaceApplications([]types.ApplicationRecord{{ID: "a1"}, {ID: "a2"}, {ID: "a3"}})

	s.RemoveApplication("a2")
	apps, _ := s.Snapshot()
	require.Len(t, apps, 2)
	assert.Equal(t, "a1", apps[0].ID)
	assert.Equal(t, "a3", apps[1].ID)

	// Removing an absent ID is a no-op.
	s.RemoveApplication("nope")
	apps, _ = s.Snapshot()
	assert.Len(t, apps, 2)
}

func TestSnapshotIsolation(t *testing.T) {
	s := New()
	s.ReplaceApplications([]types.ApplicationRecord{{ID: "a1", CompanyName: "Acme"}})

	apps, _ := s.Snapshot()
	apps[0].CompanyName = "mutated"

	fresh, _ := s.Snapshot()
	assert.Equal(t, "Acme", fresh[0].CompanyName)
}
