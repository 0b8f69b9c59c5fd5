package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastage-backend/internal/models"
)

func cost(v float64) *float64 { return &v }

func seed(t *testing.T, s *MemoryStore) (string, string) {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	a, err := s.CreateRecord(ctx, NewRecord{Item: "Tomatoes", Quantity: 2, Unit: models.UnitKilogram, Reason: models.ReasonSpoilage, Date: now, UserID: "u1", Cost: cost(5)})
	require.NoError(t, err)
	b, err := s.CreateRecord(ctx, NewRecord{Item: "Bread", Quantity: 4, Unit: models.UnitPiece, Reason: models.ReasonOverproduction, Date: now.Add(time.Hour), UserID: "u2"})
	require.NoError(t, err)
	return a, b
}

func TestMemoryStore_ScopedListing(t *testing.T) {
	s := NewMemoryStore()
	seed(t, s)
	ctx := context.Background()

	own, err := s.ListRecords(ctx, ScopeFor(models.RoleOwner, "u1"))
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "Tomatoes", own[0].Item)

	all, err := s.ListRecords(ctx, ScopeFor(models.RoleSuperAdmin, "whoever"))
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := s.ListRecords(ctx, Scope{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	a, _ := seed(t, s)
	ctx := context.Background()

	e, err := s.GetRecord(ctx, a)
	require.NoError(t, err)
	*e.Cost = 999

	again, err := s.GetRecord(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, 5.0, *again.Cost)
}

func TestMemoryStore_Delete(t *testing.T) {
	s := NewMemoryStore()
	a, _ := seed(t, s)
	ctx := context.Background()

	require.NoError(t, s.DeleteRecord(ctx, a))
	assert.ErrorIs(t, s.DeleteRecord(ctx, a), ErrNotFound)

	_, err := s.GetRecord(ctx, a)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ListByReason(t *testing.T) {
	s := NewMemoryStore()
	seed(t, s)

	got, err := s.ListByReason(context.Background(), models.ReasonOverproduction)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Bread", got[0].Item)
}

func TestEnsureProfile_DefaultsToOwner(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	u, err := EnsureProfile(ctx, s, "fb-uid", "chef@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleOwner, u.Role)
	assert.Nil(t, u.WeeklyWasteGoal)

	require.NoError(t, s.SetUserGoal(ctx, "fb-uid", 150))

	again, err := EnsureProfile(ctx, s, "fb-uid", "chef@example.com")
	require.NoError(t, err)
	require.NotNil(t, again.WeeklyWasteGoal)
	assert.Equal(t, 150.0, *again.WeeklyWasteGoal)
}

func TestMemoryStore_DuplicateEmail(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, &models.User{Email: "a@example.com", Role: models.RoleOwner}))
	err := s.CreateUser(ctx, &models.User{Email: "A@example.com", Role: models.RoleOwner})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestMemoryStore_SetGoalUnknownUser(t *testing.T) {
	s := NewMemoryStore()
	assert.ErrorIs(t, s.SetUserGoal(context.Background(), "nope", 10), ErrNotFound)
}

func TestSortByDateDesc(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []models.WastageEntry{
		{ID: "old", Date: base},
		{ID: "new", Date: base.Add(48 * time.Hour)},
		{ID: "mid", Date: base.Add(24 * time.Hour)},
	}
	SortByDateDesc(entries)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{entries[0].ID, entries[1].ID, entries[2].ID})
}

func TestUnconfigured(t *testing.T) {
	var s Store = Unconfigured{}
	ctx := context.Background()

	list, err := s.ListRecords(ctx, Scope{All: true})
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = s.CreateRecord(ctx, NewRecord{})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.True(t, IsDegraded(s))
	assert.False(t, IsDegraded(NewMemoryStore()))
}
