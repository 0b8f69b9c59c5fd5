package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"wastage-backend/internal/models"
)

// MemoryStore: testler ve yerel demo için
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]models.WastageEntry
	users   map[string]models.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]models.WastageEntry),
		users:   make(map[string]models.User),
	}
}

func (m *MemoryStore) ListRecords(_ context.Context, scope Scope) ([]models.WastageEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.WastageEntry, 0, len(m.records))
	for _, e := range m.records {
		if scope.Allows(e) {
			out = append(out, copyEntry(e))
		}
	}
	return out, nil
}

func (m *MemoryStore) ListByReason(_ context.Context, reason models.WastageReason) ([]models.WastageEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.WastageEntry, 0)
	for _, e := range m.records {
		if e.Reason == reason {
			out = append(out, copyEntry(e))
		}
	}
	return out, nil
}

func (m *MemoryStore) GetRecord(_ context.Context, id string) (*models.WastageEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := copyEntry(e)
	return &c, nil
}

func (m *MemoryStore) CreateRecord(_ context.Context, rec NewRecord) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	e := copyEntry(rec.entry(id))
	e.CreatedAt = time.Now()
	m.records[id] = e
	return id, nil
}

func (m *MemoryStore) DeleteRecord(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return ErrNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *MemoryStore) GetUserProfile(_ context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := copyUser(u)
	return &c, nil
}

func (m *MemoryStore) GetUserProfiles(_ context.Context, ids []string) (map[string]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]models.User, len(ids))
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out[id] = copyUser(u)
		}
	}
	return out, nil
}

func (m *MemoryStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if email != "" && strings.EqualFold(u.Email, email) {
			c := copyUser(u)
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) CountUsersByRole(_ context.Context, role models.UserRole) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var n int64
	for _, u := range m.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user.Email != "" {
		for _, u := range m.users {
			if strings.EqualFold(u.Email, user.Email) {
				return ErrDuplicateEmail
			}
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	m.users[user.ID] = copyUser(*user)
	return nil
}

func (m *MemoryStore) SetUserGoal(_ context.Context, id string, goal float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	g := goal
	u.WeeklyWasteGoal = &g
	u.UpdatedAt = time.Now()
	m.users[id] = u
	return nil
}

func (m *MemoryStore) Close(context.Context) error { return nil }

// cost/goal pointer'ları paylaşılmasın diye kopyalanır
func copyEntry(e models.WastageEntry) models.WastageEntry {
	if e.Cost != nil {
		c := *e.Cost
		e.Cost = &c
	}
	return e
}

func copyUser(u models.User) models.User {
	if u.WeeklyWasteGoal != nil {
		g := *u.WeeklyWasteGoal
		u.WeeklyWasteGoal = &g
	}
	return u
}
