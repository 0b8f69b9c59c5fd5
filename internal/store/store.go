package store

import (
	"context"
	"errors"
	"sort"
	"time"

	"wastage-backend/internal/models"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrNotConfigured  = errors.New("record store is not configured")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Scope: super_admin için All, owner için sadece kendi kayıtları
type Scope struct {
	All     bool
	OwnerID string
}

func ScopeFor(role models.UserRole, userID string) Scope {
	if role == models.RoleSuperAdmin {
		return Scope{All: true}
	}
	return Scope{OwnerID: userID}
}

// Allows: kayıt bu kapsamda görünür mü?
func (s Scope) Allows(e models.WastageEntry) bool {
	return s.All || (s.OwnerID != "" && e.UserID == s.OwnerID)
}

// NewRecord: id hariç tüm alanlar çağıran tarafından verilir (Date = now)
type NewRecord struct {
	Item     string
	Quantity float64
	Unit     models.WastageUnit
	Reason   models.WastageReason
	Date     time.Time
	UserID   string
	Cost     *float64
}

func (r NewRecord) entry(id string) models.WastageEntry {
	return models.WastageEntry{
		ID:       id,
		Item:     r.Item,
		Quantity: r.Quantity,
		Unit:     r.Unit,
		Reason:   r.Reason,
		Date:     r.Date,
		UserID:   r.UserID,
		Cost:     r.Cost,
	}
}

type RecordStore interface {
	ListRecords(ctx context.Context, scope Scope) ([]models.WastageEntry, error)
	ListByReason(ctx context.Context, reason models.WastageReason) ([]models.WastageEntry, error)
	GetRecord(ctx context.Context, id string) (*models.WastageEntry, error)
	CreateRecord(ctx context.Context, rec NewRecord) (string, error)
	DeleteRecord(ctx context.Context, id string) error
}

type ProfileStore interface {
	GetUserProfile(ctx context.Context, id string) (*models.User, error)
	GetUserProfiles(ctx context.Context, ids []string) (map[string]models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	CountUsersByRole(ctx context.Context, role models.UserRole) (int64, error)
	CreateUser(ctx context.Context, user *models.User) error
	SetUserGoal(ctx context.Context, id string, goal float64) error
}

type Store interface {
	RecordStore
	ProfileStore
	Close(ctx context.Context) error
}

// EnsureProfile: ilk girişte profil yoksa owner rolüyle oluşturur
func EnsureProfile(ctx context.Context, s ProfileStore, id, email string) (*models.User, error) {
	u, err := s.GetUserProfile(ctx, id)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	u = &models.User{ID: id, Email: email, Role: models.RoleOwner}
	if err := s.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// SortByDateDesc: store'lar sırasız döner, listeler en yeni kayıt önce gösterilir
func SortByDateDesc(entries []models.WastageEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
}
