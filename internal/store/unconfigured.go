package store

import (
	"context"

	"wastage-backend/internal/models"
)

// Unconfigured: depo bağlantısı yokken kullanılır. Okumalar boş döner,
// yazmalar ErrNotConfigured verir (salt-okunur, boş veri modu).
type Unconfigured struct{}

func (Unconfigured) ListRecords(context.Context, Scope) ([]models.WastageEntry, error) {
	return []models.WastageEntry{}, nil
}

func (Unconfigured) ListByReason(context.Context, models.WastageReason) ([]models.WastageEntry, error) {
	return []models.WastageEntry{}, nil
}

func (Unconfigured) GetRecord(context.Context, string) (*models.WastageEntry, error) {
	return nil, ErrNotFound
}

func (Unconfigured) CreateRecord(context.Context, NewRecord) (string, error) {
	return "", ErrNotConfigured
}

func (Unconfigured) DeleteRecord(context.Context, string) error { return ErrNotConfigured }

func (Unconfigured) GetUserProfile(context.Context, string) (*models.User, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) GetUserProfiles(context.Context, []string) (map[string]models.User, error) {
	return map[string]models.User{}, nil
}

func (Unconfigured) FindUserByEmail(context.Context, string) (*models.User, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) CountUsersByRole(context.Context, models.UserRole) (int64, error) {
	return 0, ErrNotConfigured
}

func (Unconfigured) CreateUser(context.Context, *models.User) error { return ErrNotConfigured }

func (Unconfigured) SetUserGoal(context.Context, string, float64) error { return ErrNotConfigured }

func (Unconfigured) Close(context.Context) error { return nil }

// IsDegraded: handler'lar bu durumda X-Degraded-Mode header'ı ekler
func IsDegraded(s Store) bool {
	_, ok := s.(Unconfigured)
	return ok
}
