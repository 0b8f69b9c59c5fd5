package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wastage-backend/internal/models"
)

// GormStore: Postgres üzerinde wastage_entries + users tabloları
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) ListRecords(ctx context.Context, scope Scope) ([]models.WastageEntry, error) {
	q := s.db.WithContext(ctx).Model(&models.WastageEntry{})
	if !scope.All {
		q = q.Where("user_id = ?", scope.OwnerID)
	}

	var entries []models.WastageEntry
	if err := q.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("zayiat kayıtları listelenemedi: %w", err)
	}
	return entries, nil
}

func (s *GormStore) ListByReason(ctx context.Context, reason models.WastageReason) ([]models.WastageEntry, error) {
	var entries []models.WastageEntry
	if err := s.db.WithContext(ctx).Where("reason = ?", reason).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("zayiat kayıtları listelenemedi: %w", err)
	}
	return entries, nil
}

func (s *GormStore) GetRecord(ctx context.Context, id string) (*models.WastageEntry, error) {
	var entry models.WastageEntry
	if err := s.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("zayiat kaydı okunamadı: %w", err)
	}
	return &entry, nil
}

func (s *GormStore) CreateRecord(ctx context.Context, rec NewRecord) (string, error) {
	entry := rec.entry(uuid.NewString())
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return "", fmt.Errorf("zayiat kaydı oluşturulamadı: %w", err)
	}
	return entry.ID, nil
}

func (s *GormStore) DeleteRecord(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.WastageEntry{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("zayiat kaydı silinemedi: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) GetUserProfile(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("kullanıcı okunamadı: %w", err)
	}
	return &user, nil
}

func (s *GormStore) GetUserProfiles(ctx context.Context, ids []string) (map[string]models.User, error) {
	out := make(map[string]models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var users []models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("kullanıcılar okunamadı: %w", err)
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

func (s *GormStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("kullanıcı okunamadı: %w", err)
	}
	return &user, nil
}

func (s *GormStore) CountUsersByRole(ctx context.Context, role models.UserRole) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", role).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("kullanıcı sayılamadı: %w", err)
	}
	return count, nil
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.Email != "" {
		if _, err := s.FindUserByEmail(ctx, user.Email); err == nil {
			return ErrDuplicateEmail
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("kullanıcı oluşturulamadı: %w", err)
	}
	return nil
}

func (s *GormStore) SetUserGoal(ctx context.Context, id string, goal float64) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("weekly_waste_goal", goal)
	if res.Error != nil {
		return fmt.Errorf("hedef güncellenemedi: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
