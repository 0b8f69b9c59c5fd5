package wastage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"wastage-backend/internal/audit"
	"wastage-backend/internal/auth"
	"wastage-backend/internal/models"
	"wastage-backend/internal/store"
	"wastage-backend/internal/validation"
)

type CreateWastageRequest struct {
	Item     string   `json:"item" validate:"notblank,min=2"`
	Quantity float64  `json:"quantity" validate:"gt=0"`
	Unit     string   `json:"unit" validate:"wastage_unit"`
	Reason   string   `json:"reason" validate:"wastage_reason"`
	Cost     *float64 `json:"cost" validate:"omitempty,gte=0"`
}

// ValidationError: istek içeriği hatalı, depoya hiç gidilmedi
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type Service struct {
	Store store.Store
	Audit *audit.Recorder
	Log   *logrus.Logger
	Clock func() time.Time
}

func NewService(s store.Store, rec *audit.Recorder, log *logrus.Logger) *Service {
	return &Service{Store: s, Audit: rec, Log: log, Clock: time.Now}
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}

// Degraded: depo yapılandırılmamışsa okumalar boş döner, yazmalar reddedilir
func (s *Service) Degraded() bool {
	return store.IsDegraded(s.Store)
}

// Records: kullanıcının görebildiği kayıtlar, en yeni önce
func (s *Service) Records(ctx context.Context, id auth.Identity) ([]models.WastageEntry, error) {
	records, err := s.Store.ListRecords(ctx, id.Scope())
	if err != nil {
		return nil, fmt.Errorf("kayıtlar listelenemedi: %w", err)
	}
	store.SortByDateDesc(records)
	return records, nil
}

// Create: tarih sunucu saatinden, sahip istekten alınır
func (s *Service) Create(ctx context.Context, id auth.Identity, req CreateWastageRequest) (*models.WastageEntry, error) {
	req.Item = strings.TrimSpace(req.Item)
	if err := validation.Struct(req); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	rec := store.NewRecord{
		Item:     req.Item,
		Quantity: req.Quantity,
		Unit:     models.WastageUnit(req.Unit),
		Reason:   models.WastageReason(req.Reason),
		Date:     s.now(),
		UserID:   id.UserID,
		Cost:     req.Cost,
	}

	recordID, err := s.Store.CreateRecord(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("kayıt oluşturulamadı: %w", err)
	}

	entry := &models.WastageEntry{
		ID:       recordID,
		Item:     rec.Item,
		Quantity: rec.Quantity,
		Unit:     rec.Unit,
		Reason:   rec.Reason,
		Date:     rec.Date,
		UserID:   rec.UserID,
		Cost:     rec.Cost,
	}

	s.Audit.Write(ctx, audit.LogOptions{
		UserID:      id.UserID,
		Email:       id.Email,
		EntityType:  audit.EntityWastageEntry,
		EntityID:    recordID,
		Action:      models.AuditActionCreate,
		Description: fmt.Sprintf("Wastage logged: %s - %g %s (%s)", entry.Item, entry.Quantity, entry.Unit, entry.Reason),
		After:       entry,
	})
	return entry, nil
}

// Get: kapsam dışındaki kayıt, varlığı sızmasın diye ErrNotFound olarak döner
func (s *Service) Get(ctx context.Context, id auth.Identity, recordID string) (*models.WastageEntry, error) {
	entry, err := s.Store.GetRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if !id.Scope().Allows(*entry) {
		return nil, store.ErrNotFound
	}
	return entry, nil
}

func (s *Service) Delete(ctx context.Context, id auth.Identity, recordID string) error {
	entry, err := s.Get(ctx, id, recordID)
	if err != nil {
		return err
	}
	if err := s.Store.DeleteRecord(ctx, recordID); err != nil {
		return err
	}

	s.Audit.Write(ctx, audit.LogOptions{
		UserID:      id.UserID,
		Email:       id.Email,
		EntityType:  audit.EntityWastageEntry,
		EntityID:    recordID,
		Action:      models.AuditActionDelete,
		Description: fmt.Sprintf("Wastage deleted: %s - %g %s", entry.Item, entry.Quantity, entry.Unit),
		Before:      entry,
	})
	return nil
}

// Donations: Overproduction kayıtları bağışçı bilgisiyle, en yeni önce.
// Profili bulunamayan bağışçının kaydı listeye girmez.
func (s *Service) Donations(ctx context.Context) ([]models.Donation, error) {
	records, err := s.Store.ListByReason(ctx, models.ReasonOverproduction)
	if err != nil {
		return nil, fmt.Errorf("bağışlar listelenemedi: %w", err)
	}
	if len(records) == 0 {
		return []models.Donation{}, nil
	}

	ids := make([]string, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, ok := seen[r.UserID]; ok || r.UserID == "" {
			continue
		}
		seen[r.UserID] = struct{}{}
		ids = append(ids, r.UserID)
	}

	donors, err := s.Store.GetUserProfiles(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("bağışçılar okunamadı: %w", err)
	}

	store.SortByDateDesc(records)
	out := make([]models.Donation, 0, len(records))
	for _, r := range records {
		donor, ok := donors[r.UserID]
		if !ok {
			continue
		}
		out = append(out, models.Donation{
			WastageEntry: r,
			Donor:        models.DonorInfo{ID: donor.ID, Email: donor.Email},
		})
	}
	return out, nil
}
