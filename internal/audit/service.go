package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"wastage-backend/internal/models"
)

const (
	EntityWastageEntry = "wastage_entry"
	EntityUserGoal     = "user_goal"
)

type LogOptions struct {
	UserID      string
	Email       string
	EntityType  string
	EntityID    string
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

type Filter struct {
	UserID     string
	EntityType string
	EntityID   string
	Limit      int
}

// Sink: audit kayıtlarının kalıcı olarak yazıldığı yer
type Sink interface {
	Save(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, f Filter) ([]models.AuditLog, error)
}

// Recorder: her olayı audit logger'a yazar, sink varsa ayrıca saklar.
// Audit hatası isteği düşürmez, sadece loglanır.
type Recorder struct {
	sink Sink
	log  *logrus.Logger
}

func NewRecorder(sink Sink, log *logrus.Logger) *Recorder {
	return &Recorder{sink: sink, log: log}
}

func (r *Recorder) Write(ctx context.Context, opts LogOptions) {
	if r == nil {
		return
	}

	entry := models.AuditLog{
		CreatedAt:   time.Now(),
		UserID:      opts.UserID,
		Email:       opts.Email,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  toJSON(opts.Before),
		AfterData:   toJSON(opts.After),
	}

	r.log.WithFields(logrus.Fields{
		"user_id":     entry.UserID,
		"entity_type": entry.EntityType,
		"entity_id":   entry.EntityID,
		"action":      entry.Action,
	}).Info(entry.Description)

	if r.sink == nil {
		return
	}
	if err := r.sink.Save(ctx, &entry); err != nil {
		r.log.WithError(err).WithField("entity_id", entry.EntityID).Error("audit log kaydedilemedi")
	}
}

func (r *Recorder) List(ctx context.Context, f Filter) ([]models.AuditLog, error) {
	if r == nil || r.sink == nil {
		return []models.AuditLog{}, nil
	}
	return r.sink.List(ctx, f)
}

// PostgreSQL jsonb için boş string yerine "null" JSON string'i kullanılır
func toJSON(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

// GormSink: audit_logs tablosu
type GormSink struct {
	db *gorm.DB
}

func NewGormSink(db *gorm.DB) *GormSink {
	return &GormSink{db: db}
}

func (s *GormSink) Save(ctx context.Context, entry *models.AuditLog) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("audit log kaydedilemedi: %w", err)
	}
	return nil
}

func (s *GormSink) List(ctx context.Context, f Filter) ([]models.AuditLog, error) {
	dbq := s.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.UserID != "" {
		dbq = dbq.Where("user_id = ?", f.UserID)
	}
	if f.EntityType != "" {
		dbq = dbq.Where("entity_type = ?", f.EntityType)
	}
	if f.EntityID != "" {
		dbq = dbq.Where("entity_id = ?", f.EntityID)
	}
	if f.Limit > 0 {
		dbq = dbq.Limit(f.Limit)
	}

	var logs []models.AuditLog
	if err := dbq.Order("created_at DESC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("audit loglar listelenemedi: %w", err)
	}
	return logs, nil
}

// MemorySink: Postgres dışı backend'lerde son N olay bellekte tutulur
type MemorySink struct {
	mu     sync.Mutex
	max    int
	nextID uint
	logs   []models.AuditLog
}

func NewMemorySink(max int) *MemorySink {
	return &MemorySink{max: max}
}

func (s *MemorySink) Save(_ context.Context, entry *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	entry.ID = s.nextID
	s.logs = append(s.logs, *entry)
	if s.max > 0 && len(s.logs) > s.max {
		s.logs = s.logs[len(s.logs)-s.max:]
	}
	return nil
}

func (s *MemorySink) List(_ context.Context, f Filter) ([]models.AuditLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.AuditLog, 0, len(s.logs))
	for _, l := range s.logs {
		if f.UserID != "" && l.UserID != f.UserID {
			continue
		}
		if f.EntityType != "" && l.EntityType != f.EntityType {
			continue
		}
		if f.EntityID != "" && l.EntityID != f.EntityID {
			continue
		}
		out = append(out, l)
	}
	// en yeni önce; aynı anda yazılanlarda id sırası
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}
