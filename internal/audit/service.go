package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/JawwadIrshad/Resturant-App/internal/models"

	"gorm.io/gorm"
)

type LogOptions struct {
	SessionID   string
	EntityType  string
	EntityID    string
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

type Filter struct {
	SessionID  string
	EntityType string
	EntityID   string
	Limit      int
}

// Recorder stores the change trail of every session.
type Recorder interface {
	WriteLog(ctx context.Context, opts LogOptions) error
	List(ctx context.Context, f Filter) ([]models.AuditLog, error)
}

func buildLog(opts LogOptions) models.AuditLog {
	// jsonb columns need "null" rather than an empty string
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	return models.AuditLog{
		SessionID:   opts.SessionID,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}
}

type GormRecorder struct {
	db *gorm.DB
}

func NewGormRecorder(db *gorm.DB) *GormRecorder {
	return &GormRecorder{db: db}
}

func (r *GormRecorder) WriteLog(ctx context.Context, opts LogOptions) error {
	log := buildLog(opts)
	if err := r.db.WithContext(ctx).Create(&log).Error; err != nil {
		return fmt.Errorf("audit log could not be saved: %w", err)
	}
	return nil
}

func (r *GormRecorder) List(ctx context.Context, f Filter) ([]models.AuditLog, error) {
	dbq := r.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.SessionID != "" {
		dbq = dbq.Where("session_id = ?", f.SessionID)
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
	if err := dbq.Order("created_at desc, id desc").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("audit logs could not be listed: %w", err)
	}
	return logs, nil
}

// DefaultMemoryLimit bounds the in-process trail when no database is set.
const DefaultMemoryLimit = 10000

// MemoryRecorder keeps the trail in process when no database is configured.
// Once limit entries are held the oldest ones are dropped.
type MemoryRecorder struct {
	mu    sync.RWMutex
	logs  []models.AuditLog
	seq   uint
	limit int
	now   func() time.Time
}

// NewMemoryRecorder keeps at most limit entries; limit <= 0 uses
// DefaultMemoryLimit.
func NewMemoryRecorder(limit int) *MemoryRecorder {
	if limit <= 0 {
		limit = DefaultMemoryLimit
	}
	return &MemoryRecorder{limit: limit, now: time.Now}
}

func (r *MemoryRecorder) WriteLog(_ context.Context, opts LogOptions) error {
	log := buildLog(opts)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	log.ID = r.seq
	log.CreatedAt = r.now()
	r.logs = append(r.logs, log)
	if over := len(r.logs) - r.limit; over > 0 {
		r.logs = append(r.logs[:0:0], r.logs[over:]...)
	}
	return nil
}

// Forget drops every entry of a session and reports how many went.
func (r *MemoryRecorder) Forget(sessionID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.logs[:0]
	for _, l := range r.logs {
		if l.SessionID != sessionID {
			kept = append(kept, l)
		}
	}
	removed := len(r.logs) - len(kept)
	clear(r.logs[len(kept):])
	r.logs = kept
	return removed
}

func (r *MemoryRecorder) List(_ context.Context, f Filter) ([]models.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.AuditLog
	for _, l := range r.logs {
		if f.SessionID != "" && l.SessionID != f.SessionID {
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
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}
