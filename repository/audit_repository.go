package repository

import (
	"context"
	"strings"
	"time"

	"laundrypos/entity"

	"gorm.io/gorm"
)

type AuditRepository struct {
	DB *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{DB: db}
}

func (r *AuditRepository) Record(ctx context.Context, l *entity.AuditLog) error {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	return r.DB.WithContext(ctx).Create(l).Error
}

type AuditFilter struct {
	Action string
	Search string
	From   *time.Time
	To     *time.Time
	Limit  int
}

func (r *AuditRepository) List(ctx context.Context, f AuditFilter) ([]entity.AuditLog, error) {
	q := r.DB.WithContext(ctx).Model(&entity.AuditLog{})
	if f.Action != "" && !strings.EqualFold(f.Action, "ALL") {
		q = q.Where("action_type = ?", f.Action)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(email) LIKE ? OR LOWER(action_type) LIKE ? OR LOWER(details) LIKE ? OR LOWER(on_page) LIKE ?)",
			like, like, like, like)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}
	if f.Limit <= 0 || f.Limit > 1000 {
		f.Limit = 200
	}

	var out []entity.AuditLog
	err := q.Order("created_at DESC, id DESC").Limit(f.Limit).Find(&out).Error
	return out, err
}

func (r *AuditRepository) ActionTypes(ctx context.Context) ([]string, error) {
	var out []string
	err := r.DB.WithContext(ctx).Model(&entity.AuditLog{}).
		Distinct("action_type").
		Order("action_type ASC").
		Pluck("action_type", &out).Error
	return out, err
}

// PurgeBefore deletes rows created before t and returns how many went.
func (r *AuditRepository) PurgeBefore(ctx context.Context, t time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).Where("created_at < ?", t).Delete(&entity.AuditLog{})
	return res.RowsAffected, res.Error
}
