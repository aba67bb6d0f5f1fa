package repository

import (
	"context"

	"laundrypos/entity"

	"gorm.io/gorm"
)

// WorkerRepository talks to the workers, roles and worker_roles tables.
type WorkerRepository struct {
	DB *gorm.DB
}

func NewWorkerRepository(db *gorm.DB) *WorkerRepository {
	return &WorkerRepository{DB: db}
}

func (r *WorkerRepository) FindByEmail(ctx context.Context, email string) (*entity.Worker, error) {
	var w entity.Worker
	if err := r.DB.WithContext(ctx).Preload("Roles").Where("email = ?", email).First(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WorkerRepository) FindByID(ctx context.Context, id uint) (*entity.Worker, error) {
	var w entity.Worker
	if err := r.DB.WithContext(ctx).Preload("Roles").First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WorkerRepository) CountByEmail(ctx context.Context, email string, excludeID uint) (int64, error) {
	var count int64
	q := r.DB.WithContext(ctx).Model(&entity.Worker{}).Where("email = ?", email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *WorkerRepository) List(ctx context.Context) ([]entity.Worker, error) {
	var out []entity.Worker
	err := r.DB.WithContext(ctx).Preload("Roles").Order("id ASC").Find(&out).Error
	return out, err
}

// Create inserts the worker together with its role links.
func (r *WorkerRepository) Create(ctx context.Context, w *entity.Worker) error {
	return r.DB.WithContext(ctx).Create(w).Error
}

func (r *WorkerRepository) Update(ctx context.Context, id uint, updates map[string]any) error {
	res := r.DB.WithContext(ctx).Model(&entity.Worker{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *WorkerRepository) ReplaceRoles(ctx context.Context, w *entity.Worker, roles []entity.Role) error {
	return r.DB.WithContext(ctx).Model(w).Association("Roles").Replace(roles)
}

func (r *WorkerRepository) ListRoles(ctx context.Context) ([]entity.Role, error) {
	var out []entity.Role
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *WorkerRepository) FindRolesByName(ctx context.Context, names []string) ([]entity.Role, error) {
	var out []entity.Role
	if len(names) == 0 {
		return out, nil
	}
	err := r.DB.WithContext(ctx).Where("name IN ?", names).Find(&out).Error
	return out, err
}
