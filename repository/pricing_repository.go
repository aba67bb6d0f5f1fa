package repository

import (
	"context"

	"laundrypos/entity"

	"gorm.io/gorm"
)

// PricingRepository owns the services and laundry_types tables.
type PricingRepository struct {
	DB *gorm.DB
}

func NewPricingRepository(db *gorm.DB) *PricingRepository {
	return &PricingRepository{DB: db}
}

// ---------------- Services ----------------

func (r *PricingRepository) ListServices(ctx context.Context) ([]entity.Service, error) {
	var out []entity.Service
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *PricingRepository) GetService(ctx context.Context, id uint) (*entity.Service, error) {
	var s entity.Service
	if err := r.DB.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PricingRepository) CreateService(ctx context.Context, s *entity.Service) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *PricingRepository) UpdateService(ctx context.Context, id uint, updates map[string]any) error {
	res := r.DB.WithContext(ctx).Model(&entity.Service{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteService removes the row for good so its name can be reused.
func (r *PricingRepository) DeleteService(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Unscoped().Delete(&entity.Service{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ---------------- Laundry types ----------------

func (r *PricingRepository) ListLaundryTypes(ctx context.Context) ([]entity.LaundryType, error) {
	var out []entity.LaundryType
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *PricingRepository) GetLaundryType(ctx context.Context, id uint) (*entity.LaundryType, error) {
	var lt entity.LaundryType
	if err := r.DB.WithContext(ctx).First(&lt, id).Error; err != nil {
		return nil, err
	}
	return &lt, nil
}

func (r *PricingRepository) CreateLaundryType(ctx context.Context, lt *entity.LaundryType) error {
	return r.DB.WithContext(ctx).Create(lt).Error
}

func (r *PricingRepository) UpdateLaundryType(ctx context.Context, id uint, updates map[string]any) error {
	res := r.DB.WithContext(ctx).Model(&entity.LaundryType{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PricingRepository) DeleteLaundryType(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Unscoped().Delete(&entity.LaundryType{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
