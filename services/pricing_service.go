package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"laundrypos/checkout"
	"laundrypos/entity"
	"laundrypos/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const pricingPage = "Pricing Management"

type PricingService struct {
	Repo  *repository.PricingRepository
	Audit *AuditService
}

func NewPricingService(repo *repository.PricingRepository, audit *AuditService) *PricingService {
	return &PricingService{Repo: repo, Audit: audit}
}

// ----- DTOs from Controller -----

type ServiceInput struct {
	Name          *string          `json:"name"`
	PricePerLimit *decimal.Decimal `json:"pricePerLimit"`
}

type LaundryTypeInput struct {
	Name  *string          `json:"name"`
	Limit *decimal.Decimal `json:"limit"`
	Unit  *string          `json:"unit"`
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func nameTaken(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrNameTaken
	}
	return err
}

func (in ServiceInput) updates(create bool) (map[string]any, error) {
	u := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, invalid("service name is required")
		}
		u["name"] = name
	} else if create {
		return nil, invalid("service name is required")
	}
	if in.PricePerLimit != nil {
		if in.PricePerLimit.IsNegative() {
			return nil, invalid("price must not be negative")
		}
		u["price_per_limit"] = *in.PricePerLimit
	} else if create {
		return nil, invalid("price is required")
	}
	return u, nil
}

func (in LaundryTypeInput) updates(create bool) (map[string]any, error) {
	u := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, invalid("laundry type name is required")
		}
		u["name"] = name
	} else if create {
		return nil, invalid("laundry type name is required")
	}
	if in.Limit != nil {
		if !in.Limit.IsPositive() {
			return nil, invalid("limit must be greater than zero")
		}
		u["limit"] = *in.Limit
	} else if create {
		return nil, invalid("limit is required")
	}
	if in.Unit != nil {
		unit := strings.ToLower(strings.TrimSpace(*in.Unit))
		if unit != "kg" && unit != "pc" {
			return nil, invalid("unit must be kg or pc")
		}
		u["unit"] = unit
	} else if create {
		u["unit"] = "kg"
	}
	return u, nil
}

// ----- Services -----

func (s *PricingService) ListServices(ctx context.Context) ([]entity.Service, error) {
	return s.Repo.ListServices(ctx)
}

func (s *PricingService) CreateService(ctx context.Context, sess checkout.Session, in ServiceInput) (*entity.Service, error) {
	u, err := in.updates(true)
	if err != nil {
		return nil, err
	}
	svc := &entity.Service{Name: u["name"].(string), PricePerLimit: u["price_per_limit"].(decimal.Decimal)}
	if err := s.Repo.CreateService(ctx, svc); err != nil {
		return nil, nameTaken(err)
	}
	s.Audit.Try(ctx, sess, entity.ActionCreateService, fmt.Sprintf("Added %s Service", svc.Name), pricingPage)
	return svc, nil
}

func (s *PricingService) UpdateService(ctx context.Context, sess checkout.Session, id uint, in ServiceInput) (*entity.Service, error) {
	u, err := in.updates(false)
	if err != nil {
		return nil, err
	}
	if len(u) == 0 {
		return nil, invalid("nothing to update")
	}
	if err := s.Repo.UpdateService(ctx, id, u); err != nil {
		return nil, nameTaken(err)
	}
	svc, err := s.Repo.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Audit.Try(ctx, sess, entity.ActionUpdateService, fmt.Sprintf("Updated %s Service", svc.Name), pricingPage)
	return svc, nil
}

func (s *PricingService) DeleteService(ctx context.Context, sess checkout.Session, id uint) error {
	svc, err := s.Repo.GetService(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteService(ctx, id); err != nil {
		return err
	}
	s.Audit.Try(ctx, sess, entity.ActionDeleteService, fmt.Sprintf("Deleted %s Service", svc.Name), pricingPage)
	return nil
}

// ----- Laundry types -----

func (s *PricingService) ListLaundryTypes(ctx context.Context) ([]entity.LaundryType, error) {
	return s.Repo.ListLaundryTypes(ctx)
}

func (s *PricingService) CreateLaundryType(ctx context.Context, sess checkout.Session, in LaundryTypeInput) (*entity.LaundryType, error) {
	u, err := in.updates(true)
	if err != nil {
		return nil, err
	}
	lt := &entity.LaundryType{
		Name:  u["name"].(string),
		Limit: u["limit"].(decimal.Decimal),
		Unit:  u["unit"].(string),
	}
	if err := s.Repo.CreateLaundryType(ctx, lt); err != nil {
		return nil, nameTaken(err)
	}
	s.Audit.Try(ctx, sess, entity.ActionCreateLaundry, fmt.Sprintf("Added %s laundry type", lt.Name), pricingPage)
	return lt, nil
}

func (s *PricingService) UpdateLaundryType(ctx context.Context, sess checkout.Session, id uint, in LaundryTypeInput) (*entity.LaundryType, error) {
	u, err := in.updates(false)
	if err != nil {
		return nil, err
	}
	if len(u) == 0 {
		return nil, invalid("nothing to update")
	}
	if err := s.Repo.UpdateLaundryType(ctx, id, u); err != nil {
		return nil, nameTaken(err)
	}
	lt, err := s.Repo.GetLaundryType(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Audit.Try(ctx, sess, entity.ActionUpdateLaundry, fmt.Sprintf("Edited %s laundry type", lt.Name), pricingPage)
	return lt, nil
}

func (s *PricingService) DeleteLaundryType(ctx context.Context, sess checkout.Session, id uint) error {
	lt, err := s.Repo.GetLaundryType(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteLaundryType(ctx, id); err != nil {
		return err
	}
	s.Audit.Try(ctx, sess, entity.ActionDeleteLaundry, fmt.Sprintf("Deleted %s laundry type", lt.Name), pricingPage)
	return nil
}
