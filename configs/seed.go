package configs

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"laundrypos/entity"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed pricing.yaml
var defaultPricing []byte

// PricingSeed is the YAML layout of a price list.
type PricingSeed struct {
	LaundryTypes []struct {
		Name  string `yaml:"name"`
		Limit string `yaml:"limit"`
		Unit  string `yaml:"unit"`
	} `yaml:"laundry_types"`
	Services []struct {
		Name          string `yaml:"name"`
		PricePerLimit string `yaml:"price_per_limit"`
	} `yaml:"services"`
}

func SeedRoles(database *gorm.DB) error {
	roles := []entity.Role{
		{Name: entity.RoleAdmin, AccessPage: "Dashboard, Order Log, Pricing Management, System Management, Audit Log"},
		{Name: entity.RoleCashier, AccessPage: "Cashier, Order Log"},
		{Name: entity.RoleInventory, AccessPage: "Inventory"},
	}
	for _, r := range roles {
		if err := database.Where(entity.Role{Name: r.Name}).FirstOrCreate(&r).Error; err != nil {
			return fmt.Errorf("seed role %s: %w", r.Name, err)
		}
	}
	return nil
}

// SeedAdmin creates the first admin worker when ADMIN_EMAIL and
// ADMIN_PASSWORD are set and no worker has that email yet.
func SeedAdmin(database *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		zap.L().Warn("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var existing entity.Worker
	err := database.Where("email = ?", email).First(&existing).Error
	if err == nil {
		zap.L().Info("admin already exists", zap.String("email", email))
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var roles []entity.Role
	if err := database.Find(&roles).Error; err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.Worker{
		FirstName: "System",
		LastName:  "Administrator",
		Email:     email,
		Password:  string(hash),
		Status:    entity.WorkerActive,
		Roles:     roles,
	}
	if err := database.Create(&admin).Error; err != nil {
		return err
	}
	zap.L().Info("seeded admin worker", zap.String("email", email))
	return nil
}

// SeedPricing loads the price list from file, or the built-in list when file
// is empty. Nothing is written if any service or laundry type exists.
func SeedPricing(database *gorm.DB, file string) error {
	var count int64
	if err := database.Model(&entity.Service{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if err := database.Model(&entity.LaundryType{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	raw := defaultPricing
	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read pricing seed: %w", err)
		}
		raw = b
	}
	seed, err := ParsePricingSeed(raw)
	if err != nil {
		return err
	}

	return database.Transaction(func(tx *gorm.DB) error {
		for i := range seed.Types {
			if err := tx.Create(&seed.Types[i]).Error; err != nil {
				return err
			}
		}
		for i := range seed.Services {
			if err := tx.Create(&seed.Services[i]).Error; err != nil {
				return err
			}
		}
		zap.L().Info("seeded price list",
			zap.Int("laundryTypes", len(seed.Types)),
			zap.Int("services", len(seed.Services)))
		return nil
	})
}

// PriceList is a validated price list ready to insert.
type PriceList struct {
	Types    []entity.LaundryType
	Services []entity.Service
}

func ParsePricingSeed(raw []byte) (*PriceList, error) {
	var seed PricingSeed
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("parse pricing seed: %w", err)
	}

	out := &PriceList{}
	for _, lt := range seed.LaundryTypes {
		limit, err := decimal.NewFromString(lt.Limit)
		if err != nil || !limit.IsPositive() {
			return nil, fmt.Errorf("laundry type %q: limit must be a positive number", lt.Name)
		}
		unit := lt.Unit
		if unit == "" {
			unit = "kg"
		}
		out.Types = append(out.Types, entity.LaundryType{Name: lt.Name, Limit: limit, Unit: unit})
	}
	for _, s := range seed.Services {
		price, err := decimal.NewFromString(s.PricePerLimit)
		if err != nil || price.IsNegative() {
			return nil, fmt.Errorf("service %q: price must be a non-negative number", s.Name)
		}
		out.Services = append(out.Services, entity.Service{Name: s.Name, PricePerLimit: price})
	}
	return out, nil
}
