package services

import (
	"context"
	"fmt"

	"laundrypos/checkout"
	"laundrypos/repository"
)

// CatalogLoader builds the reference data a draft prices against from the
// pricing and product tables.
type CatalogLoader struct {
	Pricing  *repository.PricingRepository
	Products *repository.ProductRepository
}

func NewCatalogLoader(pricing *repository.PricingRepository, products *repository.ProductRepository) *CatalogLoader {
	return &CatalogLoader{Pricing: pricing, Products: products}
}

func (l *CatalogLoader) LoadCatalog(ctx context.Context) (checkout.Catalog, error) {
	var c checkout.Catalog

	services, err := l.Pricing.ListServices(ctx)
	if err != nil {
		return c, fmt.Errorf("list services: %w", err)
	}
	for _, s := range services {
		c.Services = append(c.Services, checkout.Service{
			ID:            checkout.ServiceID(s.ID),
			Name:          s.Name,
			PricePerLimit: s.PricePerLimit,
		})
	}

	types, err := l.Pricing.ListLaundryTypes(ctx)
	if err != nil {
		return c, fmt.Errorf("list laundry types: %w", err)
	}
	for _, lt := range types {
		c.LaundryTypes = append(c.LaundryTypes, checkout.LaundryType{
			ID:    checkout.LaundryTypeID(lt.ID),
			Name:  lt.Name,
			Limit: lt.Limit,
			Unit:  lt.Unit,
		})
	}

	rows, err := l.Products.ListCatalog(ctx)
	if err != nil {
		return c, fmt.Errorf("list product entries: %w", err)
	}
	for _, r := range rows {
		c.Entries = append(c.Entries, checkout.StockEntry{
			EntryID:     checkout.EntryID(r.EntryID),
			ItemID:      checkout.ItemID(r.ItemID),
			ItemName:    r.ItemName,
			Category:    r.Category,
			Weight:      r.Weight,
			UnitPrice:   r.Price,
			Remaining:   r.Quantity,
			PurchasedAt: r.PurchasedAt,
			ExpiresAt:   r.ExpiresAt,
		})
	}
	return c, nil
}
