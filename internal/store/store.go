// Package store reads vehicle inventory rows from the record store.
package store

import (
	"context"
	"fmt"

	"github.com/PratikDhanave/car-inventory-bot/internal/config"
	"github.com/PratikDhanave/car-inventory-bot/internal/models"
)

// Column names of the inventory table.
const (
	ColBrand = "廠牌"
	ColModel = "車型"
	ColYear  = "年份"
	ColPrice = "車輛售價"
)

// Filter selects cars by case-insensitive substring on brand and model and a
// minimum year. Empty strings and a zero year impose no constraint.
type Filter struct {
	Brand   string
	Model   string
	MinYear int
}

// Patterns returns the ILIKE patterns for brand and model: "%x%" when set,
// "%" otherwise.
func (f Filter) Patterns() (brand, model string) {
	return likePattern(f.Brand), likePattern(f.Model)
}

func (o Options) withDefaults() Options {
	if o.Table == "" {
		o.Table = "cars"
	}
	if o.MaxRows <= 0 {
		o.MaxRows = DefaultMaxRows
	}
	return o
}

func likePattern(s string) string {
	if s == "" {
		return "%"
	}
	return "%" + s + "%"
}

// Inventory is the read side used by the assistant.
type Inventory interface {
	FindCars(ctx context.Context, f Filter) ([]models.Car, error)
}

// Backend is an Inventory with a process lifecycle.
type Backend interface {
	Inventory
	Ping(ctx context.Context) error
	Close() error
}

// DefaultMaxRows caps a lookup when Options.MaxRows is not positive.
const DefaultMaxRows = 50

// Options applies to every backend.
type Options struct {
	Table   string
	MaxRows int
}

// Open connects the backend selected by cfg.StoreBackend.
func Open(ctx context.Context, cfg config.Config) (Backend, error) {
	opts := Options{Table: cfg.InventoryTable, MaxRows: cfg.InventoryMaxRows}

	switch cfg.StoreBackend {
	case config.BackendPostgres:
		return NewPostgresStore(ctx, cfg.DBURL, opts)
	case config.BackendREST:
		return NewRESTStore(cfg.SupabaseURL, cfg.SupabaseKey, opts), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
