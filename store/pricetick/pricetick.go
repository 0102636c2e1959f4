package pricetick

import (
	"context"
	"fmt"

	"synthpool/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type priceTickStore struct {
	db *db.DB
}

// New new price tick store
func New(db *db.DB) core.IPriceTickStore {
	return &priceTickStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.PriceTick{})

		if err := tx.AutoMigrate(core.PriceTick{}).Error; err != nil {
			return err
		}

		return nil
	})
}

// Create insert tick once, a replayed trace id keeps the first row
func (s *priceTickStore) Create(ctx context.Context, tick *core.PriceTick) error {
	return s.db.Update().Where("trace_id = ?", tick.TraceID).FirstOrCreate(tick).Error
}

func (s *priceTickStore) List(ctx context.Context, filter core.PriceTickFilter) ([]*core.PriceTick, error) {
	tx := s.db.View().Where("symbol = ?", filter.Symbol)
	if !filter.Since.IsZero() {
		tx = tx.Where("created_at > ?", filter.Since)
	}

	tx = tx.Order("created_at")
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}

	var ticks []*core.PriceTick
	if err := tx.Find(&ticks).Error; err != nil {
		return nil, err
	}

	return ticks, nil
}

func (s *priceTickStore) Latest(ctx context.Context, symbol string) (*core.PriceTick, error) {
	tick := core.PriceTick{}
	if err := s.db.View().Where("symbol = ?", symbol).Order("created_at DESC").First(&tick).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", core.ErrSymbolNotFound, symbol)
		}

		return nil, err
	}

	return &tick, nil
}
