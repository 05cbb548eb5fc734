package postgres

import (
	"context"
	"fmt"
	"strings"

	"ecoRecommend/business/catalog"
	"ecoRecommend/business/recommendation"
	"ecoRecommend/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository struct {
	DB *gorm.DB
}

var (
	_ recommendation.ProductRepository = (*ProductRepository)(nil)
	_ catalog.ProductWriter            = (*ProductRepository)(nil)
)

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

// GetProducts returns up to limit products in catalog order.
func (r *ProductRepository) GetProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var products []domain.Product
	err := r.DB.WithContext(ctx).
		Order("id ASC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return products, nil
}

// SearchProducts matches query case-insensitively against title, text and
// category. An empty query matches everything.
func (r *ProductRepository) SearchProducts(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	db := r.DB.WithContext(ctx)

	if q := strings.TrimSpace(query); q != "" {
		pattern := "%" + escapeLike(q) + "%"
		db = db.Where("title ILIKE ? OR text ILIKE ? OR category ILIKE ?", pattern, pattern, pattern)
	}

	var products []domain.Product
	if err := db.Order("id ASC").Limit(limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	return products, nil
}

// CreateBatch inserts products and silently skips conflicting rows.
func (r *ProductRepository) CreateBatch(ctx context.Context, products []domain.Product) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}
	if len(products) == 0 {
		return 0, nil
	}

	result := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&products)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to create products: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
