package postgres

import (
	"context"
	"fmt"

	"ecoRecommend/business/recommendation"
	"ecoRecommend/domain"

	"gorm.io/gorm"
)

// ActivityRepository reads a user's cart, wishlist and view history.
type ActivityRepository struct {
	DB *gorm.DB
}

var _ recommendation.ActivityRepository = (*ActivityRepository)(nil)

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{
		DB: db,
	}
}

func (r *ActivityRepository) GetCartItems(ctx context.Context, userID uint) ([]domain.CartItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var items []domain.CartItem
	err := r.DB.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find cart items: %w", err)
	}

	return items, nil
}

func (r *ActivityRepository) GetWishlistItems(ctx context.Context, userID uint) ([]domain.WishlistItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var items []domain.WishlistItem
	err := r.DB.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find wishlist items: %w", err)
	}

	return items, nil
}

// GetViewedProducts returns the products behind the user's most recent views,
// newest first. Views of deleted products are dropped by the join.
func (r *ActivityRepository) GetViewedProducts(ctx context.Context, userID uint, limit int) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var products []domain.Product
	err := r.DB.WithContext(ctx).
		Model(&domain.Product{}).
		Select("products.*").
		Joins("JOIN product_views pv ON pv.product_id = products.id").
		Where("pv.user_id = ?", userID).
		Order("pv.viewed_at DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find viewed products: %w", err)
	}

	return products, nil
}
