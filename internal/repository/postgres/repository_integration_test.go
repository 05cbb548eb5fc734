//go:build integration

package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"ecoRecommend/domain"
	"ecoRecommend/pkg/config"
	"ecoRecommend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// openTestDB connects to the database configured through the usual DB_*
// variables and migrates into a throwaway schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if os.Getenv("DB_PASSWORD") == "" {
		t.Skip("DB_PASSWORD not set")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	db, err := database.InitPostgres(cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	// search_path is per connection
	schema := "reco_it_" + time.Now().Format("150405")
	require.NoError(t, db.Exec("CREATE SCHEMA "+schema).Error)
	t.Cleanup(func() {
		db.Exec("DROP SCHEMA " + schema + " CASCADE")
	})
	require.NoError(t, db.Exec("SET search_path TO "+schema).Error)

	require.NoError(t, db.AutoMigrate(
		&domain.Product{},
		&domain.User{},
		&domain.CartItem{},
		&domain.WishlistItem{},
		&domain.ProductView{},
	))

	return db
}

func TestRepositories(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	products := NewProductRepository(db)
	users := NewUserRepository(db)
	activity := NewActivityRepository(db)

	n, err := products.CreateBatch(ctx, []domain.Product{
		{Title: "Bamboo Toothbrush", Price: 4, Category: "Beauty", EcoScore: domain.EcoScoreOf(80)},
		{Title: "Solar Lantern", Price: 35, Category: "Outdoor", Text: "50% brighter"},
		{Title: "Steel Straw", Price: 9, Category: "Kitchen", EcoScore: domain.EcoScoreOf(0)},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	all, err := products.GetProducts(ctx, 2)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Bamboo Toothbrush", all[0].Title)
	assert.Nil(t, all[1].EcoScore)

	found, err := products.SearchProducts(ctx, "LANTERN", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)

	found, err = products.SearchProducts(ctx, "50%", 10)
	require.NoError(t, err)
	assert.Len(t, found, 1)

	user, err := users.GetUser(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, user)

	u := domain.User{FullName: "Ada", Email: "ada@example.com", Age: 33, Gender: "female"}
	require.NoError(t, db.Create(&u).Error)

	require.NoError(t, db.Create(&domain.CartItem{UserID: u.ID, ProductID: all[0].ID, Quantity: 1}).Error)
	require.NoError(t, db.Create(&domain.WishlistItem{UserID: u.ID, ProductID: all[1].ID}).Error)
	require.NoError(t, db.Create(&domain.ProductView{UserID: u.ID, ProductID: all[0].ID, ViewedAt: time.Now().Add(-time.Hour)}).Error)
	require.NoError(t, db.Create(&domain.ProductView{UserID: u.ID, ProductID: all[1].ID, ViewedAt: time.Now()}).Error)

	cart, err := activity.GetCartItems(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	require.NotNil(t, cart[0].Product)
	assert.Equal(t, "Bamboo Toothbrush", cart[0].Product.Title)

	wishlist, err := activity.GetWishlistItems(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, wishlist, 1)

	viewed, err := activity.GetViewedProducts(ctx, u.ID, 1)
	require.NoError(t, err)
	require.Len(t, viewed, 1)
	assert.Equal(t, "Solar Lantern", viewed[0].Title)
}
