package recommendation

import (
	"testing"

	"ecoRecommend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPreferences_EmptyActivity(t *testing.T) {
	r := NewRanker(DefaultConfig())

	profile := r.ExtractPreferences(nil, nil, nil)

	assert.Equal(t, domain.PriceRange{Min: 0, Max: 1000}, profile.PriceRange)
	assert.Zero(t, profile.EcoScoreThreshold)
	assert.Empty(t, profile.CategoryAffinity)
	assert.Empty(t, profile.Keywords)
	assert.NotNil(t, profile.CategoryAffinity)
}

func TestExtractPreferences_OnlyMissingProducts(t *testing.T) {
	r := NewRanker(DefaultConfig())

	profile := r.ExtractPreferences(
		[]domain.CartItem{{ProductID: 9}},
		[]domain.WishlistItem{{ProductID: 10}},
		nil,
	)

	assert.Equal(t, r.DefaultProfile(), profile)
}

func TestExtractPreferences_Aggregates(t *testing.T) {
	r := NewRanker(DefaultConfig())

	cart := []domain.CartItem{
		{Product: &domain.Product{ID: 1, Category: "Home", Price: 10, EcoScore: domain.EcoScoreOf(60), Text: "Bamboo Brush"}},
	}
	wishlist := []domain.WishlistItem{
		{ProductID: 2},
		{Product: &domain.Product{ID: 3, Category: "", Price: 0}},
	}
	viewed := []domain.Product{
		{
			ID: 4, Category: "Home", Price: 50, EcoScore: domain.EcoScoreOf(0),
			Text: "one two three four five six seven eight nine ten eleven twelve",
		},
	}

	profile := r.ExtractPreferences(cart, wishlist, viewed)

	assert.Equal(t, map[string]int{"Home": 2, "": 1}, profile.CategoryAffinity)
	assert.InDelta(t, 8.0, profile.PriceRange.Min, 1e-9)
	assert.InDelta(t, 60.0, profile.PriceRange.Max, 1e-9)
	// zero is a real score, the unscored product is skipped: (60+0)/2*0.8
	assert.InDelta(t, 24.0, profile.EcoScoreThreshold, 1e-9)

	require.Len(t, profile.Keywords, 12)
	assert.Equal(t, []string{"bamboo", "brush"}, profile.Keywords[:2])
	assert.Equal(t, "ten", profile.Keywords[11])
}

func TestExtractPreferences_NoPricesKeepsDefaultRange(t *testing.T) {
	r := NewRanker(DefaultConfig())

	profile := r.ExtractPreferences(nil, nil, []domain.Product{{Category: "Garden"}})

	assert.Equal(t, domain.PriceRange{Min: 0, Max: 1000}, profile.PriceRange)
	assert.Zero(t, profile.EcoScoreThreshold)
	assert.Equal(t, map[string]int{"Garden": 1}, profile.CategoryAffinity)
}

func TestExtractPreferences_UncappedKeywords(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KeywordsPerProduct = 0
	r := NewRanker(cfg)

	profile := r.ExtractPreferences(nil, nil, []domain.Product{
		{Text: "a b c d e f g h i j k l"},
	})

	assert.Len(t, profile.Keywords, 12)
}
