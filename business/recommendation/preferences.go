package recommendation

import (
	"strings"

	"ecoRecommend/domain"
)

// DefaultProfile returns the profile of a user with no activity. It accepts
// every price in the default range and adds no category or keyword boost.
func (r *Ranker) DefaultProfile() domain.PreferenceProfile {
	return domain.PreferenceProfile{
		CategoryAffinity:  map[string]int{},
		PriceRange:        r.cfg.DefaultPriceRange,
		EcoScoreThreshold: 0,
		Keywords:          []string{},
	}
}

// ExtractPreferences derives a preference profile from cart, wishlist and
// view history, in that order. Activity records whose product is gone are
// skipped.
func (r *Ranker) ExtractPreferences(
	cartItems []domain.CartItem,
	wishlistItems []domain.WishlistItem,
	viewedProducts []domain.Product,
) domain.PreferenceProfile {
	profile := r.DefaultProfile()

	pool := flattenActivity(cartItems, wishlistItems, viewedProducts)
	if len(pool) == 0 {
		return profile
	}

	var (
		minPrice, maxPrice float64
		havePrice          bool
		ecoSum             float64
		ecoCount           int
	)

	for _, p := range pool {
		profile.CategoryAffinity[p.Category]++

		// zero price means the catalog row has no usable price
		if p.Price > 0 {
			if !havePrice || p.Price < minPrice {
				minPrice = p.Price
			}
			if !havePrice || p.Price > maxPrice {
				maxPrice = p.Price
			}
			havePrice = true
		}

		if p.IsScored() {
			ecoSum += p.Eco()
			ecoCount++
		}

		profile.Keywords = append(profile.Keywords, r.keywords(p.Text)...)
	}

	if havePrice {
		profile.PriceRange = domain.PriceRange{
			Min: minPrice * r.cfg.PriceLowFactor,
			Max: maxPrice * r.cfg.PriceHighFactor,
		}
	}

	if ecoCount > 0 {
		profile.EcoScoreThreshold = ecoSum / float64(ecoCount) * r.cfg.EcoThresholdFactor
	}

	return profile
}

func (r *Ranker) keywords(text string) []string {
	words := strings.Fields(strings.ToLower(text))
	if n := r.cfg.KeywordsPerProduct; n > 0 && len(words) > n {
		words = words[:n]
	}
	return words
}

func flattenActivity(
	cartItems []domain.CartItem,
	wishlistItems []domain.WishlistItem,
	viewedProducts []domain.Product,
) []domain.Product {
	pool := make([]domain.Product, 0, len(cartItems)+len(wishlistItems)+len(viewedProducts))

	for _, item := range cartItems {
		if item.Product != nil {
			pool = append(pool, *item.Product)
		}
	}
	for _, item := range wishlistItems {
		if item.Product != nil {
			pool = append(pool, *item.Product)
		}
	}
	pool = append(pool, viewedProducts...)

	return pool
}
