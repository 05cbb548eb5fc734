package recommendation

import (
	"sort"

	"ecoRecommend/domain"
)

// RankColdStart ranks candidates for a user without history.
// Products scoring zero are dropped; ties are broken by eco-score.
func (r *Ranker) RankColdStart(candidates []domain.Product, age int, gender string, limit int) []domain.ScoredProduct {
	scored := make([]domain.ScoredProduct, 0, len(candidates))
	for _, p := range candidates {
		score := r.DemographicScore(p, age, gender)
		if score <= 0 {
			continue
		}
		scored = append(scored, domain.ScoredProduct{Product: p, RecommendationScore: score})
	}

	sortByScoreThenEco(scored)

	return topN(scored, limit)
}

// RankPersonalized ranks candidates against a preference profile. Anything
// already in the cart or wishlist is excluded by product id.
func (r *Ranker) RankPersonalized(
	candidates []domain.Product,
	profile domain.PreferenceProfile,
	cartItems []domain.CartItem,
	wishlistItems []domain.WishlistItem,
	age int,
	gender string,
	limit int,
) []domain.ScoredProduct {
	owned := ownedProductIDs(cartItems, wishlistItems)

	scored := make([]domain.ScoredProduct, 0, len(candidates))
	for _, p := range candidates {
		if _, ok := owned[p.ID]; ok {
			continue
		}
		score := r.PersonalizedScore(p, profile, age, gender)
		if score <= 0 {
			continue
		}
		scored = append(scored, domain.ScoredProduct{Product: p, RecommendationScore: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RecommendationScore > scored[j].RecommendationScore
	})

	return topN(scored, limit)
}

// RankSearch orders search results. With a nil profile the results are
// ordered by eco-score only. Owned products stay eligible and nothing is
// filtered out.
func (r *Ranker) RankSearch(
	results []domain.Product,
	profile *domain.PreferenceProfile,
	age int,
	gender string,
	limit int,
) []domain.ScoredProduct {
	scored := make([]domain.ScoredProduct, 0, len(results))

	if profile == nil {
		for _, p := range results {
			scored = append(scored, domain.ScoredProduct{Product: p})
		}
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].Eco() > scored[j].Eco()
		})
		return topN(scored, limit)
	}

	for _, p := range results {
		scored = append(scored, domain.ScoredProduct{
			Product:             p,
			RecommendationScore: r.PersonalizedScore(p, *profile, age, gender),
		})
	}

	sortByScoreThenEco(scored)

	return topN(scored, limit)
}

func sortByScoreThenEco(scored []domain.ScoredProduct) {
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].RecommendationScore != scored[j].RecommendationScore {
			return scored[i].RecommendationScore > scored[j].RecommendationScore
		}
		return scored[i].Eco() > scored[j].Eco()
	})
}

func ownedProductIDs(cartItems []domain.CartItem, wishlistItems []domain.WishlistItem) map[uint64]struct{} {
	owned := make(map[uint64]struct{}, len(cartItems)+len(wishlistItems))
	for _, item := range cartItems {
		if id, ok := activityProductID(item.ProductID, item.Product); ok {
			owned[id] = struct{}{}
		}
	}
	for _, item := range wishlistItems {
		if id, ok := activityProductID(item.ProductID, item.Product); ok {
			owned[id] = struct{}{}
		}
	}
	return owned
}

// activityProductID prefers the preloaded product's id and falls back to the
// foreign key when the association was not loaded.
func activityProductID(productID uint64, product *domain.Product) (uint64, bool) {
	if product != nil {
		return product.ID, true
	}
	return productID, productID != 0
}

func topN(scored []domain.ScoredProduct, limit int) []domain.ScoredProduct {
	if limit < 0 {
		limit = 0
	}
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// ExplainPersonalized scores every candidate with its components. Unlike
// RankPersonalized, owned and zero-score products are kept; owned ones are
// flagged as excluded.
func (r *Ranker) ExplainPersonalized(
	candidates []domain.Product,
	profile domain.PreferenceProfile,
	cartItems []domain.CartItem,
	wishlistItems []domain.WishlistItem,
	age int,
	gender string,
	limit int,
) []domain.DebugRecommendation {
	owned := ownedProductIDs(cartItems, wishlistItems)

	out := make([]domain.DebugRecommendation, 0, len(candidates))
	for _, p := range candidates {
		d := r.Explain(p, profile, age, gender)
		_, d.Excluded = owned[p.ID]
		out = append(out, d)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FinalScore > out[j].FinalScore
	})

	if limit < 0 {
		limit = 0
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
