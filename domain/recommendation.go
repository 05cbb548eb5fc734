package domain

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether price lies in [Min, Max].
func (r PriceRange) Contains(price float64) bool {
	return r.Min <= price && price <= r.Max
}

// PreferenceProfile is derived from a user's activity on every request and never stored.
type PreferenceProfile struct {
	CategoryAffinity  map[string]int `json:"preferred_categories"`
	PriceRange        PriceRange     `json:"price_range"`
	EcoScoreThreshold float64        `json:"eco_score_threshold"`
	Keywords          []string       `json:"keywords"`
}

type ScoredProduct struct {
	Product
	RecommendationScore float64 `json:"recommendation_score"`
}

// DebugRecommendation breaks a personalized score into its components.
type DebugRecommendation struct {
	ProductID uint64  `json:"product_id"`
	Title     string  `json:"title"`
	EcoScore  float64 `json:"eco_score"`

	EcoBase          float64 `json:"eco_base"`
	AgeCategoryBoost float64 `json:"age_category_boost"`
	AgeTextBoost     float64 `json:"age_text_boost"`
	GenderBoost      float64 `json:"gender_boost"`
	DemographicScore float64 `json:"demographic_score"`

	WeightedDemographic float64 `json:"weighted_demographic"`
	CategoryAffinity    float64 `json:"category_affinity"`
	PriceRangeBoost     float64 `json:"price_range_boost"`
	EcoThresholdBoost   float64 `json:"eco_threshold_boost"`
	KeywordMatches      int     `json:"keyword_matches"`
	KeywordBoost        float64 `json:"keyword_boost"`

	FinalScore float64 `json:"final_score"`
	// Excluded marks products already in the cart or wishlist.
	Excluded bool `json:"excluded"`
}
