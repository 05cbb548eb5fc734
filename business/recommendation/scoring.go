package recommendation

import (
	"strings"

	"ecoRecommend/domain"
)

// Ranker scores and orders candidate products. It holds no mutable state
// and is safe for concurrent use.
type Ranker struct {
	cfg Config
}

func NewRanker(cfg Config) *Ranker {
	return &Ranker{cfg: cfg}
}

// DemographicScore scores a product from the user's age and gender alone.
func (r *Ranker) DemographicScore(product domain.Product, age int, gender string) float64 {
	return r.explainDemographic(product, age, gender).DemographicScore
}

// PersonalizedScore blends the demographic score with the user's preference profile.
func (r *Ranker) PersonalizedScore(product domain.Product, profile domain.PreferenceProfile, age int, gender string) float64 {
	return r.Explain(product, profile, age, gender).FinalScore
}

// Explain returns every component of the personalized score.
func (r *Ranker) Explain(product domain.Product, profile domain.PreferenceProfile, age int, gender string) domain.DebugRecommendation {
	d := r.explainDemographic(product, age, gender)

	d.WeightedDemographic = d.DemographicScore * r.cfg.DemographicWeight

	if count, ok := profile.CategoryAffinity[product.Category]; ok {
		d.CategoryAffinity = float64(count) * r.cfg.CategoryAffinityWeight
	}

	if profile.PriceRange.Contains(product.Price) {
		d.PriceRangeBoost = r.cfg.PriceRangeBoost
	}

	if product.Eco() >= profile.EcoScoreThreshold {
		d.EcoThresholdBoost = r.cfg.EcoThresholdBoost
	}

	text := strings.ToLower(product.Text)
	for _, kw := range profile.Keywords {
		if strings.Contains(text, kw) {
			d.KeywordMatches++
		}
	}
	d.KeywordBoost = float64(d.KeywordMatches) * r.cfg.KeywordMatchWeight

	d.FinalScore = clamp(d.WeightedDemographic + d.CategoryAffinity + d.PriceRangeBoost + d.EcoThresholdBoost + d.KeywordBoost)

	return d
}

func (r *Ranker) explainDemographic(product domain.Product, age int, gender string) domain.DebugRecommendation {
	d := domain.DebugRecommendation{
		ProductID: product.ID,
		Title:     product.Title,
		EcoScore:  product.Eco(),
		EcoBase:   product.Eco() * r.cfg.EcoWeight,
	}

	category := strings.ToLower(product.Category)
	title := strings.ToLower(product.Title)
	text := strings.ToLower(product.Text)

	if band := r.cfg.ageBand(age); band != nil {
		if containsAny(category, band.CategoryKeywords) ||
			(band.MatchTitle && containsAny(title, band.CategoryKeywords)) {
			d.AgeCategoryBoost = r.cfg.AgeCategoryBoost
		}
		if containsAny(text, band.TextKeywords) {
			d.AgeTextBoost = r.cfg.AgeTextBoost
		}
	}

	// gender keys are matched case-sensitively
	if keywords, ok := r.cfg.GenderKeywords[gender]; ok {
		if containsAny(category, keywords) || containsAny(title, keywords) {
			d.GenderBoost = r.cfg.GenderBoost
		}
	}

	d.DemographicScore = clamp(d.EcoBase + d.AgeCategoryBoost + d.AgeTextBoost + d.GenderBoost)
	d.FinalScore = d.DemographicScore

	return d
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	return score
}
