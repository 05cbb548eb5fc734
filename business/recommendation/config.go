package recommendation

import "ecoRecommend/domain"

// AgeBand is one row of the demographic age table. Bands are checked in
// order and the first one whose MaxAge is above the user's age wins; a
// MaxAge of 0 closes the table.
type AgeBand struct {
	MaxAge           int
	CategoryKeywords []string
	// MatchTitle extends the category keyword check to the product title.
	MatchTitle   bool
	TextKeywords []string
}

type Config struct {
	// demographic score
	EcoWeight        float64
	AgeBands         []AgeBand
	AgeCategoryBoost float64
	AgeTextBoost     float64
	GenderKeywords   map[string][]string
	GenderBoost      float64

	// personalized score
	DemographicWeight      float64
	CategoryAffinityWeight float64
	PriceRangeBoost        float64
	EcoThresholdBoost      float64
	KeywordMatchWeight     float64

	// preference extraction
	PriceLowFactor     float64
	PriceHighFactor    float64
	DefaultPriceRange  domain.PriceRange
	EcoThresholdFactor float64
	// KeywordsPerProduct caps tokens taken from each product's text; 0 means no cap.
	KeywordsPerProduct int
}

const (
	defaultEcoWeight              = 0.6
	defaultAgeCategoryBoost       = 15.0
	defaultAgeTextBoost           = 5.0
	defaultGenderBoost            = 8.0
	defaultDemographicWeight      = 0.4
	defaultCategoryAffinityWeight = 8.0
	defaultPriceRangeBoost        = 20.0
	defaultEcoThresholdBoost      = 15.0
	defaultKeywordMatchWeight     = 1.5
	defaultPriceLowFactor         = 0.8
	defaultPriceHighFactor        = 1.2
	defaultPriceRangeMax          = 1000.0
	defaultEcoThresholdFactor     = 0.8
	defaultKeywordsPerProduct     = 10
)

func DefaultConfig() Config {
	return Config{
		EcoWeight: defaultEcoWeight,
		AgeBands: []AgeBand{
			{
				MaxAge:           25,
				CategoryKeywords: []string{"electronics", "fashion", "sports", "tech", "gadget"},
				MatchTitle:       true,
				TextKeywords:     []string{"portable", "travel", "compact", "modern"},
			},
			{
				MaxAge:           40,
				CategoryKeywords: []string{"home", "kitchen", "outdoor", "garden"},
				TextKeywords:     []string{"family", "home", "kitchen", "cooking"},
			},
			{
				CategoryKeywords: []string{"health", "improvement", "garden", "wellness"},
				TextKeywords:     []string{"comfort", "health", "wellness", "garden"},
			},
		},
		AgeCategoryBoost: defaultAgeCategoryBoost,
		AgeTextBoost:     defaultAgeTextBoost,
		GenderKeywords: map[string][]string{
			"female": {"beauty", "fashion", "home", "personal care"},
			"male":   {"tools", "automotive", "sports", "tech"},
		},
		GenderBoost: defaultGenderBoost,

		DemographicWeight:      defaultDemographicWeight,
		CategoryAffinityWeight: defaultCategoryAffinityWeight,
		PriceRangeBoost:        defaultPriceRangeBoost,
		EcoThresholdBoost:      defaultEcoThresholdBoost,
		KeywordMatchWeight:     defaultKeywordMatchWeight,

		PriceLowFactor:     defaultPriceLowFactor,
		PriceHighFactor:    defaultPriceHighFactor,
		DefaultPriceRange:  domain.PriceRange{Min: 0, Max: defaultPriceRangeMax},
		EcoThresholdFactor: defaultEcoThresholdFactor,
		KeywordsPerProduct: defaultKeywordsPerProduct,
	}
}

// ageBand picks the band for age, or nil when the table is empty.
func (cfg Config) ageBand(age int) *AgeBand {
	for i := range cfg.AgeBands {
		b := &cfg.AgeBands[i]
		if b.MaxAge == 0 || age < b.MaxAge {
			return b
		}
	}
	return nil
}
