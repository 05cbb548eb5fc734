package recommendation

import (
	"testing"

	"ecoRecommend/domain"

	"github.com/stretchr/testify/assert"
)

func TestDemographicScore(t *testing.T) {
	r := NewRanker(DefaultConfig())

	tests := []struct {
		name    string
		product domain.Product
		age     int
		gender  string
		want    float64
	}{
		{
			name: "young male electronics with portable text",
			product: domain.Product{
				Category: "electronics", Title: "Solar Charger", Text: "portable travel charger",
				Price: 40, EcoScore: domain.EcoScoreOf(50),
			},
			age: 20, gender: "male",
			want: 50,
		},
		{
			name:    "young band matches title keyword",
			product: domain.Product{Category: "misc", Title: "Recycled Gadget Case"},
			age:     18, gender: "",
			want: 15,
		},
		{
			name:    "middle band ignores title",
			product: domain.Product{Category: "misc", Title: "Kitchen Knife"},
			age:     30, gender: "",
			want: 0,
		},
		{
			name:    "middle band female home cooking",
			product: domain.Product{Category: "Home & Kitchen", Text: "Great for COOKING"},
			age:     30, gender: "female",
			want: 15 + 5 + 8,
		},
		{
			name:    "age 25 falls in middle band",
			product: domain.Product{Category: "fashion"},
			age:     25, gender: "",
			want: 0,
		},
		{
			name:    "older band wellness",
			product: domain.Product{Category: "Health & Wellness", Text: "comfort pillow"},
			age:     40, gender: "",
			want: 20,
		},
		{
			name:    "female personal care in title",
			product: domain.Product{Category: "misc", Title: "Personal Care Kit"},
			age:     50, gender: "female",
			want: 8,
		},
		{
			name:    "gender match is case sensitive",
			product: domain.Product{Category: "tools"},
			age:     50, gender: "Male",
			want: 0,
		},
		{
			name:    "unscored product has no eco base",
			product: domain.Product{Category: "sports"},
			age:     20, gender: "male",
			want: 15 + 8,
		},
		{
			name:    "negative eco score clamps to zero",
			product: domain.Product{Category: "misc", EcoScore: domain.EcoScoreOf(-100)},
			age:     30, gender: "",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.DemographicScore(tt.product, tt.age, tt.gender)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestPersonalizedScore(t *testing.T) {
	r := NewRanker(DefaultConfig())

	profile := domain.PreferenceProfile{
		CategoryAffinity:  map[string]int{"Home": 2},
		PriceRange:        domain.PriceRange{Min: 10, Max: 50},
		EcoScoreThreshold: 40,
		Keywords:          []string{"bamboo", "bamboo", "steel"},
	}

	product := domain.Product{
		Category: "Home",
		Text:     "Bamboo cutting board",
		Price:    20,
		EcoScore: domain.EcoScoreOf(50),
	}

	// demographic: 50*0.6 + 15 (home) = 45, weighted 0.4 -> 18
	// category 2*8 = 16, price 20, eco 15, keywords 2*1.5 = 3
	got := r.PersonalizedScore(product, profile, 30, "")
	assert.InDelta(t, 72.0, got, 1e-9)
}

func TestPersonalizedScore_PriceBoundsInclusive(t *testing.T) {
	r := NewRanker(DefaultConfig())
	profile := r.DefaultProfile()
	profile.PriceRange = domain.PriceRange{Min: 10, Max: 50}
	profile.EcoScoreThreshold = 1000

	atMin := r.PersonalizedScore(domain.Product{Price: 10}, profile, 30, "")
	atMax := r.PersonalizedScore(domain.Product{Price: 50}, profile, 30, "")
	above := r.PersonalizedScore(domain.Product{Price: 50.01}, profile, 30, "")

	assert.InDelta(t, 20.0, atMin, 1e-9)
	assert.InDelta(t, 20.0, atMax, 1e-9)
	assert.InDelta(t, 0.0, above, 1e-9)
}

func TestPersonalizedScore_CategoryKeyIsExact(t *testing.T) {
	r := NewRanker(DefaultConfig())
	profile := r.DefaultProfile()
	profile.CategoryAffinity["Home"] = 3
	profile.EcoScoreThreshold = 1000
	profile.PriceRange = domain.PriceRange{Min: 1, Max: 2}

	assert.InDelta(t, 24.0, r.PersonalizedScore(domain.Product{Category: "Home", Price: 100}, profile, 60, ""), 1e-9)
	assert.InDelta(t, 0.0, r.PersonalizedScore(domain.Product{Category: "home", Price: 100}, profile, 60, ""), 1e-9)
}

func TestScoresNeverNegative(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EcoWeight = 5
	r := NewRanker(cfg)

	profile := domain.PreferenceProfile{
		CategoryAffinity: map[string]int{},
		PriceRange:       domain.PriceRange{Min: 0, Max: 0},
		// threshold above every score so only the negative base remains
		EcoScoreThreshold: 1e9,
	}

	for _, eco := range []float64{-1000, -1, 0, 1, 100} {
		p := domain.Product{Category: "misc", Price: 5, EcoScore: domain.EcoScoreOf(eco)}
		for _, age := range []int{0, 24, 25, 39, 40, 99} {
			for _, gender := range []string{"", "male", "female", "other"} {
				assert.GreaterOrEqual(t, r.DemographicScore(p, age, gender), 0.0)
				assert.GreaterOrEqual(t, r.PersonalizedScore(p, profile, age, gender), 0.0)
			}
		}
	}
}
