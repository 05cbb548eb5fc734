package ecoscore

import (
	"context"
	"fmt"
	"strings"

	"ecoRecommend/domain"
)

// KeywordWeight is the score a keyword adds when it appears in a product's
// title or description.
type KeywordWeight struct {
	Keyword string
	Weight  float64
}

var DefaultKeywordWeights = []KeywordWeight{
	{"organic", 15},
	{"recycled", 12},
	{"sustainable", 10},
	{"biodegradable", 15},
	{"eco-friendly", 10},
	{"bamboo", 8},
	{"solar", 12},
	{"zero-waste", 10},
	{"compostable", 12},
	{"renewable", 8},
	{"natural", 5},
	{"plant-based", 8},
	{"carbon-neutral", 15},
	{"bpa-free", 5},
	{"reusable", 8},
	{"hemp", 6},
	{"cork", 6},
	{"wheat straw", 8},
	{"coconut", 4},
	{"jute", 6},
	{"linen", 4},
}

// KeywordProvider scores a product by summing the weights of the eco
// keywords found in its title and text, capped at MaxScore. Each keyword
// counts once.
type KeywordProvider struct {
	weights []KeywordWeight
}

func NewKeywordProvider(weights []KeywordWeight) *KeywordProvider {
	if weights == nil {
		weights = DefaultKeywordWeights
	}
	return &KeywordProvider{weights: weights}
}

func (p *KeywordProvider) Score(ctx context.Context, product domain.Product) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	title := strings.ToLower(product.Title)
	text := strings.ToLower(product.Text)

	var score float64
	for _, kw := range p.weights {
		if strings.Contains(title, kw.Keyword) || strings.Contains(text, kw.Keyword) {
			score += kw.Weight
		}
	}

	return clamp(score), nil
}
