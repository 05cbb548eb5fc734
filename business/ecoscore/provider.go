// Package ecoscore assigns eco-scores to catalog products that arrive
// without one. Every provider here is deterministic.
package ecoscore

import (
	"context"
	"errors"
	"fmt"

	"ecoRecommend/domain"
)

// ErrNoScore is returned by a provider that has nothing to say about a product.
var ErrNoScore = errors.New("no eco-score available")

const MaxScore = 100.0

// Provider scores a single product on the 0-100 eco scale.
type Provider interface {
	Score(ctx context.Context, product domain.Product) (float64, error)
}

// ProviderFunc adapts a plain function to Provider.
type ProviderFunc func(ctx context.Context, product domain.Product) (float64, error)

func (f ProviderFunc) Score(ctx context.Context, product domain.Product) (float64, error) {
	return f(ctx, product)
}

// Chain asks each provider in turn and returns the first score. Providers
// answering ErrNoScore are skipped; any other error stops the chain.
type Chain []Provider

func (c Chain) Score(ctx context.Context, product domain.Product) (float64, error) {
	for _, p := range c {
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("context error: %w", err)
		}

		score, err := p.Score(ctx, product)
		if errors.Is(err, ErrNoScore) {
			continue
		}
		if err != nil {
			return 0, err
		}
		return score, nil
	}
	return 0, ErrNoScore
}

// Existing returns the product's own eco-score, if it has one.
var Existing = ProviderFunc(func(_ context.Context, product domain.Product) (float64, error) {
	if !product.IsScored() {
		return 0, ErrNoScore
	}
	return product.Eco(), nil
})

// Resolve picks an eco-score from the columns a scored dataset carries: the
// published score first, then the mean of the two model scores, then
// whichever model score is present.
func Resolve(primary, mistral, llama *float64) (float64, bool) {
	switch {
	case primary != nil:
		return clamp(*primary), true
	case mistral != nil && llama != nil:
		return clamp((*mistral + *llama) / 2), true
	case mistral != nil:
		return clamp(*mistral), true
	case llama != nil:
		return clamp(*llama), true
	default:
		return 0, false
	}
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
