package recommendation

import (
	"context"
	"fmt"
	"time"

	"ecoRecommend/domain"
	"ecoRecommend/pkg/config"
	"ecoRecommend/pkg/logger"
	"ecoRecommend/pkg/metrics"
)

const (
	TypeColdStart    = "cold_start"
	TypePersonalized = "personalized"
	TypeSearch       = "search"
)

// ---- Repository interfaces ----

type ProductRepository interface {
	GetProducts(ctx context.Context, limit int) ([]domain.Product, error)
	SearchProducts(ctx context.Context, query string, limit int) ([]domain.Product, error)
}

type UserRepository interface {
	// GetUser returns nil, nil for an unknown user.
	GetUser(ctx context.Context, id uint) (*domain.User, error)
}

type ActivityRepository interface {
	GetCartItems(ctx context.Context, userID uint) ([]domain.CartItem, error)
	GetWishlistItems(ctx context.Context, userID uint) ([]domain.WishlistItem, error)
	GetViewedProducts(ctx context.Context, userID uint, limit int) ([]domain.Product, error)
}

// ---- Service ----

type Service struct {
	productRepo  ProductRepository
	userRepo     UserRepository
	activityRepo ActivityRepository
	ranker       *Ranker
	limits       config.RecommendationConfig
}

func NewService(
	productRepo ProductRepository,
	userRepo UserRepository,
	activityRepo ActivityRepository,
	ranker *Ranker,
	limits config.RecommendationConfig,
) *Service {
	return &Service{
		productRepo:  productRepo,
		userRepo:     userRepo,
		activityRepo: activityRepo,
		ranker:       ranker,
		limits:       limits,
	}
}

// ColdStart recommends products for a user known only by age and gender.
func (s *Service) ColdStart(ctx context.Context, age int, gender string, limit int) ([]domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	defer observe(TypeColdStart, time.Now())

	limit = s.clampLimit(limit, s.limits.DefaultColdStartLimit)

	products, err := s.productRepo.GetProducts(ctx, s.limits.ColdStartPool)
	if err != nil {
		logger.Error("failed to load cold start candidates", "error", err)
		return nil, fmt.Errorf("load products: %w", err)
	}

	recs := s.ranker.RankColdStart(products, age, gender, limit)

	logger.Debug("recommend_cold_start",
		"trace_id", TraceIDFromContext(ctx),
		"age", age,
		"gender", gender,
		"limit", limit,
		"candidate_count", len(products),
		"result_count", len(recs),
	)
	metrics.RecommendResults.WithLabelValues(TypeColdStart).Add(float64(len(recs)))

	return recs, nil
}

// Personalized recommends products from the user's cart, wishlist and view
// history. An unknown user gets an empty list.
func (s *Service) Personalized(ctx context.Context, userID uint, limit int) ([]domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	defer observe(TypePersonalized, time.Now())

	limit = s.clampLimit(limit, s.limits.DefaultPersonalizedLimit)

	user, err := s.userRepo.GetUser(ctx, userID)
	if err != nil {
		logger.Error("failed to load user", "user_id", userID, "error", err)
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return []domain.ScoredProduct{}, nil
	}

	activity, err := s.loadActivity(ctx, userID, s.limits.ViewedWindow)
	if err != nil {
		return nil, err
	}

	profile := s.ranker.ExtractPreferences(activity.cart, activity.wishlist, activity.viewed)

	products, err := s.productRepo.GetProducts(ctx, s.limits.PersonalizedPool)
	if err != nil {
		logger.Error("failed to load personalized candidates", "error", err)
		return nil, fmt.Errorf("load products: %w", err)
	}

	recs := s.ranker.RankPersonalized(products, profile, activity.cart, activity.wishlist, user.Age, user.Gender, limit)

	logger.Debug("recommend_personalized",
		"trace_id", TraceIDFromContext(ctx),
		"user_id", userID,
		"limit", limit,
		"activity_count", len(activity.cart)+len(activity.wishlist)+len(activity.viewed),
		"candidate_count", len(products),
		"result_count", len(recs),
	)
	metrics.RecommendResults.WithLabelValues(TypePersonalized).Add(float64(len(recs)))

	return recs, nil
}

// DebugPersonalized returns the score components behind Personalized for
// the top candidates, owned products included.
func (s *Service) DebugPersonalized(ctx context.Context, userID uint, limit int) ([]domain.DebugRecommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	limit = s.clampLimit(limit, s.limits.DefaultPersonalizedLimit)

	user, err := s.userRepo.GetUser(ctx, userID)
	if err != nil {
		logger.Error("failed to load user", "user_id", userID, "error", err)
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return []domain.DebugRecommendation{}, nil
	}

	activity, err := s.loadActivity(ctx, userID, s.limits.ViewedWindow)
	if err != nil {
		return nil, err
	}

	profile := s.ranker.ExtractPreferences(activity.cart, activity.wishlist, activity.viewed)

	products, err := s.productRepo.GetProducts(ctx, s.limits.PersonalizedPool)
	if err != nil {
		logger.Error("failed to load personalized candidates", "error", err)
		return nil, fmt.Errorf("load products: %w", err)
	}

	out := s.ranker.ExplainPersonalized(products, profile, activity.cart, activity.wishlist, user.Age, user.Gender, limit)

	logger.Debug("recommend_personalized_debug",
		"trace_id", TraceIDFromContext(ctx),
		"user_id", userID,
		"limit", limit,
		"candidate_count", len(products),
		"profile", profile,
	)

	return out, nil
}

// Search runs a catalog search and ranks the results. A nil userID orders
// by eco-score. An unknown user gets the results in storage order.
func (s *Service) Search(ctx context.Context, query string, userID *uint, limit int) ([]domain.ScoredProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	defer observe(TypeSearch, time.Now())

	limit = s.clampLimit(limit, s.limits.DefaultSearchLimit)

	products, err := s.productRepo.SearchProducts(ctx, query, limit*2)
	if err != nil {
		logger.Error("failed to search products", "query", query, "error", err)
		return nil, fmt.Errorf("search products: %w", err)
	}

	recs, err := s.rankSearch(ctx, products, userID, limit)
	if err != nil {
		return nil, err
	}

	logger.Debug("recommend_search",
		"trace_id", TraceIDFromContext(ctx),
		"query", query,
		"personalized", userID != nil,
		"limit", limit,
		"candidate_count", len(products),
		"result_count", len(recs),
	)
	metrics.RecommendResults.WithLabelValues(TypeSearch).Add(float64(len(recs)))

	return recs, nil
}

func (s *Service) rankSearch(ctx context.Context, products []domain.Product, userID *uint, limit int) ([]domain.ScoredProduct, error) {
	if userID == nil {
		return s.ranker.RankSearch(products, nil, 0, "", limit), nil
	}

	user, err := s.userRepo.GetUser(ctx, *userID)
	if err != nil {
		logger.Error("failed to load user", "user_id", *userID, "error", err)
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		out := make([]domain.ScoredProduct, 0, len(products))
		for _, p := range products {
			out = append(out, domain.ScoredProduct{Product: p})
		}
		return topN(out, limit), nil
	}

	activity, err := s.loadActivity(ctx, *userID, s.limits.SearchViewedWindow)
	if err != nil {
		return nil, err
	}

	profile := s.ranker.ExtractPreferences(activity.cart, activity.wishlist, activity.viewed)

	return s.ranker.RankSearch(products, &profile, user.Age, user.Gender, limit), nil
}

type activitySnapshot struct {
	cart     []domain.CartItem
	wishlist []domain.WishlistItem
	viewed   []domain.Product
}

func (s *Service) loadActivity(ctx context.Context, userID uint, viewedLimit int) (activitySnapshot, error) {
	cart, err := s.activityRepo.GetCartItems(ctx, userID)
	if err != nil {
		logger.Error("failed to load cart items", "user_id", userID, "error", err)
		return activitySnapshot{}, fmt.Errorf("load cart items: %w", err)
	}

	wishlist, err := s.activityRepo.GetWishlistItems(ctx, userID)
	if err != nil {
		logger.Error("failed to load wishlist items", "user_id", userID, "error", err)
		return activitySnapshot{}, fmt.Errorf("load wishlist items: %w", err)
	}

	viewed, err := s.activityRepo.GetViewedProducts(ctx, userID, viewedLimit)
	if err != nil {
		logger.Error("failed to load viewed products", "user_id", userID, "error", err)
		return activitySnapshot{}, fmt.Errorf("load viewed products: %w", err)
	}

	return activitySnapshot{cart: cart, wishlist: wishlist, viewed: viewed}, nil
}

// clampLimit applies the default for a non-positive limit and caps it at MaxLimit.
func (s *Service) clampLimit(limit, def int) int {
	if limit <= 0 {
		limit = def
	}
	if s.limits.MaxLimit > 0 && limit > s.limits.MaxLimit {
		limit = s.limits.MaxLimit
	}
	return limit
}

func observe(recoType string, start time.Time) {
	metrics.RecommendRequests.WithLabelValues(recoType).Inc()
	metrics.RecommendLatency.WithLabelValues(recoType).Observe(time.Since(start).Seconds())
}
