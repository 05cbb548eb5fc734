package rest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ecoRecommend/business/recommendation"
	"ecoRecommend/domain"
	"ecoRecommend/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const (
	defaultAge     = 25
	maxRequestBody = 10 << 20
)

type (
	RecommendationHandler struct {
		validate *validator.Validate
		service  RecommendationService
		engine   EnvelopeProcessor
		timeout  time.Duration
	}

	RecommendationService interface {
		ColdStart(ctx context.Context, age int, gender string, limit int) ([]domain.ScoredProduct, error)
		Personalized(ctx context.Context, userID uint, limit int) ([]domain.ScoredProduct, error)
		DebugPersonalized(ctx context.Context, userID uint, limit int) ([]domain.DebugRecommendation, error)
		Search(ctx context.Context, query string, userID *uint, limit int) ([]domain.ScoredProduct, error)
	}

	// EnvelopeProcessor ranks a self-contained request envelope.
	EnvelopeProcessor interface {
		Process(data []byte) ([]domain.ScoredProduct, error)
	}

	ColdStartQuery struct {
		Age    int    `query:"age" validate:"gte=0,lte=150"`
		Gender string `query:"gender" validate:"max=32"`
		Limit  int    `query:"limit" validate:"gte=0"`
	}

	PersonalizedQuery struct {
		Limit int `query:"limit" validate:"gte=0"`
	}

	SearchQuery struct {
		Q     string `query:"q" validate:"max=256"`
		Limit int    `query:"limit" validate:"gte=0"`
	}
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// EnvelopeError is the error body of the envelope endpoint.
type EnvelopeError struct {
	Error string `json:"error"`
}

func NewRecommendationHandler(service RecommendationService, engine EnvelopeProcessor) *RecommendationHandler {
	return &RecommendationHandler{
		validate: validator.New(),
		service:  service,
		engine:   engine,
		timeout:  10 * time.Second,
	}
}

func (h *RecommendationHandler) ColdStart(c echo.Context) error {
	var q ColdStartQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if c.QueryParam("age") == "" {
		q.Age = defaultAge
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.service.ColdStart(ctx, q.Age, q.Gender, q.Limit)
	if err != nil {
		logger.Error("failed to get cold start recommendations", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

func (h *RecommendationHandler) Personalized(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid user id"})
	}

	var q PersonalizedQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.service.Personalized(ctx, uint(userID), q.Limit)
	if err != nil {
		logger.Error("failed to get personalized recommendations", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

func (h *RecommendationHandler) DebugPersonalized(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid user id"})
	}

	var q PersonalizedQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.service.DebugPersonalized(ctx, uint(userID), q.Limit)
	if err != nil {
		logger.Error("failed to debug personalized recommendations", "user_id", userID, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

func (h *RecommendationHandler) Search(c echo.Context) error {
	var q SearchQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var userID *uint
	if raw := strings.TrimSpace(c.QueryParam("user_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid user id"})
		}
		uid := uint(id)
		userID = &uid
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.service.Search(ctx, q.Q, userID, q.Limit)
	if err != nil {
		logger.Error("failed to search products", "query", q.Q, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

// Envelope ranks the products carried in the request body. The response is
// the bare list of scored products.
func (h *RecommendationHandler) Envelope(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxRequestBody))
	if err != nil {
		return c.JSON(http.StatusBadRequest, EnvelopeError{Error: err.Error()})
	}

	recs, err := h.engine.Process(body)
	if err != nil {
		if errors.Is(err, recommendation.ErrMalformedRequest) {
			return c.JSON(http.StatusBadRequest, EnvelopeError{Error: err.Error()})
		}
		logger.Error("failed to process recommendation envelope", "error", err)
		return c.JSON(http.StatusInternalServerError, EnvelopeError{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, recs)
}

func Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK("ok"))
}
