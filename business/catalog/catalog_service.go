package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ecoRecommend/business/ecoscore"
	"ecoRecommend/domain"
	"ecoRecommend/pkg/logger"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrInvalidDataset    = errors.New("invalid dataset")
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

const DefaultBatchSize = 500

// ProductWriter contract interface
type ProductWriter interface {
	// CreateBatch inserts products, skipping rows that conflict with existing
	// ones, and reports how many were inserted.
	CreateBatch(ctx context.Context, products []domain.Product) (int64, error)
}

type Service struct {
	writer    ProductWriter
	scorer    ecoscore.Provider
	batchSize int
}

// NewService builds an import service. scorer fills in eco-scores for rows
// that carry none; it may be nil.
func NewService(writer ProductWriter, scorer ecoscore.Provider, batchSize int) *Service {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Service{
		writer:    writer,
		scorer:    scorer,
		batchSize: batchSize,
	}
}

// FormatFromPath picks the dataset format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Import loads a .csv or .json dataset file into the catalog and returns
// the number of products inserted.
func (s *Service) Import(ctx context.Context, path string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	format, err := FormatFromPath(path)
	if err != nil {
		logger.Error("unsupported dataset file", "path", path, "error", err)
		return 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		logger.Error("failed to open dataset", "path", path, "error", err)
		return 0, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return s.ImportReader(ctx, f, format)
}

func (s *Service) ImportReader(ctx context.Context, r io.Reader, format Format) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var (
		records []record
		err     error
	)
	switch format {
	case FormatCSV:
		records, err = readCSV(r)
	case FormatJSON:
		records, err = readJSON(r)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		logger.Error("failed to read dataset", "format", format, "error", err)
		return 0, err
	}

	products := make([]domain.Product, 0, len(records))
	skipped := 0
	for _, rec := range records {
		product, ok, err := s.toProduct(ctx, rec)
		if err != nil {
			return 0, err
		}
		if !ok {
			skipped++
			continue
		}
		products = append(products, product)
	}

	imported, err := s.store(ctx, products)
	if err != nil {
		logger.Error("failed to store products", "error", err)
		return imported, err
	}

	logger.Info("catalog import finished",
		"format", format,
		"rows", len(records),
		"skipped", skipped,
		"imported", imported,
	)

	return imported, nil
}

// toProduct validates a record and resolves its eco-score. Rows without a
// title or a positive price are rejected.
func (s *Service) toProduct(ctx context.Context, rec record) (domain.Product, bool, error) {
	if rec.title == "" || rec.price <= 0 {
		return domain.Product{}, false, nil
	}

	product := domain.Product{
		Title:         rec.title,
		Price:         rec.price,
		Text:          rec.text,
		Category:      rec.category,
		MainCategory:  rec.mainCategory,
		AverageRating: rec.averageRating,
		Images:        rec.images,
		ASIN:          rec.asin,
		ParentASIN:    rec.parentASIN,
		Details:       rec.details,
		AgeTarget:     rec.ageTarget,
		GenderTarget:  rec.genderTarget,
	}

	if eco, ok := ecoscore.Resolve(rec.ecoScore, rec.mistralScore, rec.llamaScore); ok {
		product.EcoScore = domain.EcoScoreOf(eco)
		return product, true, nil
	}

	if s.scorer == nil {
		return product, true, nil
	}

	eco, err := s.scorer.Score(ctx, product)
	switch {
	case errors.Is(err, ecoscore.ErrNoScore):
	case err != nil:
		logger.Error("failed to score product", "title", product.Title, "error", err)
		return domain.Product{}, false, fmt.Errorf("score product %q: %w", product.Title, err)
	default:
		product.EcoScore = domain.EcoScoreOf(eco)
	}

	return product, true, nil
}

func (s *Service) store(ctx context.Context, products []domain.Product) (int, error) {
	var total int64
	for start := 0; start < len(products); start += s.batchSize {
		end := start + s.batchSize
		if end > len(products) {
			end = len(products)
		}

		n, err := s.writer.CreateBatch(ctx, products[start:end])
		if err != nil {
			return int(total), fmt.Errorf("create batch: %w", err)
		}
		total += n
	}
	return int(total), nil
}
