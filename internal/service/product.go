// Package service implements the cache coordinator: read-through and write-through between the in-memory
// indexes and the durable store.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode"

	catalogerrors "github.com/abgdnv/gocatalog/internal/errors"
	"github.com/abgdnv/gocatalog/internal/index"
	"github.com/abgdnv/gocatalog/internal/store"
	"github.com/abgdnv/gocatalog/internal/store/db"
	"github.com/abgdnv/gocatalog/pkg/messaging"
	"github.com/abgdnv/gocatalog/pkg/messaging/events"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ProductService defines the methods for managing products.
type ProductService interface {
	// Create normalises and persists a new product, then adds it to the index.
	Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// FindByID returns the product from the index, or loads it from the store and caches it.
	// Returns an EntityNotFoundError if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*ProductDto, error)
}

// Products implements ProductService on top of a binary search tree index.
type Products struct {
	store     store.ProductStore
	index     *index.Tree[ProductDto]
	fills     singleflight.Group
	publisher messaging.Publisher
	metrics   *cacheMetrics
	logger    *slog.Logger
}

// NewProductService creates a ProductService with an empty index.
func NewProductService(productStore store.ProductStore, publisher messaging.Publisher, logger *slog.Logger) *Products {
	return &Products{
		store:     productStore,
		index:     index.NewTree(productID),
		publisher: publisher,
		metrics:   newCacheMetrics(),
		logger:    logger.With("component", "product-cache"),
	}
}

func (s *Products) Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error) {
	price := roundPrice(product.Price)
	if !price.IsPositive() {
		return nil, catalogerrors.NewBusinessRule("Price %s rounds to zero.", strconv.FormatFloat(product.Price, 'f', -1, 64))
	}
	params := db.CreateProductParams{
		Name:        normaliseName(product.Name),
		Price:       price.InexactFloat64(),
		Description: product.Description,
	}

	created, err := s.store.CreateProduct(ctx, params)
	if err != nil {
		return nil, err
	}
	dto := toProductDto(created)
	s.index.InsertIfAbsent(dto)

	s.publish(ctx, events.ProductCreatedEvent{
		Carrier:   traceCarrier(ctx),
		ProductID: dto.ID,
		Name:      dto.Name,
		Price:     dto.Price,
		CreatedAt: time.Now().UTC(),
	})
	return &dto, nil
}

func (s *Products) FindByID(ctx context.Context, id int64) (*ProductDto, error) {
	if p, ok := s.index.Find(id); ok {
		s.metrics.hit(ctx, entityProduct)
		return &p, nil
	}
	s.metrics.miss(ctx, entityProduct)

	p, err := shared(ctx, &s.fills, strconv.FormatInt(id, 10), func(ctx context.Context) (ProductDto, error) {
		if p, ok := s.index.Find(id); ok {
			return p, nil
		}
		row, err := s.store.FindProductByID(ctx, id)
		if err != nil {
			if errors.Is(err, catalogerrors.ErrProductNotFound) {
				return ProductDto{}, catalogerrors.NewEntityNotFound("Product", id)
			}
			return ProductDto{}, err
		}
		dto := toProductDto(row)
		s.index.InsertIfAbsent(dto)
		s.logger.DebugContext(ctx, "Product cached", "product_id", id)
		return dto, nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Cached reports how many products the index holds.
func (s *Products) Cached() int {
	return s.index.Len()
}

func (s *Products) publish(ctx context.Context, event messaging.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event", "subject", event.Subject(), "error", err)
	}
}

// roundPrice rounds to cents, half to even, on the exact binary value of v.
// 2.675 is stored as 2.67499... and becomes 2.67, while the exact tie 0.125 becomes 0.12.
// Thirty digits are enough to tell a float64 tie from a near-tie.
func roundPrice(v float64) decimal.Decimal {
	return decimal.RequireFromString(strconv.FormatFloat(v, 'f', 30, 64)).RoundBank(2)
}

// normaliseName trims surrounding whitespace and title-cases every run of letters, so any
// non-letter (space, apostrophe, hyphen, digit) starts a new word: "o'neil" becomes "O'Neil".
// A Caser is stateful, so one is built per call.
func normaliseName(name string) string {
	caser := cases.Title(language.Und)
	trimmed := strings.TrimSpace(name)

	var b strings.Builder
	b.Grow(len(trimmed))
	start := -1
	for i, r := range trimmed {
		switch {
		case unicode.IsLetter(r):
			if start < 0 {
				start = i
			}
		case start >= 0:
			b.WriteString(caser.String(trimmed[start:i]))
			b.WriteRune(r)
			start = -1
		default:
			b.WriteRune(r)
		}
	}
	if start >= 0 {
		b.WriteString(caser.String(trimmed[start:]))
	}
	return b.String()
}
