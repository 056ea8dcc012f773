// Package catalog owns the admin product workflows and the public catalog
// reads. Variant prices are authoritative; a product's base price is only a
// derived display fallback.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hariskhan14/bazario/internal/auth"
	"github.com/hariskhan14/bazario/internal/events"
	"github.com/hariskhan14/bazario/internal/logging"
	"github.com/hariskhan14/bazario/internal/models"
	"github.com/hariskhan14/bazario/internal/repo"
	"github.com/hariskhan14/bazario/internal/search"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrForbidden  = errors.New("forbidden")  // 403
	ErrNotFound   = errors.New("not found")  // 404
)

type Service struct {
	Repo   *repo.GormRepo
	Search *search.Indexer
	Events *events.Producer
}

func NewService(r *repo.GormRepo, indexer *search.Indexer, producer *events.Producer) *Service {
	return &Service{Repo: r, Search: indexer, Events: producer}
}

type VariantInput struct {
	Size     string          `json:"size"`
	Price    decimal.Decimal `json:"price"`
	SKU      string          `json:"sku,omitempty"`
	Stock    int             `json:"stock"`
	IsActive *bool           `json:"is_active,omitempty"`
}

type CreateProductInput struct {
	Name        string           `json:"name"`
	Slug        string           `json:"slug,omitempty"`
	Brand       string           `json:"brand"`
	Gender      models.Gender    `json:"gender,omitempty"`
	Description string           `json:"description,omitempty"`
	BasePrice   *decimal.Decimal `json:"base_price,omitempty"`
	SalePrice   *decimal.Decimal `json:"sale_price,omitempty"`
	MainImage   string           `json:"main_image,omitempty"`
	Images      []string         `json:"images,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
	IsFeatured  bool             `json:"is_featured,omitempty"`
	CategoryIDs []uint           `json:"category_ids,omitempty"`
	Variants    []VariantInput   `json:"variants"`
}

func (s *Service) CreateProduct(ctx context.Context, session *auth.Session, in CreateProductInput) (*models.Product, error) {
	if !session.IsAdmin() {
		return nil, fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	if in.Name == "" || in.Brand == "" {
		return nil, fmt.Errorf("%w: name and brand are required", ErrValidation)
	}
	if len(in.Variants) == 0 {
		return nil, fmt.Errorf("%w: at least one variant is required", ErrValidation)
	}
	if !in.Gender.Valid() {
		return nil, fmt.Errorf("%w: unknown gender %q", ErrValidation, in.Gender)
	}

	variants := make([]models.ProductVariant, 0, len(in.Variants))
	for _, v := range in.Variants {
		if v.Size == "" {
			return nil, fmt.Errorf("%w: variant size is required", ErrValidation)
		}
		if v.Price.IsNegative() {
			return nil, fmt.Errorf("%w: variant price must be >= 0", ErrValidation)
		}
		if v.Stock < 0 {
			return nil, fmt.Errorf("%w: variant stock must be >= 0", ErrValidation)
		}
		sku := v.SKU
		if sku == "" {
			sku = GenerateSKU(in.Brand, in.Name, v.Size)
		}
		active := true
		if v.IsActive != nil {
			active = *v.IsActive
		}
		variants = append(variants, models.ProductVariant{
			Size:     v.Size,
			Price:    v.Price,
			SKU:      sku,
			Stock:    v.Stock,
			IsActive: active,
		})
	}

	slug := in.Slug
	if slug == "" {
		slug = Slugify(in.Name)
	}

	basePrice := minActivePrice(variants)
	if in.BasePrice != nil {
		basePrice = *in.BasePrice
	}

	categories := make([]models.Category, 0, len(in.CategoryIDs))
	for _, id := range in.CategoryIDs {
		categories = append(categories, models.Category{ID: id})
	}

	product := &models.Product{
		Name:        in.Name,
		Slug:        slug,
		Brand:       in.Brand,
		Gender:      in.Gender,
		Description: in.Description,
		BasePrice:   basePrice,
		SalePrice:   in.SalePrice,
		MainImage:   in.MainImage,
		Images:      in.Images,
		Tags:        in.Tags,
		IsActive:    true,
		IsFeatured:  in.IsFeatured,
		Variants:    variants,
		Categories:  categories,
	}

	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, product, "product_created")
	return product, nil
}

type PatchProductInput struct {
	Name        *string          `json:"name,omitempty"`
	Slug        *string          `json:"slug,omitempty"`
	Brand       *string          `json:"brand,omitempty"`
	Gender      *models.Gender   `json:"gender,omitempty"`
	Description *string          `json:"description,omitempty"`
	BasePrice   *decimal.Decimal `json:"base_price,omitempty"`
	SalePrice   *decimal.Decimal `json:"sale_price,omitempty"`
	MainImage   *string          `json:"main_image,omitempty"`
	Images      []string         `json:"images,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
	IsFeatured  *bool            `json:"is_featured,omitempty"`
}

func (s *Service) PatchProduct(ctx context.Context, session *auth.Session, id uint, in PatchProductInput) (*models.Product, error) {
	if !session.IsAdmin() {
		return nil, fmt.Errorf("%w: admin role required", ErrForbidden)
	}

	product, err := s.Repo.ProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Slug != nil {
		product.Slug = *in.Slug
	}
	if in.Brand != nil {
		product.Brand = *in.Brand
	}
	if in.Gender != nil {
		if !in.Gender.Valid() {
			return nil, fmt.Errorf("%w: unknown gender %q", ErrValidation, *in.Gender)
		}
		product.Gender = *in.Gender
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.SalePrice != nil {
		product.SalePrice = in.SalePrice
	}
	if in.MainImage != nil {
		product.MainImage = *in.MainImage
	}
	if in.Images != nil {
		product.Images = in.Images
	}
	if in.Tags != nil {
		product.Tags = in.Tags
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	if in.IsFeatured != nil {
		product.IsFeatured = *in.IsFeatured
	}

	if in.BasePrice != nil {
		product.BasePrice = *in.BasePrice
	} else if len(product.Variants) > 0 {
		product.BasePrice = minActivePrice(product.Variants)
	}

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, product, "product_updated")
	return product, nil
}

func (s *Service) DeleteProduct(ctx context.Context, session *auth.Session, id uint) error {
	if !session.IsAdmin() {
		return fmt.Errorf("%w: admin role required", ErrForbidden)
	}

	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return err
	}

	if err := s.Search.DeleteProduct(ctx, id); err != nil {
		logging.FromContext(ctx).Error("search deindex failed", "product_id", id, "error", err)
	}
	if err := s.Events.Publish(ctx, events.TopicProductEvents, fmt.Sprint(id), map[string]any{
		"type":       "product_deleted",
		"product_id": id,
	}); err != nil {
		logging.FromContext(ctx).Error("kafka publish failed", "error", err)
	}
	return nil
}

func (s *Service) AddVariant(ctx context.Context, session *auth.Session, productID uint, in VariantInput) (*models.ProductVariant, error) {
	if !session.IsAdmin() {
		return nil, fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	if in.Size == "" {
		return nil, fmt.Errorf("%w: variant size is required", ErrValidation)
	}
	if in.Price.IsNegative() || in.Stock < 0 {
		return nil, fmt.Errorf("%w: price and stock must be >= 0", ErrValidation)
	}

	product, err := s.Repo.ProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
		}
		return nil, err
	}

	sku := in.SKU
	if sku == "" {
		sku = GenerateSKU(product.Brand, product.Name, in.Size)
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	variant := &models.ProductVariant{
		ProductID: productID,
		Size:      in.Size,
		Price:     in.Price,
		SKU:       sku,
		Stock:     in.Stock,
		IsActive:  active,
	}
	if err := s.Repo.SaveVariant(ctx, variant); err != nil {
		return nil, err
	}

	if err := s.recomputeBasePrice(ctx, productID); err != nil {
		return nil, err
	}
	return variant, nil
}

type PatchVariantInput struct {
	Size     *string          `json:"size,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Stock    *int             `json:"stock,omitempty"`
	IsActive *bool            `json:"is_active,omitempty"`
}

func (s *Service) PatchVariant(ctx context.Context, session *auth.Session, variantID uint, in PatchVariantInput) (*models.ProductVariant, error) {
	if !session.IsAdmin() {
		return nil, fmt.Errorf("%w: admin role required", ErrForbidden)
	}

	variant, err := s.Repo.VariantByID(ctx, variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: variant %d", ErrNotFound, variantID)
		}
		return nil, err
	}

	if in.Size != nil {
		variant.Size = *in.Size
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
		}
		variant.Price = *in.Price
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, fmt.Errorf("%w: stock must be >= 0", ErrValidation)
		}
		variant.Stock = *in.Stock
	}
	if in.IsActive != nil {
		variant.IsActive = *in.IsActive
	}

	if err := s.Repo.SaveVariant(ctx, variant); err != nil {
		return nil, err
	}

	if err := s.recomputeBasePrice(ctx, variant.ProductID); err != nil {
		return nil, err
	}
	return variant, nil
}

// Summary is the public listing projection: starting price is the minimum
// active variant price, and the stock badge reflects the advisory counter.
type Summary struct {
	ID            uint             `json:"id"`
	Name          string           `json:"name"`
	Slug          string           `json:"slug"`
	Brand         string           `json:"brand"`
	MainImage     string           `json:"main_image"`
	StartingPrice decimal.Decimal  `json:"starting_price"`
	SalePrice     *decimal.Decimal `json:"sale_price,omitempty"`
	IsFeatured    bool             `json:"is_featured"`
	InStock       bool             `json:"in_stock"`
}

func (s *Service) ListProducts(ctx context.Context, offset, limit int) ([]Summary, int64, error) {
	products, total, err := s.Repo.ListProducts(ctx, offset, limit, true)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]Summary, 0, len(products))
	for i := range products {
		summaries = append(summaries, summarize(&products[i]))
	}
	return summaries, total, nil
}

func (s *Service) ProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	product, err := s.Repo.ProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, slug)
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, slug)
	}
	return product, nil
}

func (s *Service) recomputeBasePrice(ctx context.Context, productID uint) error {
	product, err := s.Repo.ProductByID(ctx, productID)
	if err != nil {
		return err
	}
	if len(product.Variants) == 0 {
		return nil
	}
	product.BasePrice = minActivePrice(product.Variants)
	return s.Repo.SaveProduct(ctx, product)
}

func (s *Service) afterWrite(ctx context.Context, product *models.Product, eventType string) {
	if err := s.Search.IndexProduct(ctx, product); err != nil {
		logging.FromContext(ctx).Error("search index failed", "product_id", product.ID, "error", err)
	}
	if err := s.Events.Publish(ctx, events.TopicProductEvents, fmt.Sprint(product.ID), map[string]any{
		"type":       eventType,
		"product_id": product.ID,
		"name":       product.Name,
	}); err != nil {
		logging.FromContext(ctx).Error("kafka publish failed", "error", err)
	}
}

func summarize(p *models.Product) Summary {
	inStock := false
	for _, v := range p.Variants {
		if v.IsActive && v.InStock() {
			inStock = true
			break
		}
	}
	price := p.BasePrice
	if min := minActivePrice(p.Variants); !min.IsZero() || hasActive(p.Variants) {
		price = min
	}
	return Summary{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		Brand:         p.Brand,
		MainImage:     p.MainImage,
		StartingPrice: price,
		SalePrice:     p.SalePrice,
		IsFeatured:    p.IsFeatured,
		InStock:       inStock,
	}
}

func hasActive(variants []models.ProductVariant) bool {
	for _, v := range variants {
		if v.IsActive {
			return true
		}
	}
	return false
}

// minActivePrice is the displayed "starting at" price: the cheapest active
// variant, falling back to the cheapest overall when none are active.
func minActivePrice(variants []models.ProductVariant) decimal.Decimal {
	var min decimal.Decimal
	found := false
	for _, v := range variants {
		if !v.IsActive {
			continue
		}
		if !found || v.Price.LessThan(min) {
			min = v.Price
			found = true
		}
	}
	if !found {
		for _, v := range variants {
			if !found || v.Price.LessThan(min) {
				min = v.Price
				found = true
			}
		}
	}
	return min
}
