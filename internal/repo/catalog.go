package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/hariskhan14/bazario/internal/models"
)

func (r *GormRepo) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Create(product).Error
}

func (r *GormRepo) SaveProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Save(product).Error
}

func (r *GormRepo) ProductByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).
		Preload("Variants").
		Preload("Categories").
		First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) ProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).
		Preload("Variants").
		Preload("Categories").
		Where("slug = ?", slug).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) ListProducts(ctx context.Context, offset, limit int, activeOnly bool) ([]models.Product, int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	if err := q.Preload("Variants").
		Order("id ASC").Offset(offset).Limit(limit).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// DeleteProduct removes the product together with its variants and category
// links. Order items are untouched: they carry their own snapshots.
func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, id).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductVariant{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&product).Association("Categories").Clear(); err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
}

func (r *GormRepo) VariantByID(ctx context.Context, id uint) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.DB.WithContext(ctx).First(&variant, id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *GormRepo) SaveVariant(ctx context.Context, variant *models.ProductVariant) error {
	return r.DB.WithContext(ctx).Save(variant).Error
}

func (r *GormRepo) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.DB.WithContext(ctx).Create(category).Error
}
