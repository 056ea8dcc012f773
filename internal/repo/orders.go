package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/hariskhan14/bazario/internal/models"
)

// CreateOrder persists the order header, its line items and the stock
// decrements as one transaction. The decrement carries a floor check: the
// UPDATE only matches while enough stock remains, so two concurrent
// checkouts on the same variant serialize on the row and the loser rolls
// back instead of overselling.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for _, it := range order.Items {
			res := tx.Model(&models.ProductVariant{}).
				Where("id = ? AND stock >= ?", it.VariantID, it.Quantity).
				Update("stock", gorm.Expr("stock - ?", it.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrInsufficientStock
			}
		}
		return nil
	})
}

// OrderByNumber fetches an order scoped to its owner.
func (r *GormRepo) OrderByNumber(ctx context.Context, number string, userID uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("order_number = ? AND user_id = ?", number, userID).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// OrderByNumberAny is the admin-facing, unscoped lookup.
func (r *GormRepo) OrderByNumberAny(ctx context.Context, number string) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("order_number = ?", number).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrdersByUser(ctx context.Context, userID uint, offset, limit int) ([]models.Order, int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, offset, limit int) ([]models.Order, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	if err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Order("created_at DESC").Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// SetOrderStatus updates the fulfillment axis only. Single-field update;
// payment status, totals and items are untouched.
func (r *GormRepo) SetOrderStatus(ctx context.Context, orderID uint, status models.OrderStatus) error {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetPaymentStatus updates the payment axis only.
func (r *GormRepo) SetPaymentStatus(ctx context.Context, orderID uint, status models.PaymentStatus) error {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("payment_status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
