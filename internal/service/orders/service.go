// Package orders drives the order lifecycle: the checkout transaction that
// turns a cart into a persisted order with decremented stock, and the
// admin-gated status updates that follow.
package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hariskhan14/bazario/internal/auth"
	"github.com/hariskhan14/bazario/internal/cart"
	"github.com/hariskhan14/bazario/internal/checkout"
	"github.com/hariskhan14/bazario/internal/events"
	"github.com/hariskhan14/bazario/internal/logging"
	"github.com/hariskhan14/bazario/internal/models"
	"github.com/hariskhan14/bazario/internal/pricing"
	"github.com/hariskhan14/bazario/internal/repo"
)

var (
	ErrUnauthorized      = errors.New("unauthorized")       // 401
	ErrForbidden         = errors.New("forbidden")          // 403
	ErrValidation        = errors.New("validation")         // 400
	ErrNotFound          = errors.New("not found")          // 404
	ErrEmptyCart         = errors.New("cart is empty")      // 400
	ErrInsufficientStock = errors.New("insufficient stock") // 409
)

type Service struct {
	Repo         *repo.GormRepo
	Rates        pricing.Rates
	NumberPrefix string
	Events       *events.Producer
}

func NewService(r *repo.GormRepo, rates pricing.Rates, numberPrefix string, producer *events.Producer) *Service {
	return &Service{Repo: r, Rates: rates, NumberPrefix: numberPrefix, Events: producer}
}

// Checkout validates fail-fast (session, then form, then cart) and persists
// the order atomically: header, snapshot line items and stock decrements all
// commit or none do. Totals are computed here, never taken from the client.
func (s *Service) Checkout(ctx context.Context, session *auth.Session, in checkout.Input, lines []cart.Line) (*models.Order, error) {
	if session == nil || session.UserID == 0 {
		return nil, fmt.Errorf("%w: must be logged in to checkout", ErrUnauthorized)
	}

	validated, err := checkout.Validate(in)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid checkout data", ErrValidation)
	}

	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	for i := range lines {
		if lines[i].VariantID == 0 || lines[i].ProductID == 0 {
			return nil, fmt.Errorf("%w: line %d missing product or variant", ErrValidation, i)
		}
		if lines[i].Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
		if lines[i].UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
		}
	}

	subtotal := pricing.Subtotal(cart.Items(lines))
	shippingCost := s.Rates.ShippingCost(validated.City, subtotal)
	tax := decimal.Zero
	total := pricing.GrandTotal(subtotal, shippingCost, tax)

	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, models.OrderItem{
			ProductID:    l.ProductID,
			ProductName:  l.ProductName,
			ProductSlug:  l.ProductSlug,
			ProductBrand: l.ProductBrand,
			ProductImage: l.ProductImage,
			VariantID:    l.VariantID,
			VariantSize:  l.VariantSize,
			VariantSKU:   l.VariantSKU,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
			LineTotal:    pricing.LineTotal(l.UnitPrice, l.Quantity),
		})
	}

	order := &models.Order{
		OrderNumber:   GenerateOrderNumber(s.NumberPrefix),
		UserID:        session.UserID,
		CustomerName:  validated.Name,
		CustomerEmail: validated.Email,
		CustomerPhone: validated.Phone,
		Address:       validated.Address,
		City:          validated.City,
		Area:          validated.Area,
		PostalCode:    validated.PostalCode,
		Notes:         validated.Notes,
		PaymentMethod: validated.PaymentMethod,
		PaymentStatus: models.PaymentStatusPending,
		Status:        models.OrderStatusPending,
		Subtotal:      subtotal,
		ShippingCost:  shippingCost,
		Tax:           tax,
		Total:         total,
		Items:         items,
	}

	if err := s.Repo.CreateOrder(ctx, order); err != nil {
		if errors.Is(err, repo.ErrInsufficientStock) {
			return nil, fmt.Errorf("%w", ErrInsufficientStock)
		}
		return nil, fmt.Errorf("failed to create order, please try again: %w", err)
	}

	s.publish(ctx, map[string]any{
		"type":         "order_created",
		"order_number": order.OrderNumber,
		"user_id":      order.UserID,
		"total":        order.Total.String(),
	})

	return order, nil
}

// OrderByNumber is scoped to the requesting user unless the session carries
// the admin role.
func (s *Service) OrderByNumber(ctx context.Context, session *auth.Session, number string) (*models.Order, error) {
	if session == nil {
		return nil, ErrUnauthorized
	}

	var (
		order *models.Order
		err   error
	)
	if session.IsAdmin() {
		order, err = s.Repo.OrderByNumberAny(ctx, number)
	} else {
		order, err = s.Repo.OrderByNumber(ctx, number, session.UserID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, number)
		}
		return nil, err
	}
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context, session *auth.Session, offset, limit int) ([]models.Order, int64, error) {
	if session == nil {
		return nil, 0, ErrUnauthorized
	}
	return s.Repo.ListOrdersByUser(ctx, session.UserID, offset, limit)
}

func (s *Service) ListAllOrders(ctx context.Context, session *auth.Session, offset, limit int) ([]models.Order, int64, error) {
	if !session.IsAdmin() {
		return nil, 0, ErrForbidden
	}
	return s.Repo.ListOrders(ctx, offset, limit)
}

// UpdateStatus sets the fulfillment status. Any value may follow any other;
// human operators handle out-of-sequence corrections. Stock, totals and line
// items are never touched here.
func (s *Service) UpdateStatus(ctx context.Context, session *auth.Session, orderID uint, status models.OrderStatus) error {
	if !session.IsAdmin() {
		return fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	if !status.Valid() {
		return fmt.Errorf("%w: unknown order status %q", ErrValidation, status)
	}

	if err := s.Repo.SetOrderStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return err
	}

	s.publish(ctx, map[string]any{
		"type":     "order_status_updated",
		"order_id": orderID,
		"status":   string(status),
	})
	return nil
}

// UpdatePaymentStatus sets the payment axis, independent of fulfillment.
func (s *Service) UpdatePaymentStatus(ctx context.Context, session *auth.Session, orderID uint, status models.PaymentStatus) error {
	if !session.IsAdmin() {
		return fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	if !status.Valid() {
		return fmt.Errorf("%w: unknown payment status %q", ErrValidation, status)
	}

	if err := s.Repo.SetPaymentStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return err
	}

	s.publish(ctx, map[string]any{
		"type":           "order_payment_status_updated",
		"order_id":       orderID,
		"payment_status": string(status),
	})
	return nil
}

func (s *Service) publish(ctx context.Context, event map[string]any) {
	key, _ := event["order_number"].(string)
	if err := s.Events.Publish(ctx, events.TopicOrderEvents, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish failed", "error", err)
	}
}
