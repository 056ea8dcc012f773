package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Gender string

const (
	GenderMen    Gender = "MEN"
	GenderWomen  Gender = "WOMEN"
	GenderUnisex Gender = "UNISEX"
)

func (g Gender) Valid() bool {
	switch g {
	case "", GenderMen, GenderWomen, GenderUnisex:
		return true
	}
	return false
}

// StringList stores an ordered list of strings as a JSON column so the same
// schema works on postgres and the in-memory sqlite used by tests.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("cannot scan %T into StringList", src)
}

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null"                 json:"name"`
	Slug string `gorm:"uniqueIndex;not null"     json:"slug"`
}

type Product struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"not null"                 json:"name"`
	Slug        string `gorm:"uniqueIndex;not null"     json:"slug"`
	Brand       string `gorm:"not null"                 json:"brand"`
	Gender      Gender `gorm:"type:varchar(16)"         json:"gender,omitempty"`
	Description string `json:"description"`

	// BasePrice is a derived display fallback: the minimum active variant
	// price, recomputed on create/update unless explicitly overridden.
	BasePrice decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"base_price"`
	SalePrice *decimal.Decimal `gorm:"type:numeric(12,2)"          json:"sale_price,omitempty"`

	MainImage string     `json:"main_image"`
	Images    StringList `gorm:"type:text" json:"images"`
	Tags      StringList `gorm:"type:text" json:"tags"`

	IsActive   bool `gorm:"default:true" json:"is_active"`
	IsFeatured bool `gorm:"default:false" json:"is_featured"`

	Variants   []ProductVariant `gorm:"constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	Categories []Category       `gorm:"many2many:product_categories;constraint:OnDelete:CASCADE" json:"categories,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProductVariant struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	ProductID uint            `gorm:"index;not null"              json:"product_id"`
	Size      string          `gorm:"not null"                    json:"size"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	SKU       string          `gorm:"uniqueIndex;not null"        json:"sku"`
	Stock     int             `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	IsActive  bool            `gorm:"default:true"                json:"is_active"`
}

func (v ProductVariant) InStock() bool {
	return v.Stock > 0
}

type PaymentMethod string

const (
	PaymentMethodCOD      PaymentMethod = "COD"
	PaymentMethodWhatsApp PaymentMethod = "WHATSAPP"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCOD, PaymentMethodWhatsApp:
		return true
	}
	return false
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

type Order struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber string `gorm:"uniqueIndex;not null"     json:"order_number"`
	UserID      uint   `gorm:"index;not null"           json:"user_id"`

	// Shipping contact is stored independently of the account profile so
	// the delivery details can differ from the account identity.
	CustomerName  string `gorm:"not null" json:"customer_name"`
	CustomerEmail string `gorm:"not null" json:"customer_email"`
	CustomerPhone string `gorm:"not null" json:"customer_phone"`
	Address       string `gorm:"not null" json:"address"`
	City          string `gorm:"not null" json:"city"`
	Area          string `json:"area,omitempty"`
	PostalCode    string `json:"postal_code,omitempty"`
	Notes         string `json:"notes,omitempty"`

	PaymentMethod PaymentMethod `gorm:"type:varchar(16);not null" json:"payment_method"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(16);not null;default:PENDING" json:"payment_status"`
	Status        OrderStatus   `gorm:"type:varchar(16);not null;default:PENDING" json:"status"`

	Subtotal     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	ShippingCost decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"shipping_cost"`
	Tax          decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"tax"`
	Total        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItem carries a denormalized snapshot of the product and variant at
// order time, so order history stays stable when products are later edited
// or deleted.
type OrderItem struct {
	ID      uint `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID uint `gorm:"index;not null"           json:"order_id"`

	ProductID    uint   `gorm:"not null" json:"product_id"`
	ProductName  string `gorm:"not null" json:"product_name"`
	ProductSlug  string `gorm:"not null" json:"product_slug"`
	ProductBrand string `json:"product_brand"`
	ProductImage string `json:"product_image"`

	VariantID   uint   `gorm:"index;not null" json:"variant_id"`
	VariantSize string `gorm:"not null"       json:"variant_size"`
	VariantSKU  string `gorm:"not null"       json:"variant_sku"`

	Quantity  int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	LineTotal decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"line_total"`
}
