package xano

import (
	"encoding/json"
	"time"
)

// Timestamp is a Xano created_at value in epoch milliseconds.
type Timestamp int64

func (t Timestamp) Time() time.Time { return time.UnixMilli(int64(t)) }

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt Timestamp `json:"created_at"`
}

type AuthToken struct {
	AuthToken string `json:"authToken"`
}

const (
	AccessPublic  = "public"
	AccessPrivate = "private"
)

// ImageResource is a file stored by the backend.
type ImageResource struct {
	Access string         `json:"access,omitempty"`
	Path   string         `json:"path,omitempty"`
	Name   string         `json:"name,omitempty"`
	Type   string         `json:"type,omitempty"`
	Size   int64          `json:"size,omitempty"`
	Mime   string         `json:"mime,omitempty"`
	Meta   map[string]any `json:"meta,omitempty"`
	URL    string         `json:"url,omitempty"`
}

// UnmarshalJSON also accepts a bare URL string, as older product rows hold.
func (r *ImageResource) UnmarshalJSON(b []byte) error {
	var url string
	if err := json.Unmarshal(b, &url); err == nil {
		*r = ImageResource{URL: url}
		return nil
	}
	type plain ImageResource
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*r = ImageResource(p)
	return nil
}

type Product struct {
	ID            int64           `json:"id"`
	CreatedAt     Timestamp       `json:"created_at"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Type          string          `json:"type,omitempty"`
	Series        string          `json:"series,omitempty"`
	Category      string          `json:"category,omitempty"`
	Brand         string          `json:"brand"`
	Price         Money           `json:"price"`
	StockQuantity *int            `json:"stock_quantity,omitempty"`
	LegacyStock   *int            `json:"stock,omitempty"`
	Weight        float64         `json:"weight,omitempty"`
	ReleaseYear   int             `json:"release_year,omitempty"`
	IsActive      bool            `json:"is_active"`
	ImageURL      *ImageResource  `json:"image_url,omitempty"`
	Images        []ImageResource `json:"images,omitempty"`
}

// Stock prefers stock_quantity and falls back to the legacy stock field.
func (p Product) Stock() int {
	switch {
	case p.StockQuantity != nil:
		return *p.StockQuantity
	case p.LegacyStock != nil:
		return *p.LegacyStock
	}
	return 0
}

// Gallery lists the images to show: the images array when present,
// otherwise the single image_url.
func (p Product) Gallery() []ImageResource {
	if p.Images != nil {
		return p.Images
	}
	if p.ImageURL != nil {
		return []ImageResource{*p.ImageURL}
	}
	return []ImageResource{}
}

// Label is the category shown on a card, type first.
func (p Product) Label() string {
	if p.Type != "" {
		return p.Type
	}
	return p.Category
}

// ProductInput is the create payload. Unset optional fields are not sent.
type ProductInput struct {
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	Type          string         `json:"type,omitempty"`
	Series        string         `json:"series,omitempty"`
	Category      string         `json:"category,omitempty"`
	Brand         string         `json:"brand,omitempty"`
	Price         Money          `json:"price"`
	StockQuantity *int           `json:"stock_quantity,omitempty"`
	Weight        *float64       `json:"weight,omitempty"`
	ReleaseYear   *int           `json:"release_year,omitempty"`
	IsActive      *bool          `json:"is_active,omitempty"`
	ImageURL      *ImageResource `json:"image_url,omitempty"`
}

// ProductPatch is a partial update; nil fields stay untouched server-side.
type ProductPatch struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Type          *string  `json:"type,omitempty"`
	Series        *string  `json:"series,omitempty"`
	Brand         *string  `json:"brand,omitempty"`
	Price         *Money   `json:"price,omitempty"`
	StockQuantity *int     `json:"stock_quantity,omitempty"`
	Weight        *float64 `json:"weight,omitempty"`
	IsActive      *bool    `json:"is_active,omitempty"`
}

type Category struct {
	ID           int64     `json:"id"`
	CreatedAt    Timestamp `json:"created_at"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CategoryType string    `json:"category_type"`
}

type CategoryInput struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	CategoryType string `json:"category_type,omitempty"`
}

type ProductCategoryRelation struct {
	ID                int64     `json:"id"`
	CreatedAt         Timestamp `json:"created_at"`
	ProductID         int64     `json:"product_id"`
	ProductCategoryID int64     `json:"product_category_id"`
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	}
	return false
}

type Order struct {
	ID                int64         `json:"id"`
	CreatedAt         Timestamp     `json:"created_at"`
	OrderNumber       string        `json:"order_number"`
	TotalAmount       Money         `json:"total_amount"`
	Status            OrderStatus   `json:"status"`
	PaymentMethod     string        `json:"payment_method"`
	PaymentStatus     PaymentStatus `json:"payment_status"`
	UserID            int64         `json:"user_id"`
	ShippingAddressID int64         `json:"shipping_address_id"`
}

type OrderInput struct {
	OrderNumber       string        `json:"order_number,omitempty"`
	TotalAmount       Money         `json:"total_amount"`
	Status            OrderStatus   `json:"status,omitempty"`
	PaymentMethod     string        `json:"payment_method"`
	PaymentStatus     PaymentStatus `json:"payment_status,omitempty"`
	UserID            int64         `json:"user_id"`
	ShippingAddressID int64         `json:"shipping_address_id,omitempty"`
}

type OrderItem struct {
	ID        int64     `json:"id"`
	CreatedAt Timestamp `json:"created_at"`
	Quantity  int       `json:"quantity"`
	UnitPrice Money     `json:"unit_price"`
	Subtotal  Money     `json:"subtotal"`
	OrderID   int64     `json:"order_id"`
	ProductID int64     `json:"product_id"`
}

// OrderItemSubtotal is quantity times unit price.
func OrderItemSubtotal(quantity int, unitPrice Money) Money {
	return unitPrice.Mul(int64(quantity))
}

type Address struct {
	ID        int64     `json:"id"`
	CreatedAt Timestamp `json:"created_at"`
	Street    string    `json:"street"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	ZipCode   string    `json:"zip_code"`
	Country   string    `json:"country"`
	IsDefault bool      `json:"is_default"`
	UserID    int64     `json:"user_id"`
}

// Inventory is one entry of the append-only stock adjustment log.
type Inventory struct {
	ID          int64     `json:"id"`
	CreatedAt   Timestamp `json:"created_at"`
	StockChange int       `json:"stock_change"`
	ChangeType  string    `json:"change_type"`
	Notes       string    `json:"notes"`
	ProductID   int64     `json:"product_id"`
}

type Review struct {
	ID        int64     `json:"id"`
	CreatedAt Timestamp `json:"created_at"`
	Rating    *int      `json:"rating,omitempty"`
	Comment   *string   `json:"comment,omitempty"`
	UserID    int64     `json:"user_id,omitempty"`
	ProductID int64     `json:"product_id,omitempty"`
}
