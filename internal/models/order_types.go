package models

import "time"

// Order status values (closed set).
const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Payment status values.
const (
	PaymentStatusPaid     = "paid"
	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusRefunded = "refunded"
)

// ValidOrderStatus reports whether s is one of the allowed order states.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is one of the allowed payment states.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusUnpaid, PaymentStatusRefunded:
		return true
	}
	return false
}

// Order is the model for the 'orders' table.
type Order struct {
	ID                int64          `json:"id" db:"id"`
	OrderNumber       string         `json:"orderNumber" db:"order_number"`
	CustomerID        int64          `json:"customerId" db:"customer_id"`
	Status            string         `json:"status" db:"status"`
	PaymentStatus     string         `json:"paymentStatus" db:"payment_status"`
	PaymentMethod     *string        `json:"paymentMethod,omitempty" db:"payment_method"`
	ShippingMethod    *string        `json:"shippingMethod,omitempty" db:"shipping_method"`
	ShippingAddress   map[string]any `json:"shippingAddress" db:"shipping_address"`
	TrackingNumber    *string        `json:"trackingNumber,omitempty" db:"tracking_number"`
	EstimatedDelivery *string        `json:"estimatedDelivery,omitempty" db:"estimated_delivery"`
	Subtotal          float64        `json:"subtotal" db:"subtotal"`
	ShippingCost      float64        `json:"shippingCost" db:"shipping_cost"`
	Tax               float64        `json:"tax" db:"tax"`
	Total             float64        `json:"total" db:"total"`
	Notes             *string        `json:"notes,omitempty" db:"notes"`
	OrderDate         time.Time      `json:"orderDate" db:"order_date"`
}

// OrderItem is the model for the 'order_items' table.
// Price is a snapshot of the product price at order time and is never
// recomputed from the current product price.
type OrderItem struct {
	ID        int64   `json:"id" db:"id"`
	OrderID   int64   `json:"orderId" db:"order_id"`
	ProductID int64   `json:"productId" db:"product_id"`
	Quantity  int     `json:"quantity" db:"quantity"`
	Price     float64 `json:"price" db:"price"`
}

// CreateOrderInput defines the JSON input for creating an order.
// The order number is generated at creation, never supplied.
type CreateOrderInput struct {
	CustomerID        int64          `json:"customerId" binding:"required"`
	Status            string         `json:"status" binding:"omitempty,oneof=pending shipped delivered cancelled"`
	PaymentStatus     string         `json:"paymentStatus" binding:"omitempty,oneof=paid unpaid refunded"`
	PaymentMethod     *string        `json:"paymentMethod"`
	ShippingMethod    *string        `json:"shippingMethod"`
	ShippingAddress   map[string]any `json:"shippingAddress" binding:"required"`
	TrackingNumber    *string        `json:"trackingNumber"`
	EstimatedDelivery *string        `json:"estimatedDelivery"`
	Subtotal          float64        `json:"subtotal" binding:"gte=0"`
	ShippingCost      float64        `json:"shippingCost" binding:"gte=0"`
	Tax               float64        `json:"tax" binding:"gte=0"`
	Total             float64        `json:"total" binding:"gte=0"`
	Notes             *string        `json:"notes"`
}

// CreateOrderItemInput defines one line item on a new order.
type CreateOrderItemInput struct {
	ProductID int64   `json:"productId" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gte=1"`
	Price     float64 `json:"price" binding:"required,gte=0"`
}

// OrderItemDetail is an order item joined with its product.
type OrderItemDetail struct {
	OrderItem
	Product *Product `json:"product,omitempty"`
}

// OrderDetail is an order merged with its line items and customer.
type OrderDetail struct {
	Order
	Customer *Customer         `json:"customer,omitempty"`
	Items    []OrderItemDetail `json:"items"`
}

// RecentOrderCustomer is the customer display projection on the dashboard.
type RecentOrderCustomer struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// RecentOrder is the dashboard recent-orders projection.
// Status carries the capitalized display label.
type RecentOrder struct {
	ID       string              `json:"id"`
	Customer RecentOrderCustomer `json:"customer"`
	Amount   string              `json:"amount"`
	Status   string              `json:"status"`
	Date     string              `json:"date"`
}
