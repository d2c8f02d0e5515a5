package store

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/shopadmin/shopadmin-golang/internal/models"
)

// Sentinel errors shared by every implementation. Handlers translate these
// into HTTP status codes; absence is a signal here, never a panic.
var (
	ErrNotFound      = errors.New("record not found")
	ErrInvalidStatus = errors.New("invalid status value")
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicate     = errors.New("duplicate value for unique field")
	ErrInUse         = errors.New("record is referenced by other records")
)

// Store lists every persistence operation the API layer may perform,
// independent of backing technology. Two implementations exist: the
// map-backed MemStore for tests and demos, and MySQLStore for production.
// The backend is chosen at process start, never swapped at runtime.
type Store interface {
	// Users
	GetUser(id int64) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	CreateUser(input models.CreateUserInput) (*models.User, error)

	// Products
	GetProduct(id int64) (*models.Product, error)
	GetProducts() ([]models.Product, error)
	GetTopSellingProducts(limit int) ([]models.TopSellingProduct, error)
	CreateProduct(input models.CreateProductInput) (*models.Product, error)
	UpdateProduct(id int64, input models.UpdateProductInput) (*models.Product, error)
	DeleteProduct(id int64) (bool, error)

	// Categories
	GetCategory(id int64) (*models.Category, error)
	GetCategories() ([]models.Category, error)
	CreateCategory(input models.CreateCategoryInput) (*models.Category, error)
	UpdateCategory(id int64, input models.UpdateCategoryInput) (*models.Category, error)
	DeleteCategory(id int64) (bool, error)

	// Brands
	GetBrand(id int64) (*models.Brand, error)
	GetBrands() ([]models.Brand, error)
	CreateBrand(input models.CreateBrandInput) (*models.Brand, error)
	UpdateBrand(id int64, input models.UpdateBrandInput) (*models.Brand, error)
	DeleteBrand(id int64) (bool, error)

	// Customers
	GetCustomer(id int64) (*models.Customer, error)
	GetCustomers() ([]models.Customer, error)
	GetCustomerSummaries() ([]models.CustomerSummary, error)
	CreateCustomer(input models.CreateCustomerInput) (*models.Customer, error)
	UpdateCustomer(id int64, input models.UpdateCustomerInput) (*models.Customer, error)
	DeleteCustomer(id int64) (bool, error)

	// Orders
	GetOrder(id int64) (*models.Order, error)
	GetOrders() ([]models.Order, error)
	GetOrderWithItems(id int64) (*models.OrderDetail, error)
	GetRecentOrders(limit int) ([]models.RecentOrder, error)
	// CreateOrder creates the order row, generates its order number and
	// inserts every item as one atomic unit: a failure partway leaves no
	// order behind.
	CreateOrder(order models.CreateOrderInput, items []models.CreateOrderItemInput) (*models.Order, error)
	UpdateOrderStatus(id int64, status string) (*models.Order, error)

	// Product Reviews
	GetProductReview(id int64) (*models.ProductReview, error)
	GetProductReviews() ([]models.ProductReview, error)
	CreateProductReview(input models.CreateProductReviewInput) (*models.ProductReview, error)
	UpdateReviewStatus(id int64, status string) (*models.ProductReview, error)
	DeleteReview(id int64) (bool, error)

	// Refunds
	GetRefund(id int64) (*models.Refund, error)
	GetRefunds() ([]models.Refund, error)
	CreateRefund(input models.CreateRefundInput) (*models.Refund, error)
	// UpdateRefundStatus stamps ProcessedDate with the current time if and
	// only if the new status is terminal (approved/rejected).
	UpdateRefundStatus(id int64, status string, notes *string) (*models.Refund, error)

	// Refund Settings (singleton row, id fixed at 1)
	GetRefundSettings() (*models.RefundSettings, error)
	UpdateRefundSettings(input models.UpdateRefundSettingsInput) (*models.RefundSettings, error)

	// Support Tickets
	GetSupportTicket(id int64) (*models.SupportTicket, error)
	GetSupportTickets() ([]models.SupportTicket, error)
	GetTicketReplies(ticketID int64) ([]models.TicketReply, error)
	CreateSupportTicket(input models.CreateSupportTicketInput) (*models.SupportTicket, error)
	UpdateTicketStatus(id int64, status string) (*models.SupportTicket, error)
	AssignTicket(id int64, userID int64) (*models.SupportTicket, error)
	// AddTicketReply also refreshes the parent ticket's UpdatedAt so a reply
	// is never invisible to the ticket's freshness ordering.
	AddTicketReply(input models.CreateTicketReplyInput) (*models.TicketReply, error)

	// Site Settings (singleton row, id fixed at 1)
	GetSiteSettings() (*models.SiteSettings, error)
	UpdateSiteSettings(input models.UpdateSiteSettingsInput) (*models.SiteSettings, error)

	// Dashboard
	GetDashboardStats() (*models.DashboardStats, error)
}

// orderNumber renders the generated order number, e.g. ORD-0042.
func orderNumber(id int64) string {
	return fmt.Sprintf("ORD-%04d", id)
}

// ticketNumber renders the generated ticket number, e.g. TICKET-0042.
func ticketNumber(id int64) string {
	return fmt.Sprintf("TICKET-%04d", id)
}

// capitalizeStatus turns a stored status into its display label ("pending"
// -> "Pending").
func capitalizeStatus(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

// fallbackAvatar builds a generated avatar URL when the customer has none.
func fallbackAvatar(name string) string {
	if name == "" {
		name = "Unknown"
	}
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name)
}

// fallbackImage builds a placeholder product image URL.
func fallbackImage(name string) string {
	return "https://placehold.co/300x300?text=" + url.QueryEscape(name)
}

// percentageChange compares the trailing sales window against the one
// before it. An empty prior window reports 0 rather than a division blowup.
func percentageChange(recent, previous int) float64 {
	if previous == 0 {
		return 0
	}
	return float64(recent-previous) / float64(previous) * 100
}
