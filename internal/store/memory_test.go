package store

import (
	"testing"
	"time"

	"github.com/shopadmin/shopadmin-golang/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newTestCustomer(t *testing.T, s *MemStore, email string) *models.Customer {
	t.Helper()
	customer, err := s.CreateCustomer(models.CreateCustomerInput{
		Name:  "Jane Cooper",
		Email: email,
	})
	require.NoError(t, err)
	return customer
}

func newTestProduct(t *testing.T, s *MemStore, sku string, price float64) *models.Product {
	t.Helper()
	product, err := s.CreateProduct(models.CreateProductInput{
		Name:        "Wireless Headphones",
		Description: "Noise cancelling, 30h battery",
		Price:       price,
		Stock:       25,
		SKU:         sku,
	})
	require.NoError(t, err)
	return product
}

func newTestOrder(t *testing.T, s *MemStore, customerID int64, items []models.CreateOrderItemInput, total float64) *models.Order {
	t.Helper()
	order, err := s.CreateOrder(models.CreateOrderInput{
		CustomerID:      customerID,
		ShippingAddress: map[string]any{"street": "1 Main St", "city": "Springfield"},
		Subtotal:        total,
		Total:           total,
	}, items)
	require.NoError(t, err)
	return order
}

func TestSeededAdminUser(t *testing.T) {
	s := NewMemStore()

	user, err := s.GetUserByUsername("admin")
	require.NoError(t, err)

	password := models.Password{Hash: user.PasswordHash}
	matches, err := password.Matches("admin123")
	require.NoError(t, err)
	assert.True(t, matches)

	matches, err = password.Matches("wrong-password")
	require.NoError(t, err)
	assert.False(t, matches)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	s := NewMemStore()

	_, err := s.CreateUser(models.CreateUserInput{Username: "admin", Password: "another-pass"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestCreateProductDefaultsAndRoundtrip(t *testing.T) {
	s := NewMemStore()

	created := newTestProduct(t, s, "WH-1000", 199.99)
	assert.Equal(t, models.ProductStatusPublished, created.Status)

	fetched, err := s.GetProduct(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, fetched.Name)
	assert.Equal(t, created.SKU, fetched.SKU)
	assert.Equal(t, 199.99, fetched.Price)
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	s := NewMemStore()

	newTestProduct(t, s, "WH-1000", 199.99)
	_, err := s.CreateProduct(models.CreateProductInput{
		Name:        "Another Product",
		Description: "Different item, same SKU",
		Price:       10,
		SKU:         "WH-1000",
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUpdateProductPartial(t *testing.T) {
	s := NewMemStore()
	product := newTestProduct(t, s, "WH-1000", 199.99)

	updated, err := s.UpdateProduct(product.ID, models.UpdateProductInput{Price: ptr(149.99)})
	require.NoError(t, err)
	assert.Equal(t, 149.99, updated.Price)
	// Untouched fields survive the partial update.
	assert.Equal(t, product.Name, updated.Name)
	assert.Equal(t, product.Stock, updated.Stock)
}

func TestUpdateProductNotFound(t *testing.T) {
	s := NewMemStore()

	_, err := s.UpdateProduct(999, models.UpdateProductInput{Price: ptr(1.0)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProductInvalidStatus(t *testing.T) {
	s := NewMemStore()
	product := newTestProduct(t, s, "WH-1000", 199.99)

	_, err := s.UpdateProduct(product.ID, models.UpdateProductInput{Status: ptr("discontinued")})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	// The failed update left nothing behind.
	fetched, err := s.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProductStatusPublished, fetched.Status)
}

func TestDeleteProductTwice(t *testing.T) {
	s := NewMemStore()
	product := newTestProduct(t, s, "WH-1000", 199.99)

	deleted, err := s.DeleteProduct(product.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.DeleteProduct(product.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDeleteProductInUse(t *testing.T) {
	s := NewMemStore()
	customer := newTestCustomer(t, s, "jane@example.com")
	product := newTestProduct(t, s, "WH-1000", 199.99)
	newTestOrder(t, s, customer.ID, []models.CreateOrderItemInput{
		{ProductID: product.ID, Quantity: 1, Price: 199.99},
	}, 199.99)

	// A product referenced by order items refuses deletion.
	deleted, err := s.DeleteProduct(product.ID)
	assert.ErrorIs(t, err, ErrInUse)
	assert.False(t, deleted)

	_, err = s.GetProduct(product.ID)
	require.NoError(t, err)
}

func TestDeleteProductRemovesItsReviews(t *testing.T) {
	s := NewMemStore()
	customer := newTestCustomer(t, s, "jane@example.com")
	product := newTestProduct(t, s, "WH-1000", 199.99)

	review, err := s.CreateProductReview(models.CreateProductReviewInput{
		ProductID:  product.ID,
		CustomerID: customer.ID,
		Rating:     4,
		Comment:    "Solid",
	})
	require.NoError(t, err)

	deleted, err := s.DeleteProduct(product.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	_, err = s.GetProductReview(review.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCustomerInUse(t *testing.T) {
	s := NewMemStore()
	customer := newTestCustomer(t, s, "jane@example.com")
	newTestOrder(t, s, customer.ID, nil, 50)

	deleted, err := s.DeleteCustomer(customer.ID)
	assert.ErrorIs(t, err, ErrInUse)
	assert.False(t, deleted)

	_, err = s.GetCustomer(customer.ID)
	require.NoError(t, err)
}

func TestCategorySlugAndDuplicate(t *testing.T) {
	s := NewMemStore()

	category, err := s.CreateCategory(models.CreateCategoryInput{Name: "Home & Garden"})
	require.NoError(t, err)
	// gosimple/slug writes the ampersand out as a word.
	assert.Equal(t, "home-and-garden", category.Slug)

	_, err = s.CreateCategory(models.CreateCategoryInput{Name: "Home & Garden"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestDeleteCategoryPromotesChildren(t *testing.T) {
	s := NewMemStore()

	parent, err := s.CreateCategory(models.CreateCategoryInput{Name: "Electronics"})
	require.NoError(t, err)
	child, err := s.CreateCategory(models.CreateCategoryInput{Name: "Audio", ParentID: &parent.ID})
	require.NoError(t, err)

	deleted, err := s.DeleteCategory(parent.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	orphan, err := s.GetCategory(child.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.ParentID)
}

func TestDeleteCategoryClearsProductRefs(t *testing.T) {
	s := NewMemStore()

	category, err := s.CreateCategory(models.CreateCategoryInput{Name: "Audio"})
	require.NoError(t, err)
	product, err := s.CreateProduct(models.CreateProductInput{
		Name:        "Speaker",
		Description: "x",
		Price:       89.99,
		SKU:         "SP-200",
		CategoryID:  &category.ID,
	})
	require.NoError(t, err)

	deleted, err := s.DeleteCategory(category.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	uncategorized, err := s.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Nil(t, uncategorized.CategoryID)
}

func TestCreateOrderGeneratesNumberAndItems(t *testing.T) {
	s := NewMemStore()
	customer := newTestCustomer(t, s, "jane@example.com")
	product := newTestProduct(t, s, "WH-1000", 199.99)

	order := newTestOrder(t, s, customer.ID, []models.CreateOrderItemInput{
		{ProductID: product.ID, Quantity: 2, Price: 199.99},
	}, 399.98)

	assert.Equal(t, "ORD-0001", order.OrderNumber)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusUnpaid, order.PaymentStatus)

	detail, err := s.GetOrderWithItems(order.ID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, 2, detail.Items[0].Quantity)
	require.NotNil(t, detail.Customer)
	assert.Equal(t, customer.ID, detail.Customer.ID)
}

func TestOrderItemPriceIsSnapshot(t *testing.T) {
	s := NewMemStore()
	customer := newTestCustomer(t, s, "jane@example.com")
	product := newTestProduct(t, s, "WH-1000", 199.99)

	order := newTestOrder(t, s, customer.ID, []models.CreateOrderItemInput{
		{ProductID: product.ID, Quantity: 1, Price: 199.99},
	}, 199.99)

	_, err := s.UpdateProduct(product.ID, models.UpdateProductInput{Price: ptr(99.99)})
	require.NoError(t, err)

	detail, err := s.GetOrderWithItems(order.ID)
	require.NoError(t, err)
	assert.Equal(t, 199.99, detail.Items[0].Price)
}

func TestCreateOrderAtomicity(t *testing.T) {
	s := NewMemStore()
	customer := newTestCustomer(t, s, "jane@example.com")
	product := newTestProduct(t, s, "WH-1000", 199.99)

	_, err := s.CreateOrder(models.CreateOrderInput{
		CustomerID:      customer.ID,
		ShippingAddress: map[string]any{"street": "1 Main St"},
	}, []models.CreateOrderItemInput{
		{ProductID: product.ID, Quantity: 1, Price: 199.99},
		{ProductID: 999, Quantity: 1, Price: 10},
	})
	require.ErrorIs(t, err, ErrNotFound)

	// The failed create left no order behind.
	orders, err := s.GetOrders()
	require.NoError(t, err)
	assert.Empty(t, orders)

	// And the next order still gets the first number.
	order := newTestOrder(t, s, customer.ID, []models.CreateOrderItemInput{
		{ProductID: product.ID, Quantity: 1, Price: 199.99},
	}, 199.99)
	assert.Equal(t, "ORD-0001", order.OrderNumber)
}

func TestUpdateOrderStatus(t *testing.T) {
	s := NewMemStore()
	customer := newTestCustomer(t, s, "jane@example.com")
	order := newTestOrder(t, s, customer.ID, nil, 0)

	updated, err := s.UpdateOrderStatus(order.ID, models.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)

	_, err = s.UpdateOrderStatus(order.ID, "teleported")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = s.UpdateOrderStatus(999, models.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetRecentOrders(t *testing.T) {
	s := NewMemStore()
	customer := newTestCustomer(t, s, "jane@example.com")

	var ids []int64
	for i := 0; i < 5; i++ {
		order := newTestOrder(t, s, customer.ID, nil, float64(10*(i+1)))
		ids = append(ids, order.ID)
	}

	// Backdate the first two orders so the newest three are ids 3..5.
	now := time.Now()
	s.orders[ids[0]].OrderDate = now.AddDate(0, 0, -2)
	s.orders[ids[1]].OrderDate = now.AddDate(0, 0, -1)
	sameDay := now.Add(-time.Hour)
	s.orders[ids[2]].OrderDate = sameDay
	s.orders[ids[3]].OrderDate = sameDay
	s.orders[ids[4]].OrderDate = now

	recent, err := s.GetRecentOrders(3)
	require.NoError(t, err)
	require.Len(t, recent, 3)

	assert.Equal(t, "ORD-0005", recent[0].ID)
	// Equal dates keep insertion order.
	assert.Equal(t, "ORD-0003", recent[1].ID)
	assert.Equal(t, "ORD-0004", recent[2].ID)

	assert.Equal(t, "$50.00", recent[0].Amount)
	assert.Equal(t, "Pending", recent[0].Status)
	assert.Equal(t, customer.Name, recent[0].Customer.Name)
	assert.NotEmpty(t, recent[0].Customer.Avatar)
}

func TestTopSellingProducts(t *testing.T) {
	s := NewMemStore()
	customer := newTestCustomer(t, s, "jane@example.com")
	headphones := newTestProduct(t, s, "WH-1000", 199.99)
	speaker := newTestProduct(t, s, "SP-200", 89.99)
	newTestProduct(t, s, "CB-1", 9.99) // never sold

	// Headphones: 10 units this window, 5 the window before.
	recentOrder := newTestOrder(t, s, customer.ID, []models.CreateOrderItemInput{
		{ProductID: headphones.ID, Quantity: 10, Price: 199.99},
		{ProductID: speaker.ID, Quantity: 3, Price: 89.99},
	}, 0)
	previousOrder := newTestOrder(t, s, customer.ID, []models.CreateOrderItemInput{
		{ProductID: headphones.ID, Quantity: 5, Price: 199.99},
	}, 0)
	s.orders[previousOrder.ID].OrderDate = time.Now().AddDate(0, 0, -45)
	_ = recentOrder

	top, err := s.GetTopSellingProducts(2)
	require.NoError(t, err)
	require.Len(t, top, 2)

	assert.Equal(t, headphones.ID, top[0].ID)
	assert.Equal(t, 15, top[0].SoldCount)
	assert.Equal(t, "$199.99", top[0].Price)
	assert.InDelta(t, 100.0, top[0].PercentageChange, 0.001)

	assert.Equal(t, speaker.ID, top[1].ID)
	assert.Equal(t, 3, top[1].SoldCount)
	// No sales in the prior window reports 0, not a division blowup.
	assert.Equal(t, 0.0, top[1].PercentageChange)
}

func TestReviewLifecycle(t *testing.T) {
	s := NewMemStore()
	customer := newTestCustomer(t, s, "jane@example.com")
	product := newTestProduct(t, s, "WH-1000", 199.99)

	review, err := s.CreateProductReview(models.CreateProductReviewInput{
		ProductID:  product.ID,
		CustomerID: customer.ID,
		Rating:     5,
		Comment:    "Great sound",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReviewStatusPending, review.Status)

	approved, err := s.UpdateReviewStatus(review.ID, models.ReviewStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.ReviewStatusApproved, approved.Status)

	_, err = s.UpdateReviewStatus(review.ID, "starred")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	deleted, err := s.DeleteReview(review.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestRefundProcessedDate(t *testing.T) {
	s := NewMemStore()
	customer := newTestCustomer(t, s, "jane@example.com")
	order := newTestOrder(t, s, customer.ID, nil, 50)

	refund, err := s.CreateRefund(models.CreateRefundInput{
		OrderID:    order.ID,
		CustomerID: customer.ID,
		Amount:     50,
		Reason:     "Damaged on arrival",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RefundStatusPending, refund.Status)
	assert.Nil(t, refund.ProcessedDate)

	approved, err := s.UpdateRefundStatus(refund.ID, models.RefundStatusApproved, ptr("restocked"))
	require.NoError(t, err)
	require.NotNil(t, approved.ProcessedDate)
	require.NotNil(t, approved.Notes)
	assert.Equal(t, "restocked", *approved.Notes)

	// Moving back to pending clears the decision timestamp.
	pending, err := s.UpdateRefundStatus(refund.ID, models.RefundStatusPending, nil)
	require.NoError(t, err)
	assert.Nil(t, pending.ProcessedDate)

	_, err = s.UpdateRefundStatus(refund.ID, "maybe", nil)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestRefundSettingsMerge(t *testing.T) {
	s := NewMemStore()

	settings, err := s.GetRefundSettings()
	require.NoError(t, err)
	assert.Equal(t, int64(1), settings.ID)
	assert.Equal(t, 30, settings.TimeLimit)

	updated, err := s.UpdateRefundSettings(models.UpdateRefundSettingsInput{TimeLimit: ptr(14)})
	require.NoError(t, err)
	assert.Equal(t, 14, updated.TimeLimit)
	// Absent fields keep their stored values.
	assert.Equal(t, settings.RefundPolicy, updated.RefundPolicy)
	assert.Equal(t, settings.EligibleStatuses, updated.EligibleStatuses)
}

func TestSiteSettingsMerge(t *testing.T) {
	s := NewMemStore()

	settings, err := s.GetSiteSettings()
	require.NoError(t, err)
	assert.Equal(t, int64(1), settings.ID)
	assert.Equal(t, "ShopAdmin", settings.SiteName)

	updated, err := s.UpdateSiteSettings(models.UpdateSiteSettingsInput{
		SiteName: ptr("My Shop"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.ID)
	assert.Equal(t, "My Shop", updated.SiteName)
	assert.Equal(t, settings.PrimaryColor, updated.PrimaryColor)
	assert.Equal(t, settings.ContactEmail, updated.ContactEmail)
}

func TestTicketNumberAndDefaults(t *testing.T) {
	s := NewMemStore()
	customer := newTestCustomer(t, s, "jane@example.com")

	ticket, err := s.CreateSupportTicket(models.CreateSupportTicketInput{
		CustomerID: customer.ID,
		Subject:    "Where is my order?",
		Message:    "It has been a week.",
	})
	require.NoError(t, err)
	assert.Equal(t, "TICKET-0001", ticket.TicketNumber)
	assert.Equal(t, models.TicketStatusOpen, ticket.Status)
	assert.Equal(t, models.TicketPriorityMedium, ticket.Priority)
}

func TestTicketReplyBumpsTicket(t *testing.T) {
	s := NewMemStore()
	customer := newTestCustomer(t, s, "jane@example.com")

	first, err := s.CreateSupportTicket(models.CreateSupportTicketInput{
		CustomerID: customer.ID,
		Subject:    "First ticket",
		Message:    "Oldest",
	})
	require.NoError(t, err)
	second, err := s.CreateSupportTicket(models.CreateSupportTicketInput{
		CustomerID: customer.ID,
		Subject:    "Second ticket",
		Message:    "Newest",
	})
	require.NoError(t, err)

	// Backdate both so the reply's bump is unambiguous.
	s.tickets[first.ID].UpdatedAt = time.Now().Add(-2 * time.Hour)
	s.tickets[second.ID].UpdatedAt = time.Now().Add(-time.Hour)

	reply, err := s.AddTicketReply(models.CreateTicketReplyInput{
		TicketID:   first.ID,
		CustomerID: &customer.ID,
		Message:    "Any update?",
	})
	require.NoError(t, err)

	bumped, err := s.GetSupportTicket(first.ID)
	require.NoError(t, err)
	assert.False(t, bumped.UpdatedAt.Before(reply.CreatedAt))

	// The replied-to ticket now leads the freshness ordering.
	tickets, err := s.GetSupportTickets()
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, first.ID, tickets[0].ID)

	replies, err := s.GetTicketReplies(first.ID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, "Any update?", replies[0].Message)
}

func TestAssignTicket(t *testing.T) {
	s := NewMemStore()
	customer := newTestCustomer(t, s, "jane@example.com")
	admin, err := s.GetUserByUsername("admin")
	require.NoError(t, err)

	ticket, err := s.CreateSupportTicket(models.CreateSupportTicketInput{
		CustomerID: customer.ID,
		Subject:    "Assign me",
		Message:    "Please",
	})
	require.NoError(t, err)

	assigned, err := s.AssignTicket(ticket.ID, admin.ID)
	require.NoError(t, err)
	require.NotNil(t, assigned.AssignedTo)
	assert.Equal(t, admin.ID, *assigned.AssignedTo)

	_, err = s.AssignTicket(ticket.ID, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCustomerSummaries(t *testing.T) {
	s := NewMemStore()
	buyer := newTestCustomer(t, s, "buyer@example.com")
	browser := newTestCustomer(t, s, "browser@example.com")

	newTestOrder(t, s, buyer.ID, nil, 100)
	newTestOrder(t, s, buyer.ID, nil, 50.50)

	summaries, err := s.GetCustomerSummaries()
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, buyer.ID, summaries[0].ID)
	assert.Equal(t, 2, summaries[0].OrderCount)
	assert.Equal(t, "$150.50", summaries[0].TotalSpent)

	assert.Equal(t, browser.ID, summaries[1].ID)
	assert.Equal(t, 0, summaries[1].OrderCount)
	assert.Equal(t, "$0.00", summaries[1].TotalSpent)
}

func TestDashboardStats(t *testing.T) {
	s := NewMemStore()
	active := newTestCustomer(t, s, "active@example.com")
	inactive, err := s.CreateCustomer(models.CreateCustomerInput{
		Name:   "Dormant",
		Email:  "dormant@example.com",
		Status: models.CustomerStatusInactive,
	})
	require.NoError(t, err)
	_ = inactive

	paid, err := s.CreateOrder(models.CreateOrderInput{
		CustomerID:      active.ID,
		PaymentStatus:   models.PaymentStatusPaid,
		ShippingAddress: map[string]any{"street": "1 Main St"},
		Total:           120,
	}, nil)
	require.NoError(t, err)
	newTestOrder(t, s, active.ID, nil, 80) // unpaid, excluded from sales

	_, err = s.CreateRefund(models.CreateRefundInput{
		OrderID:    paid.ID,
		CustomerID: active.ID,
		Amount:     20,
		Reason:     "Partial return",
	})
	require.NoError(t, err)

	stats, err := s.GetDashboardStats()
	require.NoError(t, err)
	assert.Equal(t, "$120.00", stats.TotalSales)
	assert.Equal(t, 1, stats.ActiveCustomers)
	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, 1, stats.PendingRefunds)
}
