package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gosimple/slug"
	"github.com/shopadmin/shopadmin-golang/internal/models"
)

// MemStore fulfills the storage contract with process-local maps. Identifiers
// are monotonically increasing per entity type, seeded at 1. Nothing survives
// a restart; it exists for fast iteration and tests.
//
// The HTTP server handles requests concurrently, so every operation takes the
// mutex even though the contract promises no cross-request coordination.
type MemStore struct {
	mu sync.RWMutex

	users          map[int64]*models.User
	products       map[int64]*models.Product
	categories     map[int64]*models.Category
	brands         map[int64]*models.Brand
	customers      map[int64]*models.Customer
	orders         map[int64]*models.Order
	orderItems     map[int64][]models.OrderItem // keyed by order id
	reviews        map[int64]*models.ProductReview
	refunds        map[int64]*models.Refund
	refundSettings *models.RefundSettings
	tickets        map[int64]*models.SupportTicket
	ticketReplies  map[int64][]models.TicketReply // keyed by ticket id
	siteSettings   *models.SiteSettings

	userID     int64
	productID  int64
	categoryID int64
	brandID    int64
	customerID int64
	orderID    int64
	itemID     int64
	reviewID   int64
	refundID   int64
	ticketID   int64
	replyID    int64
}

// NewMemStore returns a store seeded with the default settings pair and one
// administrative user (admin / admin123, bcrypt-hashed).
func NewMemStore() *MemStore {
	s := &MemStore{
		users:         make(map[int64]*models.User),
		products:      make(map[int64]*models.Product),
		categories:    make(map[int64]*models.Category),
		brands:        make(map[int64]*models.Brand),
		customers:     make(map[int64]*models.Customer),
		orders:        make(map[int64]*models.Order),
		orderItems:    make(map[int64][]models.OrderItem),
		reviews:       make(map[int64]*models.ProductReview),
		refunds:       make(map[int64]*models.Refund),
		tickets:       make(map[int64]*models.SupportTicket),
		ticketReplies: make(map[int64][]models.TicketReply),

		userID:     1,
		productID:  1,
		categoryID: 1,
		brandID:    1,
		customerID: 1,
		orderID:    1,
		itemID:     1,
		reviewID:   1,
		refundID:   1,
		ticketID:   1,
		replyID:    1,
	}

	s.siteSettings = defaultSiteSettings()
	s.refundSettings = defaultRefundSettings()

	// Demo admin account so the dashboard is reachable out of the box.
	if _, err := s.CreateUser(models.CreateUserInput{Username: "admin", Password: "admin123"}); err != nil {
		panic("memstore: failed to seed admin user: " + err.Error())
	}

	return s
}

func defaultSiteSettings() *models.SiteSettings {
	return &models.SiteSettings{
		ID:             1,
		SiteName:       "ShopAdmin",
		PrimaryColor:   "#4f46e5",
		SecondaryColor: "#0ea5e9",
		ContactEmail:   "contact@shopadmin.com",
		UpdatedAt:      time.Now(),
	}
}

func defaultRefundSettings() *models.RefundSettings {
	autoApprove := 25.00
	return &models.RefundSettings{
		ID:               1,
		TimeLimit:        30,
		RestockingFee:    0,
		AutoApproveBelow: &autoApprove,
		EligibleStatuses: []string{models.OrderStatusDelivered},
		RefundPolicy:     "Customers can return items within 30 days of delivery for a full refund.",
		UpdatedAt:        time.Now(),
	}
}

// --- Users ---

func (s *MemStore) GetUser(id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (s *MemStore) GetUserByUsername(username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			cp := *user
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) CreateUser(input models.CreateUserInput) (*models.User, error) {
	var password models.Password
	if err := password.Set(input.Password); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Username == input.Username {
			return nil, ErrDuplicate
		}
	}

	id := s.userID
	s.userID++

	user := &models.User{
		ID:           id,
		Username:     input.Username,
		PasswordHash: password.Hash,
	}
	s.users[id] = user

	cp := *user
	return &cp, nil
}

// --- Products ---

func (s *MemStore) GetProduct(id int64) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *product
	return &cp, nil
}

func (s *MemStore) GetProducts() ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]models.Product, 0, len(s.products))
	for _, product := range s.products {
		products = append(products, *product)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (s *MemStore) GetTopSellingProducts(limit int) ([]models.TopSellingProduct, error) {
	if limit <= 0 {
		limit = 5
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	windowStart := now.AddDate(0, 0, -30)
	previousStart := now.AddDate(0, 0, -60)

	// Aggregate order items per product: all-time units plus the two
	// trailing 30-day windows for the change percentage.
	type bucket struct{ total, recent, previous int }
	sales := make(map[int64]*bucket)
	for orderID, items := range s.orderItems {
		order, ok := s.orders[orderID]
		if !ok {
			continue
		}
		for _, item := range items {
			b := sales[item.ProductID]
			if b == nil {
				b = &bucket{}
				sales[item.ProductID] = b
			}
			b.total += item.Quantity
			if order.OrderDate.After(windowStart) {
				b.recent += item.Quantity
			} else if order.OrderDate.After(previousStart) {
				b.previous += item.Quantity
			}
		}
	}

	products := make([]*models.Product, 0, len(s.products))
	for _, product := range s.products {
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool {
		si, sj := 0, 0
		if b := sales[products[i].ID]; b != nil {
			si = b.total
		}
		if b := sales[products[j].ID]; b != nil {
			sj = b.total
		}
		if si != sj {
			return si > sj
		}
		return products[i].ID < products[j].ID
	})

	if len(products) > limit {
		products = products[:limit]
	}

	top := make([]models.TopSellingProduct, 0, len(products))
	for _, product := range products {
		image := fallbackImage(product.Name)
		if product.Image != nil && *product.Image != "" {
			image = *product.Image
		}
		entry := models.TopSellingProduct{
			ID:    product.ID,
			Name:  product.Name,
			Image: image,
			Price: models.FormatMoney(product.Price),
		}
		if b := sales[product.ID]; b != nil {
			entry.SoldCount = b.total
			entry.PercentageChange = percentageChange(b.recent, b.previous)
		}
		top = append(top, entry)
	}
	return top, nil
}

func (s *MemStore) CreateProduct(input models.CreateProductInput) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, product := range s.products {
		if product.SKU == input.SKU {
			return nil, ErrDuplicate
		}
	}

	status := input.Status
	if status == "" {
		status = models.ProductStatusPublished
	}

	id := s.productID
	s.productID++
	now := time.Now()

	product := &models.Product{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		SKU:         input.SKU,
		Image:       input.Image,
		Status:      status,
		CategoryID:  input.CategoryID,
		BrandID:     input.BrandID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.products[id] = product

	cp := *product
	return &cp, nil
}

func (s *MemStore) UpdateProduct(id int64, input models.UpdateProductInput) (*models.Product, error) {
	if input.Status != nil && !models.ValidProductStatus(*input.Status) {
		return nil, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}

	if input.SKU != nil && *input.SKU != product.SKU {
		for _, other := range s.products {
			if other.SKU == *input.SKU {
				return nil, ErrDuplicate
			}
		}
		product.SKU = *input.SKU
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Image != nil {
		product.Image = input.Image
	}
	if input.Status != nil {
		product.Status = *input.Status
	}
	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}
	if input.BrandID != nil {
		product.BrandID = input.BrandID
	}
	product.UpdatedAt = time.Now()

	cp := *product
	return &cp, nil
}

func (s *MemStore) DeleteProduct(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return false, nil
	}

	// Order items snapshot the product at purchase time and keep the
	// reference; the product cannot be deleted out from under them.
	for _, items := range s.orderItems {
		for _, item := range items {
			if item.ProductID == id {
				return false, ErrInUse
			}
		}
	}

	delete(s.products, id)
	for reviewID, review := range s.reviews {
		if review.ProductID == id {
			delete(s.reviews, reviewID)
		}
	}
	return true, nil
}

// --- Categories ---

func (s *MemStore) GetCategory(id int64) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	category, ok := s.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *category
	return &cp, nil
}

func (s *MemStore) GetCategories() ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]models.Category, 0, len(s.categories))
	for _, category := range s.categories {
		categories = append(categories, *category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

func (s *MemStore) CreateCategory(input models.CreateCategoryInput) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	categorySlug := slug.Make(input.Name)
	for _, category := range s.categories {
		if category.Slug == categorySlug {
			return nil, ErrDuplicate
		}
	}
	if input.ParentID != nil {
		if _, ok := s.categories[*input.ParentID]; !ok {
			return nil, ErrNotFound
		}
	}

	id := s.categoryID
	s.categoryID++
	now := time.Now()

	category := &models.Category{
		ID:        id,
		Name:      input.Name,
		Slug:      categorySlug,
		ParentID:  input.ParentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.categories[id] = category

	cp := *category
	return &cp, nil
}

func (s *MemStore) UpdateCategory(id int64, input models.UpdateCategoryInput) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, ok := s.categories[id]
	if !ok {
		return nil, ErrNotFound
	}

	if input.Name != nil {
		newSlug := slug.Make(*input.Name)
		for otherID, other := range s.categories {
			if otherID != id && other.Slug == newSlug {
				return nil, ErrDuplicate
			}
		}
		category.Name = *input.Name
		category.Slug = newSlug
	}
	if input.ParentID != nil {
		if _, ok := s.categories[*input.ParentID]; !ok {
			return nil, ErrNotFound
		}
		category.ParentID = input.ParentID
	}
	category.UpdatedAt = time.Now()

	cp := *category
	return &cp, nil
}

func (s *MemStore) DeleteCategory(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return false, nil
	}
	delete(s.categories, id)

	// Children of a deleted category become roots and products lose the
	// reference, matching ON DELETE SET NULL in the relational schema.
	for _, category := range s.categories {
		if category.ParentID != nil && *category.ParentID == id {
			category.ParentID = nil
		}
	}
	for _, product := range s.products {
		if product.CategoryID != nil && *product.CategoryID == id {
			product.CategoryID = nil
		}
	}
	return true, nil
}

// --- Brands ---

func (s *MemStore) GetBrand(id int64) (*models.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	brand, ok := s.brands[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *brand
	return &cp, nil
}

func (s *MemStore) GetBrands() ([]models.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	brands := make([]models.Brand, 0, len(s.brands))
	for _, brand := range s.brands {
		brands = append(brands, *brand)
	}
	sort.Slice(brands, func(i, j int) bool { return brands[i].ID < brands[j].ID })
	return brands, nil
}

func (s *MemStore) CreateBrand(input models.CreateBrandInput) (*models.Brand, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, brand := range s.brands {
		if brand.Name == input.Name {
			return nil, ErrDuplicate
		}
	}

	id := s.brandID
	s.brandID++
	now := time.Now()

	brand := &models.Brand{
		ID:          id,
		Name:        input.Name,
		Logo:        input.Logo,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.brands[id] = brand

	cp := *brand
	return &cp, nil
}

func (s *MemStore) UpdateBrand(id int64, input models.UpdateBrandInput) (*models.Brand, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	brand, ok := s.brands[id]
	if !ok {
		return nil, ErrNotFound
	}

	if input.Name != nil && *input.Name != brand.Name {
		for _, other := range s.brands {
			if other.Name == *input.Name {
				return nil, ErrDuplicate
			}
		}
		brand.Name = *input.Name
	}
	if input.Logo != nil {
		brand.Logo = input.Logo
	}
	if input.Description != nil {
		brand.Description = input.Description
	}
	brand.UpdatedAt = time.Now()

	cp := *brand
	return &cp, nil
}

func (s *MemStore) DeleteBrand(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.brands[id]; !ok {
		return false, nil
	}
	delete(s.brands, id)
	for _, product := range s.products {
		if product.BrandID != nil && *product.BrandID == id {
			product.BrandID = nil
		}
	}
	return true, nil
}

// --- Customers ---

func (s *MemStore) GetCustomer(id int64) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customer, ok := s.customers[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *customer
	return &cp, nil
}

func (s *MemStore) GetCustomers() ([]models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customers := make([]models.Customer, 0, len(s.customers))
	for _, customer := range s.customers {
		customers = append(customers, *customer)
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].ID < customers[j].ID })
	return customers, nil
}

func (s *MemStore) GetCustomerSummaries() ([]models.CustomerSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type tally struct {
		count int
		spent float64
	}
	tallies := make(map[int64]tally)
	for _, order := range s.orders {
		t := tallies[order.CustomerID]
		t.count++
		t.spent += order.Total
		tallies[order.CustomerID] = t
	}

	summaries := make([]models.CustomerSummary, 0, len(s.customers))
	for _, customer := range s.customers {
		t := tallies[customer.ID]
		summaries = append(summaries, models.CustomerSummary{
			Customer:   *customer,
			OrderCount: t.count,
			TotalSpent: models.FormatMoney(t.spent),
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries, nil
}

func (s *MemStore) CreateCustomer(input models.CreateCustomerInput) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, customer := range s.customers {
		if customer.Email == input.Email {
			return nil, ErrDuplicate
		}
	}

	status := input.Status
	if status == "" {
		status = models.CustomerStatusActive
	}

	id := s.customerID
	s.customerID++

	customer := &models.Customer{
		ID:               id,
		Name:             input.Name,
		Email:            input.Email,
		Phone:            input.Phone,
		Avatar:           input.Avatar,
		Status:           status,
		Address:          input.Address,
		RegistrationDate: time.Now(),
	}
	s.customers[id] = customer

	cp := *customer
	return &cp, nil
}

func (s *MemStore) UpdateCustomer(id int64, input models.UpdateCustomerInput) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers[id]
	if !ok {
		return nil, ErrNotFound
	}

	if input.Email != nil && *input.Email != customer.Email {
		for _, other := range s.customers {
			if other.Email == *input.Email {
				return nil, ErrDuplicate
			}
		}
		customer.Email = *input.Email
	}
	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Avatar != nil {
		customer.Avatar = input.Avatar
	}
	if input.Status != nil {
		customer.Status = *input.Status
	}
	if input.Address != nil {
		customer.Address = input.Address
	}

	cp := *customer
	return &cp, nil
}

func (s *MemStore) DeleteCustomer(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[id]; !ok {
		return false, nil
	}

	// Orders, refunds and tickets are business records that must keep a
	// real customer behind them.
	for _, order := range s.orders {
		if order.CustomerID == id {
			return false, ErrInUse
		}
	}
	for _, refund := range s.refunds {
		if refund.CustomerID == id {
			return false, ErrInUse
		}
	}
	for _, ticket := range s.tickets {
		if ticket.CustomerID == id {
			return false, ErrInUse
		}
	}

	delete(s.customers, id)
	for reviewID, review := range s.reviews {
		if review.CustomerID == id {
			delete(s.reviews, reviewID)
		}
	}
	for _, replies := range s.ticketReplies {
		for i := range replies {
			if replies[i].CustomerID != nil && *replies[i].CustomerID == id {
				replies[i].CustomerID = nil
			}
		}
	}
	return true, nil
}

// --- Orders ---

func (s *MemStore) GetOrder(id int64) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *order
	return &cp, nil
}

func (s *MemStore) GetOrders() ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]models.Order, 0, len(s.orders))
	for _, order := range s.orders {
		orders = append(orders, *order)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, nil
}

func (s *MemStore) GetOrderWithItems(id int64) (*models.OrderDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}

	detail := &models.OrderDetail{
		Order: *order,
		Items: []models.OrderItemDetail{},
	}
	if customer, ok := s.customers[order.CustomerID]; ok {
		cp := *customer
		detail.Customer = &cp
	}
	for _, item := range s.orderItems[id] {
		itemDetail := models.OrderItemDetail{OrderItem: item}
		if product, ok := s.products[item.ProductID]; ok {
			cp := *product
			itemDetail.Product = &cp
		}
		detail.Items = append(detail.Items, itemDetail)
	}
	return detail, nil
}

func (s *MemStore) GetRecentOrders(limit int) ([]models.RecentOrder, error) {
	if limit <= 0 {
		limit = 4
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]*models.Order, 0, len(s.orders))
	for _, order := range s.orders {
		orders = append(orders, order)
	}
	// Most recent first; equal dates keep insertion order.
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].OrderDate.After(orders[j].OrderDate) })
	if len(orders) > limit {
		orders = orders[:limit]
	}

	recent := make([]models.RecentOrder, 0, len(orders))
	for _, order := range orders {
		entry := models.RecentOrder{
			ID:     order.OrderNumber,
			Amount: models.FormatMoney(order.Total),
			Status: capitalizeStatus(order.Status),
			Date:   order.OrderDate.Format("January 2, 2006"),
		}
		if customer, ok := s.customers[order.CustomerID]; ok {
			avatar := fallbackAvatar(customer.Name)
			if customer.Avatar != nil && *customer.Avatar != "" {
				avatar = *customer.Avatar
			}
			entry.Customer = models.RecentOrderCustomer{
				ID:     customer.ID,
				Name:   customer.Name,
				Avatar: avatar,
			}
		} else {
			entry.Customer = models.RecentOrderCustomer{
				Name:   "Unknown Customer",
				Avatar: fallbackAvatar(""),
			}
		}
		recent = append(recent, entry)
	}
	return recent, nil
}

func (s *MemStore) CreateOrder(order models.CreateOrderInput, items []models.CreateOrderItemInput) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate every reference up front so a bad item never leaves a
	// half-created order behind. This is the in-memory equivalent of the
	// relational transaction around order + items.
	if _, ok := s.customers[order.CustomerID]; !ok {
		return nil, fmt.Errorf("customer %d: %w", order.CustomerID, ErrNotFound)
	}
	for _, item := range items {
		if _, ok := s.products[item.ProductID]; !ok {
			return nil, fmt.Errorf("product %d: %w", item.ProductID, ErrNotFound)
		}
	}

	status := order.Status
	if status == "" {
		status = models.OrderStatusPending
	}
	paymentStatus := order.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = models.PaymentStatusUnpaid
	}

	id := s.orderID
	s.orderID++

	newOrder := &models.Order{
		ID:                id,
		OrderNumber:       orderNumber(id),
		CustomerID:        order.CustomerID,
		Status:            status,
		PaymentStatus:     paymentStatus,
		PaymentMethod:     order.PaymentMethod,
		ShippingMethod:    order.ShippingMethod,
		ShippingAddress:   order.ShippingAddress,
		TrackingNumber:    order.TrackingNumber,
		EstimatedDelivery: order.EstimatedDelivery,
		Subtotal:          order.Subtotal,
		ShippingCost:      order.ShippingCost,
		Tax:               order.Tax,
		Total:             order.Total,
		Notes:             order.Notes,
		OrderDate:         time.Now(),
	}
	s.orders[id] = newOrder

	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		itemID := s.itemID
		s.itemID++
		orderItems = append(orderItems, models.OrderItem{
			ID:        itemID,
			OrderID:   id,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	s.orderItems[id] = orderItems

	cp := *newOrder
	return &cp, nil
}

func (s *MemStore) UpdateOrderStatus(id int64, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	order.Status = status

	cp := *order
	return &cp, nil
}

// --- Product Reviews ---

func (s *MemStore) GetProductReview(id int64) (*models.ProductReview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	review, ok := s.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *review
	return &cp, nil
}

func (s *MemStore) GetProductReviews() ([]models.ProductReview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reviews := make([]models.ProductReview, 0, len(s.reviews))
	for _, review := range s.reviews {
		reviews = append(reviews, *review)
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].ID < reviews[j].ID })
	return reviews, nil
}

func (s *MemStore) CreateProductReview(input models.CreateProductReviewInput) (*models.ProductReview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[input.ProductID]; !ok {
		return nil, fmt.Errorf("product %d: %w", input.ProductID, ErrNotFound)
	}
	if _, ok := s.customers[input.CustomerID]; !ok {
		return nil, fmt.Errorf("customer %d: %w", input.CustomerID, ErrNotFound)
	}

	id := s.reviewID
	s.reviewID++

	review := &models.ProductReview{
		ID:         id,
		ProductID:  input.ProductID,
		CustomerID: input.CustomerID,
		Rating:     input.Rating,
		Comment:    input.Comment,
		Status:     models.ReviewStatusPending,
		CreatedAt:  time.Now(),
	}
	s.reviews[id] = review

	cp := *review
	return &cp, nil
}

func (s *MemStore) UpdateReviewStatus(id int64, status string) (*models.ProductReview, error) {
	if !models.ValidReviewStatus(status) {
		return nil, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	review, ok := s.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	review.Status = status

	cp := *review
	return &cp, nil
}

func (s *MemStore) DeleteReview(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[id]; !ok {
		return false, nil
	}
	delete(s.reviews, id)
	return true, nil
}

// --- Refunds ---

func (s *MemStore) GetRefund(id int64) (*models.Refund, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	refund, ok := s.refunds[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *refund
	return &cp, nil
}

func (s *MemStore) GetRefunds() ([]models.Refund, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	refunds := make([]models.Refund, 0, len(s.refunds))
	for _, refund := range s.refunds {
		refunds = append(refunds, *refund)
	}
	sort.Slice(refunds, func(i, j int) bool { return refunds[i].ID < refunds[j].ID })
	return refunds, nil
}

func (s *MemStore) CreateRefund(input models.CreateRefundInput) (*models.Refund, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[input.OrderID]; !ok {
		return nil, fmt.Errorf("order %d: %w", input.OrderID, ErrNotFound)
	}
	if _, ok := s.customers[input.CustomerID]; !ok {
		return nil, fmt.Errorf("customer %d: %w", input.CustomerID, ErrNotFound)
	}

	id := s.refundID
	s.refundID++

	refund := &models.Refund{
		ID:          id,
		OrderID:     input.OrderID,
		CustomerID:  input.CustomerID,
		Amount:      input.Amount,
		Reason:      input.Reason,
		Status:      models.RefundStatusPending,
		Notes:       input.Notes,
		RequestDate: time.Now(),
	}
	s.refunds[id] = refund

	cp := *refund
	return &cp, nil
}

func (s *MemStore) UpdateRefundStatus(id int64, status string, notes *string) (*models.Refund, error) {
	if !models.ValidRefundStatus(status) {
		return nil, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	refund, ok := s.refunds[id]
	if !ok {
		return nil, ErrNotFound
	}

	refund.Status = status
	if notes != nil {
		refund.Notes = notes
	}
	// ProcessedDate marks the decision time; a refund moved back to
	// pending has not been decided.
	if status == models.RefundStatusApproved || status == models.RefundStatusRejected {
		now := time.Now()
		refund.ProcessedDate = &now
	} else {
		refund.ProcessedDate = nil
	}

	cp := *refund
	return &cp, nil
}

// --- Refund Settings ---

func (s *MemStore) GetRefundSettings() (*models.RefundSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.refundSettings == nil {
		return nil, ErrNotFound
	}
	cp := *s.refundSettings
	return &cp, nil
}

func (s *MemStore) UpdateRefundSettings(input models.UpdateRefundSettingsInput) (*models.RefundSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.refundSettings == nil {
		s.refundSettings = defaultRefundSettings()
	}
	settings := s.refundSettings

	if input.TimeLimit != nil {
		settings.TimeLimit = *input.TimeLimit
	}
	if input.RestockingFee != nil {
		settings.RestockingFee = *input.RestockingFee
	}
	if input.AutoApproveBelow != nil {
		settings.AutoApproveBelow = input.AutoApproveBelow
	}
	if input.EligibleStatuses != nil {
		settings.EligibleStatuses = input.EligibleStatuses
	}
	if input.RefundPolicy != nil {
		settings.RefundPolicy = *input.RefundPolicy
	}
	settings.ID = 1
	settings.UpdatedAt = time.Now()

	cp := *settings
	return &cp, nil
}

// --- Support Tickets ---

func (s *MemStore) GetSupportTicket(id int64) (*models.SupportTicket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ticket, ok := s.tickets[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *ticket
	return &cp, nil
}

func (s *MemStore) GetSupportTickets() ([]models.SupportTicket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tickets := make([]models.SupportTicket, 0, len(s.tickets))
	for _, ticket := range s.tickets {
		tickets = append(tickets, *ticket)
	}
	// Freshest tickets first; replying to a ticket bumps it to the top.
	sort.Slice(tickets, func(i, j int) bool { return tickets[i].ID < tickets[j].ID })
	sort.SliceStable(tickets, func(i, j int) bool { return tickets[i].UpdatedAt.After(tickets[j].UpdatedAt) })
	return tickets, nil
}

func (s *MemStore) GetTicketReplies(ticketID int64) ([]models.TicketReply, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.tickets[ticketID]; !ok {
		return nil, ErrNotFound
	}
	replies := make([]models.TicketReply, len(s.ticketReplies[ticketID]))
	copy(replies, s.ticketReplies[ticketID])
	return replies, nil
}

func (s *MemStore) CreateSupportTicket(input models.CreateSupportTicketInput) (*models.SupportTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[input.CustomerID]; !ok {
		return nil, fmt.Errorf("customer %d: %w", input.CustomerID, ErrNotFound)
	}
	if input.AssignedTo != nil {
		if _, ok := s.users[*input.AssignedTo]; !ok {
			return nil, ErrUserNotFound
		}
	}

	status := input.Status
	if status == "" {
		status = models.TicketStatusOpen
	}
	priority := input.Priority
	if priority == "" {
		priority = models.TicketPriorityMedium
	}

	id := s.ticketID
	s.ticketID++
	now := time.Now()

	ticket := &models.SupportTicket{
		ID:           id,
		TicketNumber: ticketNumber(id),
		CustomerID:   input.CustomerID,
		Subject:      input.Subject,
		Message:      input.Message,
		OrderID:      input.OrderID,
		Status:       status,
		Priority:     priority,
		AssignedTo:   input.AssignedTo,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.tickets[id] = ticket

	cp := *ticket
	return &cp, nil
}

func (s *MemStore) UpdateTicketStatus(id int64, status string) (*models.SupportTicket, error) {
	if !models.ValidTicketStatus(status) {
		return nil, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.tickets[id]
	if !ok {
		return nil, ErrNotFound
	}
	ticket.Status = status
	ticket.UpdatedAt = time.Now()

	cp := *ticket
	return &cp, nil
}

func (s *MemStore) AssignTicket(id int64, userID int64) (*models.SupportTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.tickets[id]
	if !ok {
		return nil, ErrNotFound
	}
	if _, ok := s.users[userID]; !ok {
		return nil, ErrUserNotFound
	}

	ticket.AssignedTo = &userID
	ticket.UpdatedAt = time.Now()

	cp := *ticket
	return &cp, nil
}

func (s *MemStore) AddTicketReply(input models.CreateTicketReplyInput) (*models.TicketReply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.tickets[input.TicketID]
	if !ok {
		return nil, ErrNotFound
	}

	id := s.replyID
	s.replyID++
	now := time.Now()

	reply := models.TicketReply{
		ID:         id,
		TicketID:   input.TicketID,
		UserID:     input.UserID,
		CustomerID: input.CustomerID,
		Message:    input.Message,
		CreatedAt:  now,
	}
	s.ticketReplies[input.TicketID] = append(s.ticketReplies[input.TicketID], reply)

	// The reply must surface in the ticket's freshness ordering.
	ticket.UpdatedAt = now

	cp := reply
	return &cp, nil
}

// --- Site Settings ---

func (s *MemStore) GetSiteSettings() (*models.SiteSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.siteSettings == nil {
		return nil, ErrNotFound
	}
	cp := *s.siteSettings
	return &cp, nil
}

func (s *MemStore) UpdateSiteSettings(input models.UpdateSiteSettingsInput) (*models.SiteSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.siteSettings == nil {
		s.siteSettings = defaultSiteSettings()
	}
	settings := s.siteSettings

	if input.SiteName != nil {
		settings.SiteName = *input.SiteName
	}
	if input.Logo != nil {
		settings.Logo = input.Logo
	}
	if input.Favicon != nil {
		settings.Favicon = input.Favicon
	}
	if input.PrimaryColor != nil {
		settings.PrimaryColor = *input.PrimaryColor
	}
	if input.SecondaryColor != nil {
		settings.SecondaryColor = *input.SecondaryColor
	}
	if input.ContactEmail != nil {
		settings.ContactEmail = *input.ContactEmail
	}
	if input.ContactPhone != nil {
		settings.ContactPhone = input.ContactPhone
	}
	if input.Address != nil {
		settings.Address = input.Address
	}
	if input.SocialLinks != nil {
		settings.SocialLinks = input.SocialLinks
	}
	if input.ShippingMethods != nil {
		settings.ShippingMethods = input.ShippingMethods
	}
	if input.PaymentMethods != nil {
		settings.PaymentMethods = input.PaymentMethods
	}
	if input.PrivacyPolicy != nil {
		settings.PrivacyPolicy = input.PrivacyPolicy
	}
	if input.TermsOfService != nil {
		settings.TermsOfService = input.TermsOfService
	}
	if input.ReturnPolicy != nil {
		settings.ReturnPolicy = input.ReturnPolicy
	}
	settings.ID = 1
	settings.UpdatedAt = time.Now()

	cp := *settings
	return &cp, nil
}

// --- Dashboard ---

func (s *MemStore) GetDashboardStats() (*models.DashboardStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &models.DashboardStats{TotalOrders: len(s.orders)}

	var totalSales float64
	for _, order := range s.orders {
		if order.PaymentStatus == models.PaymentStatusPaid {
			totalSales += order.Total
		}
	}
	stats.TotalSales = models.FormatMoney(totalSales)

	for _, customer := range s.customers {
		if customer.Status == models.CustomerStatusActive {
			stats.ActiveCustomers++
		}
	}
	for _, refund := range s.refunds {
		if refund.Status == models.RefundStatusPending {
			stats.PendingRefunds++
		}
	}
	return stats, nil
}
