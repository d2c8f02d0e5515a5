package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/gosimple/slug"
	"github.com/shopadmin/shopadmin-golang/internal/models"
)

// MySQLStore fulfills the storage contract against a relational database.
// Every operation maps to a single-table statement except CreateOrder (one
// transaction spanning the order insert and all item inserts) and the
// singleton-settings updates (check existence, then insert or update).
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore wraps an open connection pool. Run Migrate first.
func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

// rowScanner lets the scan helpers work on both sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// marshalJSON prepares a Go value for a JSON column; nil stays NULL.
func marshalJSON(v any) (any, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		if val == nil {
			return nil, nil
		}
	case []string:
		if val == nil {
			return nil, nil
		}
	}
	return json.Marshal(v)
}

func unmarshalMap(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func unmarshalStrings(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// translateErr maps driver errors onto the store sentinels: missing rows and
// broken foreign keys become ErrNotFound, unique collisions ErrDuplicate,
// and a delete blocked by dependent rows ErrInUse.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case 1062:
			return ErrDuplicate
		case 1451:
			return ErrInUse
		case 1452:
			return ErrNotFound
		}
	}
	return err
}

// --- Users ---

const userColumns = "id, username, password_hash"

func scanUser(s rowScanner) (*models.User, error) {
	var user models.User
	if err := s.Scan(&user.ID, &user.Username, &user.PasswordHash); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MySQLStore) GetUser(id int64) (*models.User, error) {
	user, err := scanUser(s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id))
	if err != nil {
		return nil, translateErr(err)
	}
	return user, nil
}

func (s *MySQLStore) GetUserByUsername(username string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE username = ?", username))
	if err != nil {
		return nil, translateErr(err)
	}
	return user, nil
}

func (s *MySQLStore) CreateUser(input models.CreateUserInput) (*models.User, error) {
	var password models.Password
	if err := password.Set(input.Password); err != nil {
		return nil, err
	}

	result, err := s.db.Exec(
		"INSERT INTO users (username, password_hash) VALUES (?, ?)",
		input.Username, password.Hash,
	)
	if err != nil {
		return nil, translateErr(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.User{ID: id, Username: input.Username, PasswordHash: password.Hash}, nil
}

// --- Products ---

const productColumns = "id, name, description, price, stock, sku, image, status, category_id, brand_id, created_at, updated_at"

func scanProduct(s rowScanner) (*models.Product, error) {
	var p models.Product
	if err := s.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.SKU,
		&p.Image, &p.Status, &p.CategoryID, &p.BrandID, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *MySQLStore) GetProduct(id int64) (*models.Product, error) {
	product, err := scanProduct(s.db.QueryRow("SELECT "+productColumns+" FROM products WHERE id = ?", id))
	if err != nil {
		return nil, translateErr(err)
	}
	return product, nil
}

func (s *MySQLStore) GetProducts() ([]models.Product, error) {
	rows, err := s.db.Query("SELECT " + productColumns + " FROM products ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}
	return products, rows.Err()
}

func (s *MySQLStore) GetTopSellingProducts(limit int) ([]models.TopSellingProduct, error) {
	if limit <= 0 {
		limit = 5
	}

	// Rank every product by all-time units sold; products without sales
	// trail the list with a zero count.
	query := `
		SELECT p.id, p.name, p.image, p.price, COALESCE(SUM(oi.quantity), 0) AS sold
		FROM products p
		LEFT JOIN order_items oi ON oi.product_id = p.id
		GROUP BY p.id, p.name, p.image, p.price
		ORDER BY sold DESC, p.id ASC
		LIMIT ?`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var top []models.TopSellingProduct
	for rows.Next() {
		var (
			entry models.TopSellingProduct
			image *string
			price float64
		)
		if err := rows.Scan(&entry.ID, &entry.Name, &image, &price, &entry.SoldCount); err != nil {
			return nil, err
		}
		entry.Price = models.FormatMoney(price)
		if image != nil && *image != "" {
			entry.Image = *image
		} else {
			entry.Image = fallbackImage(entry.Name)
		}
		top = append(top, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(top) == 0 {
		return top, nil
	}

	// Second pass: units in the trailing 30-day window against the 30
	// days before it, for the change percentage.
	now := time.Now()
	windowStart := now.AddDate(0, 0, -30)
	previousStart := now.AddDate(0, 0, -60)

	windowQuery := `
		SELECT oi.product_id,
			COALESCE(SUM(CASE WHEN o.order_date >= ? THEN oi.quantity ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN o.order_date >= ? AND o.order_date < ? THEN oi.quantity ELSE 0 END), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		GROUP BY oi.product_id`

	windowRows, err := s.db.Query(windowQuery, windowStart, previousStart, windowStart)
	if err != nil {
		return nil, err
	}
	defer windowRows.Close()

	type window struct{ recent, previous int }
	windows := make(map[int64]window)
	for windowRows.Next() {
		var (
			productID int64
			w         window
		)
		if err := windowRows.Scan(&productID, &w.recent, &w.previous); err != nil {
			return nil, err
		}
		windows[productID] = w
	}
	if err := windowRows.Err(); err != nil {
		return nil, err
	}

	for i := range top {
		w := windows[top[i].ID]
		top[i].PercentageChange = percentageChange(w.recent, w.previous)
	}
	return top, nil
}

func (s *MySQLStore) CreateProduct(input models.CreateProductInput) (*models.Product, error) {
	status := input.Status
	if status == "" {
		status = models.ProductStatusPublished
	}
	now := time.Now()

	query := `
		INSERT INTO products
		(name, description, price, stock, sku, image, status, category_id, brand_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := s.db.Exec(query,
		input.Name, input.Description, input.Price, input.Stock, input.SKU,
		input.Image, status, input.CategoryID, input.BrandID, now, now,
	)
	if err != nil {
		return nil, translateErr(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetProduct(id)
}

func (s *MySQLStore) UpdateProduct(id int64, input models.UpdateProductInput) (*models.Product, error) {
	if input.Status != nil && !models.ValidProductStatus(*input.Status) {
		return nil, ErrInvalidStatus
	}
	if _, err := s.GetProduct(id); err != nil {
		return nil, err
	}

	// Build the SET clause dynamically so absent fields stay untouched.
	querySet := "updated_at = ?"
	queryArgs := []any{time.Now()}

	if input.Name != nil {
		querySet += ", name = ?"
		queryArgs = append(queryArgs, *input.Name)
	}
	if input.Description != nil {
		querySet += ", description = ?"
		queryArgs = append(queryArgs, *input.Description)
	}
	if input.Price != nil {
		querySet += ", price = ?"
		queryArgs = append(queryArgs, *input.Price)
	}
	if input.Stock != nil {
		querySet += ", stock = ?"
		queryArgs = append(queryArgs, *input.Stock)
	}
	if input.SKU != nil {
		querySet += ", sku = ?"
		queryArgs = append(queryArgs, *input.SKU)
	}
	if input.Image != nil {
		querySet += ", image = ?"
		queryArgs = append(queryArgs, *input.Image)
	}
	if input.Status != nil {
		querySet += ", status = ?"
		queryArgs = append(queryArgs, *input.Status)
	}
	if input.CategoryID != nil {
		querySet += ", category_id = ?"
		queryArgs = append(queryArgs, *input.CategoryID)
	}
	if input.BrandID != nil {
		querySet += ", brand_id = ?"
		queryArgs = append(queryArgs, *input.BrandID)
	}
	queryArgs = append(queryArgs, id)

	if _, err := s.db.Exec(fmt.Sprintf("UPDATE products SET %s WHERE id = ?", querySet), queryArgs...); err != nil {
		return nil, translateErr(err)
	}
	return s.GetProduct(id)
}

func (s *MySQLStore) DeleteProduct(id int64) (bool, error) {
	return s.deleteByID("products", id)
}

// deleteByID performs a hard delete and reports whether a row existed.
// A delete blocked by dependent rows comes back as ErrInUse.
func (s *MySQLStore) deleteByID(table string, id int64) (bool, error) {
	result, err := s.db.Exec(fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), id)
	if err != nil {
		return false, translateErr(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// --- Categories ---

const categoryColumns = "id, name, slug, parent_id, created_at, updated_at"

func scanCategory(s rowScanner) (*models.Category, error) {
	var c models.Category
	if err := s.Scan(&c.ID, &c.Name, &c.Slug, &c.ParentID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *MySQLStore) GetCategory(id int64) (*models.Category, error) {
	category, err := scanCategory(s.db.QueryRow("SELECT "+categoryColumns+" FROM categories WHERE id = ?", id))
	if err != nil {
		return nil, translateErr(err)
	}
	return category, nil
}

func (s *MySQLStore) GetCategories() ([]models.Category, error) {
	rows, err := s.db.Query("SELECT " + categoryColumns + " FROM categories ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}
	return categories, rows.Err()
}

func (s *MySQLStore) CreateCategory(input models.CreateCategoryInput) (*models.Category, error) {
	now := time.Now()
	result, err := s.db.Exec(
		"INSERT INTO categories (name, slug, parent_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		input.Name, slug.Make(input.Name), input.ParentID, now, now,
	)
	if err != nil {
		return nil, translateErr(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetCategory(id)
}

func (s *MySQLStore) UpdateCategory(id int64, input models.UpdateCategoryInput) (*models.Category, error) {
	if _, err := s.GetCategory(id); err != nil {
		return nil, err
	}

	querySet := "updated_at = ?"
	queryArgs := []any{time.Now()}

	if input.Name != nil {
		// The slug tracks the name so stored links never go stale.
		querySet += ", name = ?, slug = ?"
		queryArgs = append(queryArgs, *input.Name, slug.Make(*input.Name))
	}
	if input.ParentID != nil {
		querySet += ", parent_id = ?"
		queryArgs = append(queryArgs, *input.ParentID)
	}
	queryArgs = append(queryArgs, id)

	if _, err := s.db.Exec(fmt.Sprintf("UPDATE categories SET %s WHERE id = ?", querySet), queryArgs...); err != nil {
		return nil, translateErr(err)
	}
	return s.GetCategory(id)
}

func (s *MySQLStore) DeleteCategory(id int64) (bool, error) {
	return s.deleteByID("categories", id)
}

// --- Brands ---

const brandColumns = "id, name, logo, description, created_at, updated_at"

func scanBrand(s rowScanner) (*models.Brand, error) {
	var b models.Brand
	if err := s.Scan(&b.ID, &b.Name, &b.Logo, &b.Description, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *MySQLStore) GetBrand(id int64) (*models.Brand, error) {
	brand, err := scanBrand(s.db.QueryRow("SELECT "+brandColumns+" FROM brands WHERE id = ?", id))
	if err != nil {
		return nil, translateErr(err)
	}
	return brand, nil
}

func (s *MySQLStore) GetBrands() ([]models.Brand, error) {
	rows, err := s.db.Query("SELECT " + brandColumns + " FROM brands ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brands []models.Brand
	for rows.Next() {
		brand, err := scanBrand(rows)
		if err != nil {
			return nil, err
		}
		brands = append(brands, *brand)
	}
	return brands, rows.Err()
}

func (s *MySQLStore) CreateBrand(input models.CreateBrandInput) (*models.Brand, error) {
	now := time.Now()
	result, err := s.db.Exec(
		"INSERT INTO brands (name, logo, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		input.Name, input.Logo, input.Description, now, now,
	)
	if err != nil {
		return nil, translateErr(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetBrand(id)
}

func (s *MySQLStore) UpdateBrand(id int64, input models.UpdateBrandInput) (*models.Brand, error) {
	if _, err := s.GetBrand(id); err != nil {
		return nil, err
	}

	querySet := "updated_at = ?"
	queryArgs := []any{time.Now()}

	if input.Name != nil {
		querySet += ", name = ?"
		queryArgs = append(queryArgs, *input.Name)
	}
	if input.Logo != nil {
		querySet += ", logo = ?"
		queryArgs = append(queryArgs, *input.Logo)
	}
	if input.Description != nil {
		querySet += ", description = ?"
		queryArgs = append(queryArgs, *input.Description)
	}
	queryArgs = append(queryArgs, id)

	if _, err := s.db.Exec(fmt.Sprintf("UPDATE brands SET %s WHERE id = ?", querySet), queryArgs...); err != nil {
		return nil, translateErr(err)
	}
	return s.GetBrand(id)
}

func (s *MySQLStore) DeleteBrand(id int64) (bool, error) {
	return s.deleteByID("brands", id)
}

// --- Customers ---

const customerColumns = "id, name, email, phone, avatar, status, address, registration_date"

func scanCustomer(s rowScanner) (*models.Customer, error) {
	var (
		c       models.Customer
		address []byte
	)
	if err := s.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Avatar, &c.Status, &address, &c.RegistrationDate); err != nil {
		return nil, err
	}
	var err error
	if c.Address, err = unmarshalMap(address); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *MySQLStore) GetCustomer(id int64) (*models.Customer, error) {
	customer, err := scanCustomer(s.db.QueryRow("SELECT "+customerColumns+" FROM customers WHERE id = ?", id))
	if err != nil {
		return nil, translateErr(err)
	}
	return customer, nil
}

func (s *MySQLStore) GetCustomers() ([]models.Customer, error) {
	rows, err := s.db.Query("SELECT " + customerColumns + " FROM customers ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *customer)
	}
	return customers, rows.Err()
}

func (s *MySQLStore) GetCustomerSummaries() ([]models.CustomerSummary, error) {
	query := `
		SELECT c.id, c.name, c.email, c.phone, c.avatar, c.status, c.address, c.registration_date,
			COUNT(o.id), COALESCE(SUM(o.total), 0)
		FROM customers c
		LEFT JOIN orders o ON o.customer_id = c.id
		GROUP BY c.id, c.name, c.email, c.phone, c.avatar, c.status, c.address, c.registration_date
		ORDER BY c.id ASC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []models.CustomerSummary
	for rows.Next() {
		var (
			summary models.CustomerSummary
			address []byte
			spent   float64
		)
		if err := rows.Scan(
			&summary.ID, &summary.Name, &summary.Email, &summary.Phone, &summary.Avatar,
			&summary.Status, &address, &summary.RegistrationDate, &summary.OrderCount, &spent,
		); err != nil {
			return nil, err
		}
		if summary.Address, err = unmarshalMap(address); err != nil {
			return nil, err
		}
		summary.TotalSpent = models.FormatMoney(spent)
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

func (s *MySQLStore) CreateCustomer(input models.CreateCustomerInput) (*models.Customer, error) {
	status := input.Status
	if status == "" {
		status = models.CustomerStatusActive
	}
	address, err := marshalJSON(input.Address)
	if err != nil {
		return nil, err
	}

	result, err := s.db.Exec(`
		INSERT INTO customers (name, email, phone, avatar, status, address, registration_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		input.Name, input.Email, input.Phone, input.Avatar, status, address, time.Now(),
	)
	if err != nil {
		return nil, translateErr(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetCustomer(id)
}

func (s *MySQLStore) UpdateCustomer(id int64, input models.UpdateCustomerInput) (*models.Customer, error) {
	if _, err := s.GetCustomer(id); err != nil {
		return nil, err
	}

	querySet := ""
	var queryArgs []any
	addSet := func(clause string, arg any) {
		if querySet != "" {
			querySet += ", "
		}
		querySet += clause
		queryArgs = append(queryArgs, arg)
	}

	if input.Name != nil {
		addSet("name = ?", *input.Name)
	}
	if input.Email != nil {
		addSet("email = ?", *input.Email)
	}
	if input.Phone != nil {
		addSet("phone = ?", *input.Phone)
	}
	if input.Avatar != nil {
		addSet("avatar = ?", *input.Avatar)
	}
	if input.Status != nil {
		addSet("status = ?", *input.Status)
	}
	if input.Address != nil {
		address, err := marshalJSON(input.Address)
		if err != nil {
			return nil, err
		}
		addSet("address = ?", address)
	}
	if querySet == "" {
		return s.GetCustomer(id)
	}
	queryArgs = append(queryArgs, id)

	if _, err := s.db.Exec(fmt.Sprintf("UPDATE customers SET %s WHERE id = ?", querySet), queryArgs...); err != nil {
		return nil, translateErr(err)
	}
	return s.GetCustomer(id)
}

func (s *MySQLStore) DeleteCustomer(id int64) (bool, error) {
	return s.deleteByID("customers", id)
}

// --- Orders ---

const orderColumns = `id, order_number, customer_id, status, payment_status, payment_method,
	shipping_method, shipping_address, tracking_number, estimated_delivery,
	subtotal, shipping_cost, tax, total, notes, order_date`

func scanOrder(s rowScanner) (*models.Order, error) {
	var (
		o       models.Order
		address []byte
	)
	if err := s.Scan(
		&o.ID, &o.OrderNumber, &o.CustomerID, &o.Status, &o.PaymentStatus, &o.PaymentMethod,
		&o.ShippingMethod, &address, &o.TrackingNumber, &o.EstimatedDelivery,
		&o.Subtotal, &o.ShippingCost, &o.Tax, &o.Total, &o.Notes, &o.OrderDate,
	); err != nil {
		return nil, err
	}
	var err error
	if o.ShippingAddress, err = unmarshalMap(address); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *MySQLStore) GetOrder(id int64) (*models.Order, error) {
	order, err := scanOrder(s.db.QueryRow("SELECT "+orderColumns+" FROM orders WHERE id = ?", id))
	if err != nil {
		return nil, translateErr(err)
	}
	return order, nil
}

func (s *MySQLStore) GetOrders() ([]models.Order, error) {
	rows, err := s.db.Query("SELECT " + orderColumns + " FROM orders ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func (s *MySQLStore) GetOrderWithItems(id int64) (*models.OrderDetail, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}

	detail := &models.OrderDetail{Order: *order, Items: []models.OrderItemDetail{}}

	customer, err := s.GetCustomer(order.CustomerID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	detail.Customer = customer

	query := `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
			p.id, p.name, p.description, p.price, p.stock, p.sku, p.image, p.status,
			p.category_id, p.brand_id, p.created_at, p.updated_at
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ?
		ORDER BY oi.id ASC`

	rows, err := s.db.Query(query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item      models.OrderItemDetail
			productID *int64
			product   models.Product
			name, description, sku, status *string
			price     *float64
			stock     *int
			image     *string
			categoryID, brandID *int64
			createdAt, updatedAt *time.Time
		)
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price,
			&productID, &name, &description, &price, &stock, &sku, &image, &status,
			&categoryID, &brandID, &createdAt, &updatedAt,
		); err != nil {
			return nil, err
		}
		// The product join stays nullable so a missing product never
		// breaks the snapshot read.
		if productID != nil {
			product = models.Product{
				ID: *productID, Name: *name, Description: *description,
				Price: *price, Stock: *stock, SKU: *sku, Image: image, Status: *status,
				CategoryID: categoryID, BrandID: brandID,
				CreatedAt: *createdAt, UpdatedAt: *updatedAt,
			}
			item.Product = &product
		}
		detail.Items = append(detail.Items, item)
	}
	return detail, rows.Err()
}

func (s *MySQLStore) GetRecentOrders(limit int) ([]models.RecentOrder, error) {
	if limit <= 0 {
		limit = 4
	}

	query := `
		SELECT o.order_number, o.total, o.status, o.order_date, c.id, c.name, c.avatar
		FROM orders o
		LEFT JOIN customers c ON c.id = o.customer_id
		ORDER BY o.order_date DESC, o.id ASC
		LIMIT ?`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recent []models.RecentOrder
	for rows.Next() {
		var (
			entry      models.RecentOrder
			total      float64
			status     string
			orderDate  time.Time
			customerID *int64
			name       *string
			avatar     *string
		)
		if err := rows.Scan(&entry.ID, &total, &status, &orderDate, &customerID, &name, &avatar); err != nil {
			return nil, err
		}
		entry.Amount = models.FormatMoney(total)
		entry.Status = capitalizeStatus(status)
		entry.Date = orderDate.Format("January 2, 2006")

		if customerID != nil {
			entry.Customer.ID = *customerID
			entry.Customer.Name = *name
		} else {
			entry.Customer.Name = "Unknown Customer"
		}
		if avatar != nil && *avatar != "" {
			entry.Customer.Avatar = *avatar
		} else {
			entry.Customer.Avatar = fallbackAvatar(entry.Customer.Name)
		}
		recent = append(recent, entry)
	}
	return recent, rows.Err()
}

func (s *MySQLStore) CreateOrder(order models.CreateOrderInput, items []models.CreateOrderItemInput) (*models.Order, error) {
	status := order.Status
	if status == "" {
		status = models.OrderStatusPending
	}
	paymentStatus := order.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = models.PaymentStatusUnpaid
	}
	address, err := marshalJSON(order.ShippingAddress)
	if err != nil {
		return nil, err
	}

	// One transaction around the order insert and every item insert: a
	// failed item rolls the whole order back.
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// The order number derives from the generated id, so insert with a
	// transient placeholder and fix it up inside the same transaction.
	placeholder := fmt.Sprintf("PENDING-%d", time.Now().UnixNano())

	result, err := tx.Exec(`
		INSERT INTO orders
		(order_number, customer_id, status, payment_status, payment_method, shipping_method,
		 shipping_address, tracking_number, estimated_delivery, subtotal, shipping_cost, tax, total, notes, order_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		placeholder, order.CustomerID, status, paymentStatus, order.PaymentMethod, order.ShippingMethod,
		address, order.TrackingNumber, order.EstimatedDelivery,
		order.Subtotal, order.ShippingCost, order.Tax, order.Total, order.Notes, time.Now(),
	)
	if err != nil {
		return nil, translateErr(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec("UPDATE orders SET order_number = ? WHERE id = ?", orderNumber(id), id); err != nil {
		return nil, translateErr(err)
	}

	for _, item := range items {
		if _, err := tx.Exec(
			"INSERT INTO order_items (order_id, product_id, quantity, price) VALUES (?, ?, ?, ?)",
			id, item.ProductID, item.Quantity, item.Price,
		); err != nil {
			return nil, translateErr(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.GetOrder(id)
}

func (s *MySQLStore) UpdateOrderStatus(id int64, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}
	if _, err := s.GetOrder(id); err != nil {
		return nil, err
	}
	if _, err := s.db.Exec("UPDATE orders SET status = ? WHERE id = ?", status, id); err != nil {
		return nil, translateErr(err)
	}
	return s.GetOrder(id)
}

// --- Product Reviews ---

const reviewColumns = "id, product_id, customer_id, rating, comment, status, created_at"

func scanReview(s rowScanner) (*models.ProductReview, error) {
	var r models.ProductReview
	if err := s.Scan(&r.ID, &r.ProductID, &r.CustomerID, &r.Rating, &r.Comment, &r.Status, &r.CreatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *MySQLStore) GetProductReview(id int64) (*models.ProductReview, error) {
	review, err := scanReview(s.db.QueryRow("SELECT "+reviewColumns+" FROM product_reviews WHERE id = ?", id))
	if err != nil {
		return nil, translateErr(err)
	}
	return review, nil
}

func (s *MySQLStore) GetProductReviews() ([]models.ProductReview, error) {
	rows, err := s.db.Query("SELECT " + reviewColumns + " FROM product_reviews ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.ProductReview
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *review)
	}
	return reviews, rows.Err()
}

func (s *MySQLStore) CreateProductReview(input models.CreateProductReviewInput) (*models.ProductReview, error) {
	result, err := s.db.Exec(`
		INSERT INTO product_reviews (product_id, customer_id, rating, comment, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		input.ProductID, input.CustomerID, input.Rating, input.Comment,
		models.ReviewStatusPending, time.Now(),
	)
	if err != nil {
		return nil, translateErr(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetProductReview(id)
}

func (s *MySQLStore) UpdateReviewStatus(id int64, status string) (*models.ProductReview, error) {
	if !models.ValidReviewStatus(status) {
		return nil, ErrInvalidStatus
	}
	if _, err := s.GetProductReview(id); err != nil {
		return nil, err
	}
	if _, err := s.db.Exec("UPDATE product_reviews SET status = ? WHERE id = ?", status, id); err != nil {
		return nil, translateErr(err)
	}
	return s.GetProductReview(id)
}

func (s *MySQLStore) DeleteReview(id int64) (bool, error) {
	return s.deleteByID("product_reviews", id)
}

// --- Refunds ---

const refundColumns = "id, order_id, customer_id, amount, reason, status, notes, request_date, processed_date"

func scanRefund(s rowScanner) (*models.Refund, error) {
	var r models.Refund
	if err := s.Scan(
		&r.ID, &r.OrderID, &r.CustomerID, &r.Amount, &r.Reason,
		&r.Status, &r.Notes, &r.RequestDate, &r.ProcessedDate,
	); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *MySQLStore) GetRefund(id int64) (*models.Refund, error) {
	refund, err := scanRefund(s.db.QueryRow("SELECT "+refundColumns+" FROM refunds WHERE id = ?", id))
	if err != nil {
		return nil, translateErr(err)
	}
	return refund, nil
}

func (s *MySQLStore) GetRefunds() ([]models.Refund, error) {
	rows, err := s.db.Query("SELECT " + refundColumns + " FROM refunds ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refunds []models.Refund
	for rows.Next() {
		refund, err := scanRefund(rows)
		if err != nil {
			return nil, err
		}
		refunds = append(refunds, *refund)
	}
	return refunds, rows.Err()
}

func (s *MySQLStore) CreateRefund(input models.CreateRefundInput) (*models.Refund, error) {
	result, err := s.db.Exec(`
		INSERT INTO refunds (order_id, customer_id, amount, reason, status, notes, request_date, processed_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, NULL)`,
		input.OrderID, input.CustomerID, input.Amount, input.Reason,
		models.RefundStatusPending, input.Notes, time.Now(),
	)
	if err != nil {
		return nil, translateErr(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetRefund(id)
}

func (s *MySQLStore) UpdateRefundStatus(id int64, status string, notes *string) (*models.Refund, error) {
	if !models.ValidRefundStatus(status) {
		return nil, ErrInvalidStatus
	}
	if _, err := s.GetRefund(id); err != nil {
		return nil, err
	}

	// ProcessedDate marks the decision time; only terminal states carry one.
	var processedDate *time.Time
	if status == models.RefundStatusApproved || status == models.RefundStatusRejected {
		now := time.Now()
		processedDate = &now
	}

	querySet := "status = ?, processed_date = ?"
	queryArgs := []any{status, processedDate}
	if notes != nil {
		querySet += ", notes = ?"
		queryArgs = append(queryArgs, *notes)
	}
	queryArgs = append(queryArgs, id)

	if _, err := s.db.Exec(fmt.Sprintf("UPDATE refunds SET %s WHERE id = ?", querySet), queryArgs...); err != nil {
		return nil, translateErr(err)
	}
	return s.GetRefund(id)
}

// --- Refund Settings ---

func (s *MySQLStore) GetRefundSettings() (*models.RefundSettings, error) {
	var (
		settings models.RefundSettings
		eligible []byte
	)
	err := s.db.QueryRow(`
		SELECT id, time_limit, restocking_fee, auto_approve_below, eligible_statuses, refund_policy, updated_at
		FROM refund_settings WHERE id = 1`,
	).Scan(
		&settings.ID, &settings.TimeLimit, &settings.RestockingFee,
		&settings.AutoApproveBelow, &eligible, &settings.RefundPolicy, &settings.UpdatedAt,
	)
	if err != nil {
		return nil, translateErr(err)
	}
	if settings.EligibleStatuses, err = unmarshalStrings(eligible); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *MySQLStore) UpdateRefundSettings(input models.UpdateRefundSettingsInput) (*models.RefundSettings, error) {
	// Get-or-create-on-update: merge into the existing row, or start from
	// the defaults when none exists yet. Always pinned at id 1.
	existing, err := s.GetRefundSettings()
	creating := false
	if errors.Is(err, ErrNotFound) {
		existing = defaultRefundSettings()
		creating = true
	} else if err != nil {
		return nil, err
	}

	if input.TimeLimit != nil {
		existing.TimeLimit = *input.TimeLimit
	}
	if input.RestockingFee != nil {
		existing.RestockingFee = *input.RestockingFee
	}
	if input.AutoApproveBelow != nil {
		existing.AutoApproveBelow = input.AutoApproveBelow
	}
	if input.EligibleStatuses != nil {
		existing.EligibleStatuses = input.EligibleStatuses
	}
	if input.RefundPolicy != nil {
		existing.RefundPolicy = *input.RefundPolicy
	}
	existing.ID = 1
	existing.UpdatedAt = time.Now()

	eligible, err := marshalJSON(existing.EligibleStatuses)
	if err != nil {
		return nil, err
	}

	if creating {
		_, err = s.db.Exec(`
			INSERT INTO refund_settings
			(id, time_limit, restocking_fee, auto_approve_below, eligible_statuses, refund_policy, updated_at)
			VALUES (1, ?, ?, ?, ?, ?, ?)`,
			existing.TimeLimit, existing.RestockingFee, existing.AutoApproveBelow,
			eligible, existing.RefundPolicy, existing.UpdatedAt,
		)
	} else {
		_, err = s.db.Exec(`
			UPDATE refund_settings
			SET time_limit = ?, restocking_fee = ?, auto_approve_below = ?,
				eligible_statuses = ?, refund_policy = ?, updated_at = ?
			WHERE id = 1`,
			existing.TimeLimit, existing.RestockingFee, existing.AutoApproveBelow,
			eligible, existing.RefundPolicy, existing.UpdatedAt,
		)
	}
	if err != nil {
		return nil, translateErr(err)
	}
	return existing, nil
}

// --- Support Tickets ---

const ticketColumns = `id, ticket_number, customer_id, subject, message, order_id,
	status, priority, assigned_to, created_at, updated_at`

func scanTicket(s rowScanner) (*models.SupportTicket, error) {
	var t models.SupportTicket
	if err := s.Scan(
		&t.ID, &t.TicketNumber, &t.CustomerID, &t.Subject, &t.Message, &t.OrderID,
		&t.Status, &t.Priority, &t.AssignedTo, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *MySQLStore) GetSupportTicket(id int64) (*models.SupportTicket, error) {
	ticket, err := scanTicket(s.db.QueryRow("SELECT "+ticketColumns+" FROM support_tickets WHERE id = ?", id))
	if err != nil {
		return nil, translateErr(err)
	}
	return ticket, nil
}

func (s *MySQLStore) GetSupportTickets() ([]models.SupportTicket, error) {
	// Freshest first: a reply bumps updated_at and so the ordering.
	rows, err := s.db.Query("SELECT " + ticketColumns + " FROM support_tickets ORDER BY updated_at DESC, id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []models.SupportTicket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *ticket)
	}
	return tickets, rows.Err()
}

const replyColumns = "id, ticket_id, user_id, customer_id, message, created_at"

func scanReply(s rowScanner) (*models.TicketReply, error) {
	var r models.TicketReply
	if err := s.Scan(&r.ID, &r.TicketID, &r.UserID, &r.CustomerID, &r.Message, &r.CreatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *MySQLStore) GetTicketReplies(ticketID int64) ([]models.TicketReply, error) {
	if _, err := s.GetSupportTicket(ticketID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query("SELECT "+replyColumns+" FROM ticket_replies WHERE ticket_id = ? ORDER BY id ASC", ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	replies := []models.TicketReply{}
	for rows.Next() {
		reply, err := scanReply(rows)
		if err != nil {
			return nil, err
		}
		replies = append(replies, *reply)
	}
	return replies, rows.Err()
}

func (s *MySQLStore) CreateSupportTicket(input models.CreateSupportTicketInput) (*models.SupportTicket, error) {
	status := input.Status
	if status == "" {
		status = models.TicketStatusOpen
	}
	priority := input.Priority
	if priority == "" {
		priority = models.TicketPriorityMedium
	}

	if input.AssignedTo != nil {
		if _, err := s.GetUser(*input.AssignedTo); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Same placeholder trick as orders: the ticket number derives from
	// the generated id.
	placeholder := fmt.Sprintf("PENDING-%d", time.Now().UnixNano())
	now := time.Now()

	result, err := tx.Exec(`
		INSERT INTO support_tickets
		(ticket_number, customer_id, subject, message, order_id, status, priority, assigned_to, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		placeholder, input.CustomerID, input.Subject, input.Message, input.OrderID,
		status, priority, input.AssignedTo, now, now,
	)
	if err != nil {
		return nil, translateErr(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec("UPDATE support_tickets SET ticket_number = ? WHERE id = ?", ticketNumber(id), id); err != nil {
		return nil, translateErr(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.GetSupportTicket(id)
}

func (s *MySQLStore) UpdateTicketStatus(id int64, status string) (*models.SupportTicket, error) {
	if !models.ValidTicketStatus(status) {
		return nil, ErrInvalidStatus
	}
	if _, err := s.GetSupportTicket(id); err != nil {
		return nil, err
	}
	if _, err := s.db.Exec("UPDATE support_tickets SET status = ?, updated_at = ? WHERE id = ?", status, time.Now(), id); err != nil {
		return nil, translateErr(err)
	}
	return s.GetSupportTicket(id)
}

func (s *MySQLStore) AssignTicket(id int64, userID int64) (*models.SupportTicket, error) {
	if _, err := s.GetSupportTicket(id); err != nil {
		return nil, err
	}
	if _, err := s.GetUser(userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if _, err := s.db.Exec("UPDATE support_tickets SET assigned_to = ?, updated_at = ? WHERE id = ?", userID, time.Now(), id); err != nil {
		return nil, translateErr(err)
	}
	return s.GetSupportTicket(id)
}

func (s *MySQLStore) AddTicketReply(input models.CreateTicketReplyInput) (*models.TicketReply, error) {
	if _, err := s.GetSupportTicket(input.TicketID); err != nil {
		return nil, err
	}

	// Reply insert and the parent's freshness bump travel together.
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now()
	result, err := tx.Exec(`
		INSERT INTO ticket_replies (ticket_id, user_id, customer_id, message, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		input.TicketID, input.UserID, input.CustomerID, input.Message, now,
	)
	if err != nil {
		return nil, translateErr(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec("UPDATE support_tickets SET updated_at = ? WHERE id = ?", now, input.TicketID); err != nil {
		return nil, translateErr(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	reply, err := scanReply(s.db.QueryRow("SELECT "+replyColumns+" FROM ticket_replies WHERE id = ?", id))
	if err != nil {
		return nil, translateErr(err)
	}
	return reply, nil
}

// --- Site Settings ---

func (s *MySQLStore) GetSiteSettings() (*models.SiteSettings, error) {
	var (
		settings models.SiteSettings
		address  []byte
		social   []byte
		shipping []byte
		payment  []byte
	)
	err := s.db.QueryRow(`
		SELECT id, site_name, logo, favicon, primary_color, secondary_color, contact_email,
			contact_phone, address, social_links, shipping_methods, payment_methods,
			privacy_policy, terms_of_service, return_policy, updated_at
		FROM site_settings WHERE id = 1`,
	).Scan(
		&settings.ID, &settings.SiteName, &settings.Logo, &settings.Favicon,
		&settings.PrimaryColor, &settings.SecondaryColor, &settings.ContactEmail,
		&settings.ContactPhone, &address, &social, &shipping, &payment,
		&settings.PrivacyPolicy, &settings.TermsOfService, &settings.ReturnPolicy, &settings.UpdatedAt,
	)
	if err != nil {
		return nil, translateErr(err)
	}

	if settings.Address, err = unmarshalMap(address); err != nil {
		return nil, err
	}
	if settings.SocialLinks, err = unmarshalMap(social); err != nil {
		return nil, err
	}
	if settings.ShippingMethods, err = unmarshalStrings(shipping); err != nil {
		return nil, err
	}
	if settings.PaymentMethods, err = unmarshalStrings(payment); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *MySQLStore) UpdateSiteSettings(input models.UpdateSiteSettingsInput) (*models.SiteSettings, error) {
	existing, err := s.GetSiteSettings()
	creating := false
	if errors.Is(err, ErrNotFound) {
		existing = defaultSiteSettings()
		creating = true
	} else if err != nil {
		return nil, err
	}

	if input.SiteName != nil {
		existing.SiteName = *input.SiteName
	}
	if input.Logo != nil {
		existing.Logo = input.Logo
	}
	if input.Favicon != nil {
		existing.Favicon = input.Favicon
	}
	if input.PrimaryColor != nil {
		existing.PrimaryColor = *input.PrimaryColor
	}
	if input.SecondaryColor != nil {
		existing.SecondaryColor = *input.SecondaryColor
	}
	if input.ContactEmail != nil {
		existing.ContactEmail = *input.ContactEmail
	}
	if input.ContactPhone != nil {
		existing.ContactPhone = input.ContactPhone
	}
	if input.Address != nil {
		existing.Address = input.Address
	}
	if input.SocialLinks != nil {
		existing.SocialLinks = input.SocialLinks
	}
	if input.ShippingMethods != nil {
		existing.ShippingMethods = input.ShippingMethods
	}
	if input.PaymentMethods != nil {
		existing.PaymentMethods = input.PaymentMethods
	}
	if input.PrivacyPolicy != nil {
		existing.PrivacyPolicy = input.PrivacyPolicy
	}
	if input.TermsOfService != nil {
		existing.TermsOfService = input.TermsOfService
	}
	if input.ReturnPolicy != nil {
		existing.ReturnPolicy = input.ReturnPolicy
	}
	existing.ID = 1
	existing.UpdatedAt = time.Now()

	address, err := marshalJSON(existing.Address)
	if err != nil {
		return nil, err
	}
	social, err := marshalJSON(existing.SocialLinks)
	if err != nil {
		return nil, err
	}
	shipping, err := marshalJSON(existing.ShippingMethods)
	if err != nil {
		return nil, err
	}
	payment, err := marshalJSON(existing.PaymentMethods)
	if err != nil {
		return nil, err
	}

	if creating {
		_, err = s.db.Exec(`
			INSERT INTO site_settings
			(id, site_name, logo, favicon, primary_color, secondary_color, contact_email,
			 contact_phone, address, social_links, shipping_methods, payment_methods,
			 privacy_policy, terms_of_service, return_policy, updated_at)
			VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			existing.SiteName, existing.Logo, existing.Favicon,
			existing.PrimaryColor, existing.SecondaryColor, existing.ContactEmail,
			existing.ContactPhone, address, social, shipping, payment,
			existing.PrivacyPolicy, existing.TermsOfService, existing.ReturnPolicy, existing.UpdatedAt,
		)
	} else {
		_, err = s.db.Exec(`
			UPDATE site_settings
			SET site_name = ?, logo = ?, favicon = ?, primary_color = ?, secondary_color = ?,
				contact_email = ?, contact_phone = ?, address = ?, social_links = ?,
				shipping_methods = ?, payment_methods = ?, privacy_policy = ?,
				terms_of_service = ?, return_policy = ?, updated_at = ?
			WHERE id = 1`,
			existing.SiteName, existing.Logo, existing.Favicon,
			existing.PrimaryColor, existing.SecondaryColor, existing.ContactEmail,
			existing.ContactPhone, address, social, shipping, payment,
			existing.PrivacyPolicy, existing.TermsOfService, existing.ReturnPolicy, existing.UpdatedAt,
		)
	}
	if err != nil {
		return nil, translateErr(err)
	}
	return existing, nil
}

// --- Dashboard ---

func (s *MySQLStore) GetDashboardStats() (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	var totalSales float64
	if err := s.db.QueryRow(
		"SELECT COALESCE(SUM(total), 0) FROM orders WHERE payment_status = ?",
		models.PaymentStatusPaid,
	).Scan(&totalSales); err != nil {
		return nil, err
	}
	stats.TotalSales = models.FormatMoney(totalSales)

	if err := s.db.QueryRow(
		"SELECT COUNT(*) FROM customers WHERE status = ?",
		models.CustomerStatusActive,
	).Scan(&stats.ActiveCustomers); err != nil {
		return nil, err
	}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM orders").Scan(&stats.TotalOrders); err != nil {
		return nil, err
	}

	if err := s.db.QueryRow(
		"SELECT COUNT(*) FROM refunds WHERE status = ?",
		models.RefundStatusPending,
	).Scan(&stats.PendingRefunds); err != nil {
		return nil, err
	}

	return stats, nil
}
