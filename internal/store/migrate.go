package store

import (
	"database/sql"
	"fmt"

	"github.com/shopadmin/shopadmin-golang/internal/models"
)

// migrations holds the relational schema, one table per entity. Statements
// run in dependency order so foreign keys always reference existing tables.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS categories (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		slug VARCHAR(255) NOT NULL UNIQUE,
		parent_id BIGINT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		FOREIGN KEY (parent_id) REFERENCES categories(id) ON DELETE SET NULL
	)`,

	`CREATE TABLE IF NOT EXISTS brands (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		logo TEXT NULL,
		description TEXT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS products (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		stock INT NOT NULL DEFAULT 0,
		sku VARCHAR(255) NOT NULL UNIQUE,
		image TEXT NULL,
		status ENUM('draft','published','archived') NOT NULL DEFAULT 'published',
		category_id BIGINT NULL,
		brand_id BIGINT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		FOREIGN KEY (category_id) REFERENCES categories(id) ON DELETE SET NULL,
		FOREIGN KEY (brand_id) REFERENCES brands(id) ON DELETE SET NULL
	)`,

	`CREATE TABLE IF NOT EXISTS customers (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		phone VARCHAR(64) NULL,
		avatar TEXT NULL,
		status ENUM('active','inactive') NOT NULL DEFAULT 'active',
		address JSON NULL,
		registration_date DATETIME NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS orders (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		order_number VARCHAR(64) NOT NULL UNIQUE,
		customer_id BIGINT NOT NULL,
		status ENUM('pending','shipped','delivered','cancelled') NOT NULL DEFAULT 'pending',
		payment_status ENUM('paid','unpaid','refunded') NOT NULL DEFAULT 'unpaid',
		payment_method VARCHAR(255) NULL,
		shipping_method VARCHAR(255) NULL,
		shipping_address JSON NOT NULL,
		tracking_number VARCHAR(255) NULL,
		estimated_delivery VARCHAR(255) NULL,
		subtotal DECIMAL(10,2) NOT NULL,
		shipping_cost DECIMAL(10,2) NOT NULL,
		tax DECIMAL(10,2) NOT NULL,
		total DECIMAL(10,2) NOT NULL,
		notes TEXT NULL,
		order_date DATETIME NOT NULL,
		FOREIGN KEY (customer_id) REFERENCES customers(id)
	)`,

	`CREATE TABLE IF NOT EXISTS order_items (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		order_id BIGINT NOT NULL,
		product_id BIGINT NOT NULL,
		quantity INT NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
		FOREIGN KEY (product_id) REFERENCES products(id)
	)`,

	`CREATE TABLE IF NOT EXISTS product_reviews (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		product_id BIGINT NOT NULL,
		customer_id BIGINT NOT NULL,
		rating INT NOT NULL,
		comment TEXT NOT NULL,
		status ENUM('pending','approved','rejected') NOT NULL DEFAULT 'pending',
		created_at DATETIME NOT NULL,
		FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE,
		FOREIGN KEY (customer_id) REFERENCES customers(id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS refunds (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		order_id BIGINT NOT NULL,
		customer_id BIGINT NOT NULL,
		amount DECIMAL(10,2) NOT NULL,
		reason TEXT NOT NULL,
		status ENUM('pending','approved','rejected') NOT NULL DEFAULT 'pending',
		notes TEXT NULL,
		request_date DATETIME NOT NULL,
		processed_date DATETIME NULL,
		FOREIGN KEY (order_id) REFERENCES orders(id),
		FOREIGN KEY (customer_id) REFERENCES customers(id)
	)`,

	`CREATE TABLE IF NOT EXISTS refund_settings (
		id BIGINT PRIMARY KEY,
		time_limit INT NOT NULL,
		restocking_fee DECIMAL(10,2) NOT NULL DEFAULT 0,
		auto_approve_below DECIMAL(10,2) NULL,
		eligible_statuses JSON NOT NULL,
		refund_policy TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS support_tickets (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		ticket_number VARCHAR(64) NOT NULL UNIQUE,
		customer_id BIGINT NOT NULL,
		subject VARCHAR(255) NOT NULL,
		message TEXT NOT NULL,
		order_id BIGINT NULL,
		status ENUM('open','in_progress','resolved','closed') NOT NULL DEFAULT 'open',
		priority ENUM('low','medium','high','urgent') NOT NULL DEFAULT 'medium',
		assigned_to BIGINT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		FOREIGN KEY (customer_id) REFERENCES customers(id),
		FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE SET NULL,
		FOREIGN KEY (assigned_to) REFERENCES users(id) ON DELETE SET NULL
	)`,

	`CREATE TABLE IF NOT EXISTS ticket_replies (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		ticket_id BIGINT NOT NULL,
		user_id BIGINT NULL,
		customer_id BIGINT NULL,
		message TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (ticket_id) REFERENCES support_tickets(id) ON DELETE CASCADE,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE SET NULL,
		FOREIGN KEY (customer_id) REFERENCES customers(id) ON DELETE SET NULL
	)`,

	`CREATE TABLE IF NOT EXISTS site_settings (
		id BIGINT PRIMARY KEY,
		site_name VARCHAR(255) NOT NULL,
		logo TEXT NULL,
		favicon TEXT NULL,
		primary_color VARCHAR(32) NOT NULL,
		secondary_color VARCHAR(32) NOT NULL,
		contact_email VARCHAR(255) NOT NULL,
		contact_phone VARCHAR(64) NULL,
		address JSON NULL,
		social_links JSON NULL,
		shipping_methods JSON NULL,
		payment_methods JSON NULL,
		privacy_policy TEXT NULL,
		terms_of_service TEXT NULL,
		return_policy TEXT NULL,
		updated_at DATETIME NOT NULL
	)`,
}

// Migrate creates any missing tables and seeds the default settings pair
// plus the administrative user, mirroring what the in-memory store does at
// construction. Safe to run on every boot.
func Migrate(db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Seed the admin account only when the users table is empty, so a
	// changed admin password is never clobbered on restart.
	var userCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&userCount); err != nil {
		return fmt.Errorf("migrate: count users: %w", err)
	}
	if userCount == 0 {
		var password models.Password
		if err := password.Set("admin123"); err != nil {
			return fmt.Errorf("migrate: hash admin password: %w", err)
		}
		if _, err := db.Exec(
			"INSERT INTO users (username, password_hash) VALUES (?, ?)",
			"admin", password.Hash,
		); err != nil {
			return fmt.Errorf("migrate: seed admin user: %w", err)
		}
	}

	siteDefaults := defaultSiteSettings()
	if _, err := db.Exec(`
		INSERT IGNORE INTO site_settings
		(id, site_name, primary_color, secondary_color, contact_email, updated_at)
		VALUES (1, ?, ?, ?, ?, ?)`,
		siteDefaults.SiteName,
		siteDefaults.PrimaryColor,
		siteDefaults.SecondaryColor,
		siteDefaults.ContactEmail,
		siteDefaults.UpdatedAt,
	); err != nil {
		return fmt.Errorf("migrate: seed site settings: %w", err)
	}

	refundDefaults := defaultRefundSettings()
	eligible, err := marshalJSON(refundDefaults.EligibleStatuses)
	if err != nil {
		return fmt.Errorf("migrate: seed refund settings: %w", err)
	}
	if _, err := db.Exec(`
		INSERT IGNORE INTO refund_settings
		(id, time_limit, restocking_fee, auto_approve_below, eligible_statuses, refund_policy, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?)`,
		refundDefaults.TimeLimit,
		refundDefaults.RestockingFee,
		refundDefaults.AutoApproveBelow,
		eligible,
		refundDefaults.RefundPolicy,
		refundDefaults.UpdatedAt,
	); err != nil {
		return fmt.Errorf("migrate: seed refund settings: %w", err)
	}

	return nil
}
