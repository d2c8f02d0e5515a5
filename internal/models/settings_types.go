package models

import "time"

// SiteSettings is the singleton site-wide configuration row (id fixed at 1).
type SiteSettings struct {
	ID              int64          `json:"id" db:"id"`
	SiteName        string         `json:"siteName" db:"site_name"`
	Logo            *string        `json:"logo,omitempty" db:"logo"`
	Favicon         *string        `json:"favicon,omitempty" db:"favicon"`
	PrimaryColor    string         `json:"primaryColor" db:"primary_color"`
	SecondaryColor  string         `json:"secondaryColor" db:"secondary_color"`
	ContactEmail    string         `json:"contactEmail" db:"contact_email"`
	ContactPhone    *string        `json:"contactPhone,omitempty" db:"contact_phone"`
	Address         map[string]any `json:"address,omitempty" db:"address"`
	SocialLinks     map[string]any `json:"socialLinks,omitempty" db:"social_links"`
	ShippingMethods []string       `json:"shippingMethods,omitempty" db:"shipping_methods"`
	PaymentMethods  []string       `json:"paymentMethods,omitempty" db:"payment_methods"`
	PrivacyPolicy   *string        `json:"privacyPolicy,omitempty" db:"privacy_policy"`
	TermsOfService  *string        `json:"termsOfService,omitempty" db:"terms_of_service"`
	ReturnPolicy    *string        `json:"returnPolicy,omitempty" db:"return_policy"`
	UpdatedAt       time.Time      `json:"updatedAt" db:"updated_at"`
}

// UpdateSiteSettingsInput defines the JSON input for PUT /api/site-settings.
// Nil fields are left untouched; if no row exists yet the update creates it.
type UpdateSiteSettingsInput struct {
	SiteName        *string        `json:"siteName"`
	Logo            *string        `json:"logo"`
	Favicon         *string        `json:"favicon"`
	PrimaryColor    *string        `json:"primaryColor"`
	SecondaryColor  *string        `json:"secondaryColor"`
	ContactEmail    *string        `json:"contactEmail" binding:"omitempty,email"`
	ContactPhone    *string        `json:"contactPhone"`
	Address         map[string]any `json:"address"`
	SocialLinks     map[string]any `json:"socialLinks"`
	ShippingMethods []string       `json:"shippingMethods"`
	PaymentMethods  []string       `json:"paymentMethods"`
	PrivacyPolicy   *string        `json:"privacyPolicy"`
	TermsOfService  *string        `json:"termsOfService"`
	ReturnPolicy    *string        `json:"returnPolicy"`
}

// DashboardStats holds the aggregate counters for the dashboard cards.
// TotalSales sums paid order totals; PendingRefunds counts refunds still
// awaiting a decision.
type DashboardStats struct {
	TotalSales      string `json:"totalSales"`
	ActiveCustomers int    `json:"activeCustomers"`
	TotalOrders     int    `json:"totalOrders"`
	PendingRefunds  int    `json:"pendingRefunds"`
}
