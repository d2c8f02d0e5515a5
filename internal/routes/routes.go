package routes

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopadmin/shopadmin-golang/internal/handlers"
	"github.com/shopadmin/shopadmin-golang/internal/middleware"
)

// corsConfig builds the CORS policy. Allowed origins come from the
// comma-separated CORS_ORIGINS variable, defaulting to the local dev
// frontend.
func corsConfig() cors.Config {
	origins := []string{"http://localhost:5173"}
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		origins = origins[:0]
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = origins
	config.AllowCredentials = true
	config.AllowHeaders = append(config.AllowHeaders, "Authorization")
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	return config
}

// SetupRouter wires every endpoint under /api. When AUTH_REQUIRED=true the
// whole admin surface sits behind the bearer-token guard; login stays
// public either way.
func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(corsConfig()))

	api := router.Group("/api")
	{
		api.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		api.POST("/login", h.Login)

		admin := api.Group("/")
		if os.Getenv("AUTH_REQUIRED") == "true" {
			admin.Use(middleware.AuthMiddleware(h.Store))
		}
		{
			// --- Users ---
			admin.POST("/users", h.CreateUser)

			// --- Products ---
			admin.GET("/products", h.GetProducts)
			admin.GET("/products/top-selling", h.GetTopSellingProducts)
			admin.GET("/products/:id", h.GetProduct)
			admin.POST("/products", h.CreateProduct)
			admin.PUT("/products/:id", h.UpdateProduct)
			admin.DELETE("/products/:id", h.DeleteProduct)

			// --- Categories ---
			admin.GET("/categories", h.GetCategories)
			admin.GET("/categories/:id", h.GetCategory)
			admin.POST("/categories", h.CreateCategory)
			admin.PUT("/categories/:id", h.UpdateCategory)
			admin.DELETE("/categories/:id", h.DeleteCategory)

			// --- Brands ---
			admin.GET("/brands", h.GetBrands)
			admin.GET("/brands/:id", h.GetBrand)
			admin.POST("/brands", h.CreateBrand)
			admin.PUT("/brands/:id", h.UpdateBrand)
			admin.DELETE("/brands/:id", h.DeleteBrand)

			// --- Customers ---
			admin.GET("/customers", h.GetCustomers)
			admin.GET("/customers/:id", h.GetCustomer)
			admin.POST("/customers", h.CreateCustomer)
			admin.PUT("/customers/:id", h.UpdateCustomer)
			admin.DELETE("/customers/:id", h.DeleteCustomer)

			// --- Orders ---
			admin.GET("/orders", h.GetOrders)
			admin.GET("/orders/recent", h.GetRecentOrders)
			admin.GET("/orders/:id", h.GetOrder)
			admin.POST("/orders", h.CreateOrder)
			admin.PATCH("/orders/:id/status", h.UpdateOrderStatus)

			// --- Product Reviews ---
			admin.GET("/product-reviews", h.GetProductReviews)
			admin.POST("/product-reviews", h.CreateProductReview)
			admin.PATCH("/product-reviews/:id/status", h.UpdateReviewStatus)
			admin.DELETE("/product-reviews/:id", h.DeleteReview)

			// --- Refunds ---
			admin.GET("/refunds", h.GetRefunds)
			admin.GET("/refunds/:id", h.GetRefund)
			admin.POST("/refunds", h.CreateRefund)
			admin.PATCH("/refunds/:id/status", h.UpdateRefundStatus)

			// --- Refund Settings (singleton) ---
			admin.GET("/refund-settings", h.GetRefundSettings)
			admin.PUT("/refund-settings", h.UpdateRefundSettings)

			// --- Support Tickets ---
			admin.GET("/support-tickets", h.GetSupportTickets)
			admin.GET("/support-tickets/:id", h.GetSupportTicket)
			admin.POST("/support-tickets", h.CreateSupportTicket)
			admin.PATCH("/support-tickets/:id/status", h.UpdateTicketStatus)
			admin.PATCH("/support-tickets/:id/assign", h.AssignTicket)
			admin.POST("/support-tickets/:id/replies", h.AddTicketReply)

			// --- Site Settings (singleton) ---
			admin.GET("/site-settings", h.GetSiteSettings)
			admin.PUT("/site-settings", h.UpdateSiteSettings)

			// --- Dashboard ---
			admin.GET("/dashboard/stats", h.GetDashboardStats)
		}
	}

	return router
}
