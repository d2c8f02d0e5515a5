package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopadmin/shopadmin-golang/internal/database"
	"github.com/shopadmin/shopadmin-golang/internal/handlers"
	"github.com/shopadmin/shopadmin-golang/internal/routes"
	"github.com/shopadmin/shopadmin-golang/internal/store"
)

func main() {
	// --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	// --- Storage Backend ---
	// STORE_BACKEND picks the implementation at boot: "memory" (default,
	// self-seeding, nothing to install) or "mysql".
	var st store.Store
	switch backend := os.Getenv("STORE_BACKEND"); backend {
	case "", "memory":
		log.Println("Using in-memory storage backend")
		st = store.NewMemStore()
	case "mysql":
		db, err := database.OpenDB()
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := store.Migrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		st = store.NewMySQLStore(db)
	default:
		log.Fatalf("Unknown STORE_BACKEND %q (want \"memory\" or \"mysql\")", backend)
	}

	app := &handlers.Handlers{Store: st}

	// --- Router Setup ---
	router := routes.SetupRouter(app)

	// --- Start Server ---
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting ShopAdmin API server on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
