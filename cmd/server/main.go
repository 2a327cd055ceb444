package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/cinebook/cinema-booking/internal/cart"       // Cart state and persistence
	"github.com/cinebook/cinema-booking/internal/checkout"   // Checkout submission flow
	"github.com/cinebook/cinema-booking/internal/config"     // Internal config loader
	"github.com/cinebook/cinema-booking/internal/database"   // MySQL connection pool
	"github.com/cinebook/cinema-booking/internal/handler"    // HTTP handlers
	"github.com/cinebook/cinema-booking/internal/queue"      // Receipt event consumer
	"github.com/cinebook/cinema-booking/internal/repository" // Data access layer
	"github.com/cinebook/cinema-booking/internal/router"     // Route registration
	queue_publisher "github.com/cinebook/cinema-booking/internal/service"
)

func main() {
	// Load variables from a local .env file when present.  Missing files
	// are fine; production supplies real environment variables.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg) // Open the MySQL pool
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Carts live in Redis so a restart does not lose selections.  When
	// Redis is unreachable the service still works with an in-process
	// store; carts then survive only as long as the process.
	var carts cart.Store
	if rdb := config.NewRedisClient(); rdb != nil {
		carts = cart.NewRedisStore(rdb)
	} else {
		log.Println("redis unavailable, falling back to in-memory cart store")
		carts = cart.NewMemoryStore()
	}

	customerRepo := repository.NewCustomerRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	movieRepo := repository.NewMovieRepo(db)
	showtimeRepo := repository.NewShowtimeRepo(db)
	productRepo := repository.NewProductRepo(db)
	voucherRepo := repository.NewVoucherRepo(db)
	receiptRepo := repository.NewReceiptRepo(db, voucherRepo)

	flow := checkout.NewFlow(carts, receiptRepo, queue_publisher.PublishReceiptCreated)

	authHandler := handler.NewAuthHandler(cfg, customerRepo, tokenRepo)
	bookingHandler := handler.NewBookingHandler(movieRepo, showtimeRepo, productRepo)
	cartHandler := handler.NewCartHandler(carts, showtimeRepo, productRepo, voucherRepo)
	voucherHandler := handler.NewVoucherHandler(voucherRepo, carts)
	checkoutHandler := handler.NewCheckoutHandler(flow, receiptRepo)

	e := echo.New() // Create Echo instance
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, bookingHandler)
	router.RegisterCustomer(e, cartHandler, voucherHandler, checkoutHandler, cfg.JWTSecret)

	// Consume receipt.created events in the background.  The consumer
	// reconnects on broker failures and never blocks startup.
	go func() {
		if err := queue.StartReceiptConsumer(); err != nil {
			log.Printf("receipt consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
