package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/hfarhan/workhub/docs"
	"github.com/hfarhan/workhub/internal/config"
	"github.com/hfarhan/workhub/internal/database"
	"github.com/hfarhan/workhub/internal/notification"
	"github.com/hfarhan/workhub/internal/routes"
	"github.com/hfarhan/workhub/internal/session"
	"github.com/hfarhan/workhub/internal/user"
	mw "github.com/hfarhan/workhub/pkg/middleware"
)

// @title           Workhub API
// @version         1.0
// @description     Role-based workforce access and notification delivery service.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Connected to database successfully")

	// Session revocation store: Redis when configured, in-memory otherwise
	var sessions session.Store
	if cfg.RedisAddr != "" {
		sessions = session.NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
		log.Printf("Using Redis session store at %s", cfg.RedisAddr)
	} else {
		sessions = session.NewMemoryStore()
		log.Println("Using in-memory session store")
	}

	// Navigation table, validated once at startup
	table, err := routes.DefaultTable()
	if err != nil {
		log.Fatalf("Invalid route table: %v", err)
	}
	routesHandler := routes.NewHandler(table)

	// Notification feature
	notificationRepo := notification.NewRepository(db)
	notificationService := notification.NewService(notificationRepo)
	notificationHandler := notification.NewHandler(notificationService)

	// User feature; logout drops the session's notification feed
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService, user.TokenConfig{
		Secret: cfg.JWTSecret,
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.AccessTokenTTL,
	}, sessions, notificationService.Drop)

	authn := mw.NewAuthenticator(cfg.JWTSecret, cfg.JWTIssuer, sessions)

	r := chi.NewRouter()

	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", userHandler.Login)

		// The guard endpoint answers for anonymous sessions too
		r.With(authn.Optional).Get("/routes/resolve", routesHandler.Resolve)

		r.Group(func(r chi.Router) {
			r.Use(authn.Require)

			r.Post("/auth/logout", userHandler.Logout)
			r.Get("/auth/me", userHandler.Me)

			r.Mount("/users", userHandler.Routes())
			r.Mount("/notifications", notificationHandler.Routes())
		})
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
