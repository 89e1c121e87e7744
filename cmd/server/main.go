package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/tourism-api/internal/auth"
	"github.com/gdg-garage/tourism-api/internal/config"
	"github.com/gdg-garage/tourism-api/internal/database"
	"github.com/gdg-garage/tourism-api/internal/handlers"
	"github.com/gdg-garage/tourism-api/internal/notifier"
	"github.com/gdg-garage/tourism-api/internal/service"
	"github.com/gdg-garage/tourism-api/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	// Connect to Database
	db := database.Connect(cfg)
	st := store.New(db)

	users := service.NewUserService(st)
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := users.EnsureSuperuser(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatalf("Failed to create superuser: %v", err)
		}
	}

	var bookingNotifier notifier.Notifier
	if cfg.DiscordBotToken != "" {
		session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
		if err != nil {
			log.Printf("Discord notifier not initialized: %v", err)
		} else {
			bookingNotifier = notifier.NewDiscordNotifier(session, cfg.DiscordNotificationsChannelID)
		}
	}

	// Initialize Handlers
	pager := handlers.Pager{Default: cfg.DefaultPageSize, Max: cfg.MaxPageSize}
	authHandler := auth.NewAuthHandler(cfg, st)

	// Initialize Router
	r := chi.NewRouter()
	handlers.RegisterRoutes(r, authHandler,
		handlers.NewSiteHandler(service.NewSiteService(st), pager),
		handlers.NewHotelHandler(service.NewHotelService(st), pager),
		handlers.NewBookingHandler(service.NewBookingService(st, bookingNotifier), pager),
		handlers.NewReviewHandler(service.NewReviewService(st), pager),
		handlers.NewFavoriteHandler(service.NewFavoriteService(st), pager),
		handlers.NewUserHandler(users, pager),
	)

	var handler http.Handler = r
	if cfg.EnableCORS {
		handler = cors.New(cors.Options{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
		}).Handler(r)
	}

	// Start Server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), handler); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
