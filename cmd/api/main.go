package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"mediahub/internal/config"
	"mediahub/internal/database"
	"mediahub/internal/domain"
	"mediahub/internal/middleware"
	"mediahub/internal/modules/auth"
	"mediahub/internal/modules/catalog"
	"mediahub/internal/modules/events"
	jwtsvc "mediahub/internal/pkg/jwt"
	"mediahub/internal/probe"
	"mediahub/internal/repository"
	"mediahub/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.MediaFile{},
		&domain.Playlist{},
		&domain.PlaylistItem{},
		&domain.Like{},
	); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	mediaRepo := repository.NewMediaRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	gateway := storage.NewLocal(cfg.UploadDir, cfg.StaticPrefix)
	hub := events.NewHub()
	defer hub.Close()

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(
		mediaRepo,
		playlistRepo,
		likeRepo,
		gateway,
		probe.Image{},
		hub,
		cfg.MediaBucket,
	)
	catalogHandler := catalog.NewHandler(catalogService)
	eventsHandler := events.NewHandler(hub)

	r := gin.Default()
	r.Use(middleware.CORS())

	// Uploaded objects are public by URL; visibility gating applies to
	// catalog reads, not to the raw object paths.
	r.Static(cfg.StaticPrefix, cfg.UploadDir)

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		eventsHandler.RegisterRoutes(v1)

		// Reads: token optional, widens visibility to own private records.
		public := v1.Group("/")
		public.Use(middleware.OptionalAuth(j))
		{
			catalogHandler.RegisterPublicRoutes(public)
		}

		// Mutations: token required.
		protected := v1.Group("/")
		protected.Use(middleware.RequireAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			catalogHandler.RegisterProtectedRoutes(protected)
		}
	}

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
