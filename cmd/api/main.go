package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"vyzioads/internal/adapter/api"
	"vyzioads/internal/adapter/api/handler"
	apimiddleware "vyzioads/internal/adapter/api/middleware"
	"vyzioads/internal/adapter/api/router"
	"vyzioads/internal/adapter/repository"
	"vyzioads/internal/domain/events"
	"vyzioads/internal/infrastructure/mirror"
	"vyzioads/internal/usecase"
	"vyzioads/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	pool, err := repository.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer pool.Close()

	if err := repository.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("Failed to ensure database schema: %v", err)
	}

	var opt option.ClientOption
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}
		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}
		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	userRepo := repository.NewPostgresUserRepository(pool)
	adRepo := repository.NewPostgresAdRepository(pool)
	chatRepo := repository.NewPostgresChatRepository(pool)
	notificationRepo := repository.NewPostgresNotificationRepository(pool)
	trackingRepo := repository.NewPostgresTrackingRepository(pool)

	bus := events.NewBus()

	chatUseCase := usecase.NewChatUseCase(chatRepo, userRepo, adRepo, bus)
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo, userRepo, bus)
	trackingUseCase := usecase.NewTrackingUseCase(trackingRepo, adRepo, userRepo)
	adUseCase := usecase.NewAdUseCase(adRepo, userRepo, notificationUseCase)

	// Fan-out order matters: the ledger row must exist before the mirror
	// bumps its counter for the same event.
	notificationUseCase.Register(bus)
	mirror.NewSync(firestoreClient, cfg.MirrorTimeout).Register(bus)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient, userRepo)

	router.Setup(e, router.Handlers{
		Chat:         handler.NewChatHandler(chatUseCase),
		Notification: handler.NewNotificationHandler(notificationUseCase),
		Tracking:     handler.NewTrackingHandler(trackingUseCase),
		Ad:           handler.NewAdHandler(adUseCase),
		Health:       handler.NewHealthHandler(pool),
	}, authMiddleware)

	log.Printf("Starting server on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
