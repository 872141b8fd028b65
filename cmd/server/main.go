package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"filingdesk/internal/cache"
	"filingdesk/internal/config"
	"filingdesk/internal/repository"
	"filingdesk/internal/service"
	"filingdesk/internal/storage"
	"filingdesk/internal/transport/rest"
	"filingdesk/internal/transport/ws"
)

// @title Filingdesk API
// @version 1.0
// @description Guided divorce filing: dynamic questionnaires, document generation, disclosure comparison
// @host localhost:8080
// @BasePath /v1
func main() {
	log.Println("started")
	ctx := context.Background()

	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env")
	}
	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisURI,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	questionnaireRepo := repository.NewQuestionnaireRepo(db)
	sessionRepo := repository.NewSessionRepo(db)
	mappingRepo := repository.NewMappingRepo(db)
	financialRepo := repository.NewFinancialRepo(db)
	documentRepo := repository.NewDocumentRepo(db)

	// Initialize caches
	sessionCache := cache.NewSessionCache(rdb)
	progressCache := cache.NewProgressCache(rdb)

	// Initialize template store
	templates := storage.NewTemplateStore(cfg.TemplateDir)

	// Initialize services
	tokenSvc := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	questionnaireSvc := service.NewQuestionnaireService(questionnaireRepo, sessionRepo, sessionCache, progressCache)
	documentSvc := service.NewDocumentService(mappingRepo, documentRepo, sessionRepo, templates)
	comparisonSvc := service.NewComparisonService(financialRepo)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	questionnaireSvc.SetBroadcaster(wsHub)
	documentSvc.SetBroadcaster(wsHub)
	comparisonSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		TokenService:         tokenSvc,
		QuestionnaireService: questionnaireSvc,
		DocumentService:      documentSvc,
		ComparisonService:    comparisonSvc,
		WSHub:                wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Println("Endpoints:")
		log.Println("  POST  /v1/sessions")
		log.Println("  GET   /v1/questionnaires/{formType}")
		log.Println("  PATCH /v1/sessions/{sessionId}/responses")
		log.Println("  GET   /v1/sessions/{sessionId}/validation")
		log.Println("  POST  /v1/sessions/{sessionId}/complete")
		log.Println("  POST  /v1/sessions/{sessionId}/documents/{docType}")
		log.Println("  GET   /v1/documents/{documentId}/download")
		log.Println("  PUT   /v1/financial/{userId}")
		log.Println("  GET   /v1/financial/{userId}/comparison")
		log.Println("  WS    /v1/ws/sessions/{sessionId}/owner")
		log.Println("  WS    /v1/ws/sessions/{sessionId}/watch")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
