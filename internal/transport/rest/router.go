package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"filingdesk/internal/service"
	"filingdesk/internal/transport/rest/handler"
	"filingdesk/internal/transport/rest/middleware"
	"filingdesk/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	TokenService         *service.TokenService
	QuestionnaireService *service.QuestionnaireService
	DocumentService      *service.DocumentService
	ComparisonService    *service.ComparisonService
	WSHub                *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	sessionHandler := handler.NewSessionHandler(c.QuestionnaireService, c.TokenService)
	questionnaireHandler := handler.NewQuestionnaireHandler(c.QuestionnaireService)
	documentHandler := handler.NewDocumentHandler(c.DocumentService)
	comparisonHandler := handler.NewComparisonHandler(c.ComparisonService)
	wsHandler := ws.NewHandler(c.WSHub, c.TokenService)

	// Initialize middleware
	sessionMW := middleware.NewSessionMiddleware(c.TokenService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/sessions", sessionHandler.Start).Methods("POST", "OPTIONS")
	v1.HandleFunc("/questionnaires/{formType}", questionnaireHandler.Get).Methods("GET", "OPTIONS")

	// WebSocket routes (token in query param)
	v1.HandleFunc("/ws/sessions/{sessionId}/owner", wsHandler.OwnerWS).Methods("GET")
	v1.HandleFunc("/ws/sessions/{sessionId}/watch", wsHandler.WatcherWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Session routes (require session token)
	sessionRoutes := v1.NewRoute().Subrouter()
	sessionRoutes.Use(sessionMW.RequireSession)

	sessionRoutes.HandleFunc("/sessions/{sessionId}", sessionHandler.Get).Methods("GET", "OPTIONS")
	sessionRoutes.HandleFunc("/sessions/{sessionId}/responses", sessionHandler.UpdateResponses).Methods("PATCH", "OPTIONS")
	sessionRoutes.HandleFunc("/sessions/{sessionId}/validation", sessionHandler.Validate).Methods("GET", "OPTIONS")
	sessionRoutes.HandleFunc("/sessions/{sessionId}/progress", sessionHandler.Progress).Methods("GET", "OPTIONS")
	sessionRoutes.HandleFunc("/sessions/{sessionId}/complete", sessionHandler.Complete).Methods("POST", "OPTIONS")
	sessionRoutes.HandleFunc("/sessions/{sessionId}/documents", documentHandler.List).Methods("GET", "OPTIONS")
	sessionRoutes.HandleFunc("/sessions/{sessionId}/documents/{docType}", documentHandler.Generate).Methods("POST", "OPTIONS")

	// Document and financial routes (require a valid token for any session)
	authedRoutes := v1.NewRoute().Subrouter()
	authedRoutes.Use(sessionMW.RequireSession)

	authedRoutes.HandleFunc("/documents/{documentId}", documentHandler.Get).Methods("GET", "OPTIONS")
	authedRoutes.HandleFunc("/documents/{documentId}/download", documentHandler.Download).Methods("GET", "OPTIONS")
	authedRoutes.HandleFunc("/financial/{userId}", comparisonHandler.SaveDisclosure).Methods("PUT", "OPTIONS")
	authedRoutes.HandleFunc("/financial/{userId}/comparison", comparisonHandler.Compare).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
