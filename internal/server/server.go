package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"invomaster/internal/config"
	"invomaster/internal/export"
	custommiddleware "invomaster/internal/middleware"
	"invomaster/internal/repository"
	"invomaster/internal/service"
	"invomaster/internal/storage"
	"invomaster/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	store  storage.KeyValueStore
}

func NewServer(cfg *config.Config, logger *zap.Logger, store storage.KeyValueStore) (*Server, error) {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(custommiddleware.DefaultMiddlewareStack()...)
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.Env == "development"))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize repositories
	productRepo := repository.NewProductRepository(store)
	invoiceRepo := repository.NewInvoiceRepository(store)
	favoritesRepo := repository.NewFavoritesRepository(store)

	// Initialize services. Loading happens here, so a corrupt store file
	// fails startup instead of the first request.
	ctx := context.Background()
	catalogService, err := service.NewCatalogService(ctx, productRepo)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize catalog: %w", err)
	}
	invoiceService, err := service.NewInvoiceService(catalogService, invoiceRepo)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize invoicing: %w", err)
	}
	favoritesService, err := service.NewFavoritesService(ctx, favoritesRepo)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize favorites: %w", err)
	}
	dashboardService := service.NewDashboardService(catalogService)

	// One draft per process; the application is single-user.
	draft := service.NewInvoiceBuilder()
	pdfRenderer := export.NewPDFRenderer(cfg.Invoice.CompanyName)
	taxRate := decimal.NewFromFloat(cfg.Invoice.TaxRate)

	// Initialize handlers
	productHandler := transport.NewProductHandler(catalogService, logger)
	invoiceHandler := transport.NewInvoiceHandler(draft, invoiceService, catalogService, pdfRenderer, taxRate, logger)
	favoritesHandler := transport.NewFavoritesHandler(favoritesService, catalogService, logger)
	dashboardHandler := transport.NewDashboardHandler(dashboardService, logger)

	// Register routes
	productHandler.RegisterRoutes(router)
	invoiceHandler.RegisterRoutes(router)
	favoritesHandler.RegisterRoutes(router)
	dashboardHandler.RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		store:  store,
	}

	return server, nil
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Error("Failed to close store", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
