package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Simplici0/wdquote/internal/catalog"
	"github.com/Simplici0/wdquote/internal/catalogdb"
	"github.com/Simplici0/wdquote/internal/config"
	"github.com/Simplici0/wdquote/internal/logging"
	"github.com/Simplici0/wdquote/internal/pricing"
)

const maxRequestBody = 1 << 20

type server struct {
	catalog      *catalog.Catalog
	engine       *pricing.Engine
	log          *zap.Logger
	templatesDir string
	staticDir    string
}

func newServer(cat *catalog.Catalog, quotePrefix string, log *zap.Logger) *server {
	numbers := pricing.QuoteNumberer{Prefix: quotePrefix}
	return &server{
		catalog:      cat,
		engine:       pricing.NewEngine(cat, pricing.WithQuoteNumbers(numbers.Next)),
		log:          log,
		templatesDir: "web/templates",
		staticDir:    "web/static",
	}
}

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cat, err := catalogdb.Load(context.Background(), cfg.CatalogDB, cfg.IsDev(), logger)
	if err != nil {
		logger.Fatal("failed to load catalog", zap.Error(err))
	}

	srv := newServer(cat, cfg.QuotePrefix, logger)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("listening", zap.String("addr", httpServer.Addr), zap.String("env", cfg.AppEnv))
	if err := httpServer.ListenAndServe(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(s.staticDir))))
	r.Get("/", s.handleHome)
	r.Get("/quote", s.handleQuoteBuilder)
	r.Get("/upload", s.handleUploadPage)
	r.Get("/result", s.handleResultPage)
	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/quote", s.handleAPIQuote)
		r.Post("/takeoff", s.handleAPITakeoff)
		r.Get("/products", s.handleAPIProducts)
	})

	return r
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.log.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
