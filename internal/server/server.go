package server

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dualreven/anki-linkmaster-PDFJS-sub000/internal/api/http"
	"github.com/dualreven/anki-linkmaster-PDFJS-sub000/internal/api/middleware"
	"github.com/dualreven/anki-linkmaster-PDFJS-sub000/internal/infrastructure/config"
	"github.com/dualreven/anki-linkmaster-PDFJS-sub000/internal/infrastructure/logging"
	"github.com/dualreven/anki-linkmaster-PDFJS-sub000/internal/infrastructure/monitoring"
	"github.com/dualreven/anki-linkmaster-PDFJS-sub000/internal/infrastructure/tracing"
	"github.com/dualreven/anki-linkmaster-PDFJS-sub000/internal/trace"
)

// Server wraps the HTTP server and dependencies.
type Server struct {
	router  *gin.Engine
	store   *trace.Store
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
	tracer  *tracing.Tracer
	sweeper *sweeper
}

// New creates a server instance from configuration.
func New(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		OutputPaths: []string{"stdout"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	logger.Info("Initializing message tracer",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.Int("maxTraceSize", cfg.Trace.MaxSize),
	)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("message-tracer", logger.Named("tracing"))

	store := trace.NewStore(trace.Config{
		MaxTraceSize:              cfg.Trace.MaxSize,
		EnablePerformanceTracking: cfg.Trace.PerformanceTracking,
	}, logger.Named("store")).WithMetrics(metrics)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.Middleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := http.NewHandlers(store, metrics, logger.Named("api"))
	router.Use(instanceHeader(handlers.Instance()))

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/status", handlers.Status)
	router.GET("/stats", handlers.GetStats)
	router.GET("/panel", handlers.GetPanel)

	// Trace records
	if cfg.RateLimit.Enabled {
		ingestCap := middleware.GlobalRateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		})
		router.POST("/traces", ingestCap, handlers.RecordTrace)
	} else {
		router.POST("/traces", handlers.RecordTrace)
	}
	router.GET("/traces/:id", handlers.GetTrace)
	router.DELETE("/traces", handlers.ClearTraces)
	router.POST("/traces/prune", handlers.PruneTraces)

	// Chain analysis
	router.GET("/chains", handlers.ListChains)
	router.GET("/chains/:id/tree", handlers.GetChainTree)
	router.GET("/chains/:id/report", handlers.GetChainReport)

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	var sw *sweeper
	if cfg.Trace.RetentionMS > 0 {
		retention := time.Duration(cfg.Trace.RetentionMS) * time.Millisecond
		interval := time.Duration(cfg.Trace.SweepIntervalMS) * time.Millisecond
		if interval <= 0 {
			interval = time.Minute
		}
		sw = newSweeper(store, logger.Named("sweeper"), retention, interval)
		go sw.run()
		logger.Info("Retention sweep enabled",
			zap.Duration("retention", retention),
			zap.Duration("interval", interval),
		)
	}

	logger.Info("Server initialized successfully",
		zap.String("instance", handlers.Instance()))

	return &Server{
		router:  router,
		store:   store,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
		tracer:  tracer,
		sweeper: sw,
	}, nil
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Router exposes the handler tree, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Store exposes the trace store for embedding processes.
func (s *Server) Store() *trace.Store {
	return s.store
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	s.logger.Info("Shutting down tracer...")

	if s.sweeper != nil {
		s.sweeper.Close()
	}
	s.tracer.Close()
	s.store.Destroy()
	s.logger.Sync()

	return nil
}

// instanceHeader tags every response with the process instance so a panel
// behind a proxy can tell tracer restarts apart.
func instanceHeader(tag string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Tracer-Instance", tag)
		c.Next()
	}
}
