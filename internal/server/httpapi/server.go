package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mindwell/journal/internal/logging"
	"github.com/mindwell/journal/internal/server/services"
)

type HTTPServer struct {
	address     string
	logger      logging.Logger
	users       *services.UserService
	entries     *services.EntryService
	mindfulness *services.MindfulnessService
	jwtSecret   []byte
	engine      *gin.Engine
}

func NewHTTPServer(address string, l logging.Logger, us *services.UserService,
	es *services.EntryService, ms *services.MindfulnessService, secretKey string) *HTTPServer {

	s := &HTTPServer{
		address:     address,
		logger:      l.With("module", "http_server"),
		users:       us,
		entries:     es,
		mindfulness: ms,
		jwtSecret:   []byte(secretKey),
	}
	s.engine = s.setupRouter()

	return s
}

func (s *HTTPServer) setupRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	api := engine.Group("/api")
	{
		users := api.Group("/users")
		{
			users.GET("/auth", s.getAuth)
			users.GET("", s.requireAdmin(), s.listUsers)
			users.POST("", s.createUser)
			users.DELETE("", s.requireAdmin(), s.deleteAllUsers)
			users.GET("/id/:id", s.requireSelfOrAdmin(), s.getUserByID)
			users.PUT("/id/:id", s.requireSelfOrAdmin(), s.updateUserByID)
			users.DELETE("/id/:id", s.requireAdmin(), s.deleteUserByID)
			users.GET("/email/:email", s.requireSelfOrAdmin(), s.getUserByEmail)
			users.PUT("/email/:email", s.requireSelfOrAdmin(), s.updateUserByEmail)
			users.DELETE("/email/:email", s.requireAdmin(), s.deleteUserByEmail)
		}

		entries := api.Group("/entries")
		{
			entries.GET("", s.requireAdmin(), s.listEntries)
			entries.POST("", s.requireAuthenticated(), s.createEntry)
			entries.DELETE("", s.requireAdmin(), s.deleteAllEntries)
			entries.GET("/id/:id", s.requireSelfOrAdmin(), s.getEntryByID)
			entries.PUT("/id/:id", s.requireSelfOrAdmin(), s.updateEntryByID)
			entries.DELETE("/id/:id", s.requireAdmin(), s.deleteEntryByID)
			entries.GET("/userId/:userId", s.requireSelfOrAdmin(), s.listEntriesForUser)
		}

		mindfulness := api.Group("/mindfulness-entries")
		{
			mindfulness.GET("", s.requireAdmin(), s.listMindfulnessEntries)
			mindfulness.POST("", s.requireAuthenticated(), s.createMindfulnessEntry)
			mindfulness.DELETE("", s.requireAdmin(), s.deleteAllMindfulnessEntries)
			mindfulness.GET("/id/:id", s.requireSelfOrAdmin(), s.getMindfulnessEntryByID)
			mindfulness.PUT("/id/:id", s.requireSelfOrAdmin(), s.updateMindfulnessEntryByID)
			mindfulness.DELETE("/id/:id", s.requireAdmin(), s.deleteMindfulnessEntryByID)
			mindfulness.GET("/userId/:userId", s.requireSelfOrAdmin(), s.listMindfulnessEntriesForUser)
		}
	}

	return engine
}

func (s *HTTPServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.engine,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
