package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cradle/cradle/internal/config"
	"github.com/cradle/cradle/internal/storage"
	"github.com/cradle/cradle/internal/tracker"
	"github.com/cradle/cradle/internal/tracker/babies"
	"github.com/cradle/cradle/internal/tracker/sleep"
	"github.com/cradle/cradle/internal/tracker/stats"
	"github.com/cradle/cradle/internal/tracker/users"
)

// AppState holds all application services
type AppState struct {
	DB           *bun.DB
	Logger       *zap.Logger
	Config       *config.Config
	UserService  users.UserManager
	BabyService  babies.BabyManager
	SleepService sleep.SessionManager
	StatsService *stats.Service
}

func main() {
	// Load configuration
	config.Load()

	// Initialize logger with config
	logger := initLogger()
	logger.Info("Configuration loaded", zap.String("source", "config.Load()"))

	// Initialize application state
	as, err := newAppState(logger)
	if err != nil {
		logger.Fatal("Failed to initialize application state", zap.Error(err))
	}

	// Run schema migrations
	ctx := context.Background()
	if err := storage.CreateTables(ctx, as.DB); err != nil {
		logger.Fatal("Failed to create tables", zap.Error(err))
	}
	if err := storage.CreateIndexes(ctx, as.DB); err != nil {
		logger.Fatal("Failed to create indexes", zap.Error(err))
	}

	// Create HTTP server
	router := setupRouter(as)

	// Server configuration from config
	addr := fmt.Sprintf("%s:%d", config.Http().Host, config.Http().Port)

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Setup graceful shutdown
	done := setupSignalHandler(as, server, logger)

	// Start server
	logger.Info("Starting Cradle server", zap.String("address", addr))

	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server", zap.Error(err))
	}

	<-done
	logger.Info("Server shutdown complete")
}

// newAppState creates and initializes the application state
func newAppState(logger *zap.Logger) (*AppState, error) {
	pgConfig := config.Postgres()

	logger.Info("Database configuration",
		zap.String("host", pgConfig.Host),
		zap.Int("port", pgConfig.Port),
		zap.String("database", pgConfig.Database),
		zap.String("user", pgConfig.User))

	db, err := storage.Connect(pgConfig.DSN(), pgConfig.MaxOpenConnections)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize user service with database
	userStore := users.NewPostgresStore(db)
	userService := users.NewService(userStore)

	// Initialize baby service with database
	babyStore := babies.NewPostgresStore(db)
	babyService := babies.NewService(babyStore)

	// Initialize sleep session service with database
	sleepStore := sleep.NewPostgresStore(db)
	sleepService := sleep.NewService(sleepStore)

	// Stats read from the same session store
	statsService := stats.NewService(sleepStore)

	return &AppState{
		DB:           db,
		Logger:       logger,
		Config:       config.Get(),
		UserService:  userService,
		BabyService:  babyService,
		SleepService: sleepService,
		StatsService: statsService,
	}, nil
}

func initLogger() *zap.Logger {
	logConfig := config.Logger()

	var config zap.Config
	if logConfig.Format == "json" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	// Set log level
	switch logConfig.Level {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	return logger
}

func setupRouter(as *AppState) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Add CORS middleware
	router.Use(cors.Default())

	// Add logging middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Health endpoint
	router.GET("/health", func(c *gin.Context) {
		ctx := c.Request.Context()

		if err := as.DB.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"timestamp": time.Now().Format(time.RFC3339),
				"error":     err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"services": gin.H{
				"database": "healthy",
			},
		})
	})

	api := router.Group("/api/v1")
	{
		// User Management
		usersGroup := api.Group("/users")
		{
			usersGroup.POST("/", createUser(as))
			usersGroup.DELETE("/:userId", deleteUser(as))
		}

		// Baby Management
		babiesGroup := api.Group("/babies")
		{
			babiesGroup.POST("/", registerBaby(as))
			babiesGroup.GET("/", listBabies(as))
			babiesGroup.GET("/:babyId", getBaby(as))
			babiesGroup.DELETE("/:babyId", deleteBaby(as))

			// Sleep Session Management
			sleepGroup := babiesGroup.Group("/:babyId/sleep-sessions")
			{
				sleepGroup.POST("/", startSleepSession(as))
				sleepGroup.GET("/", listSleepSessions(as))
				sleepGroup.GET("/:sessionId", getSleepSession(as))
				sleepGroup.PUT("/:sessionId/end", endSleepSession(as))
				sleepGroup.DELETE("/:sessionId", deleteSleepSession(as))
			}

			// Statistics
			babiesGroup.GET("/:babyId/sleep-stats", getSleepStats(as))
			babiesGroup.GET("/:babyId/sleep-summary", getSleepSummary(as))
		}
	}

	return router
}

func setupSignalHandler(as *AppState, server *http.Server, logger *zap.Logger) chan struct{} {
	done := make(chan struct{}, 1)

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signalCh

		logger.Info("Shutting down server...")

		// Create context with timeout for graceful shutdown
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Shutdown server
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Error during server shutdown", zap.Error(err))
		}

		// Close database
		if err := as.DB.Close(); err != nil {
			logger.Error("Error closing database", zap.Error(err))
		}

		done <- struct{}{}
	}()

	return done
}

// User handlers

func createUser(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req users.CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		if err := req.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		user, err := as.UserService.CreateUser(c.Request.Context(), &req)
		if err != nil {
			as.Logger.Error("Failed to create user", zap.Error(err))
			var exists *tracker.AlreadyExistsError
			if errors.As(err, &exists) {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		c.JSON(http.StatusCreated, user)
	}
}

func deleteUser(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userId")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "userId parameter is required"})
			return
		}

		err := as.UserService.DeleteUser(c.Request.Context(), userID)
		if err != nil {
			as.Logger.Error("Failed to delete user", zap.String("user_id", userID), zap.Error(err))
			var notFound *tracker.NotFoundError
			if errors.As(err, &notFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
	}
}

// Baby handlers

func registerBaby(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req babies.RegisterBabyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		if err := req.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// A baby belongs to a registered caregiver
		if _, err := as.UserService.GetUser(c.Request.Context(), req.UserID); err != nil {
			var notFound *tracker.NotFoundError
			if errors.As(err, &notFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			as.Logger.Error("Failed to look up user", zap.String("user_id", req.UserID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register baby"})
			return
		}

		baby, err := as.BabyService.RegisterBaby(c.Request.Context(), &req)
		if err != nil {
			as.Logger.Error("Failed to register baby", zap.Error(err))
			var exists *tracker.AlreadyExistsError
			if errors.As(err, &exists) {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register baby"})
			return
		}

		c.JSON(http.StatusCreated, baby)
	}
}

func getBaby(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		babyID := c.Param("babyId")
		if babyID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "babyId parameter is required"})
			return
		}

		baby, err := as.BabyService.GetBaby(c.Request.Context(), babyID)
		if err != nil {
			as.Logger.Error("Failed to get baby", zap.String("baby_id", babyID), zap.Error(err))
			c.JSON(http.StatusNotFound, gin.H{"error": "Baby not found"})
			return
		}

		c.JSON(http.StatusOK, baby)
	}
}

func listBabies(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Query("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id query parameter is required"})
			return
		}

		babyList, err := as.BabyService.ListBabies(c.Request.Context(), userID)
		if err != nil {
			as.Logger.Error("Failed to list babies", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list babies"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"babies": babyList,
			"count":  len(babyList),
		})
	}
}

func deleteBaby(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		babyID := c.Param("babyId")
		if babyID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "babyId parameter is required"})
			return
		}

		err := as.BabyService.DeleteBaby(c.Request.Context(), babyID)
		if err != nil {
			as.Logger.Error("Failed to delete baby", zap.String("baby_id", babyID), zap.Error(err))
			var notFound *tracker.NotFoundError
			if errors.As(err, &notFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete baby"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Baby deleted successfully"})
	}
}

// Sleep session handlers

func startSleepSession(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sleep.StartSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		// URL is authoritative for the baby
		req.BabyID = c.Param("babyId")

		if err := req.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// Reject sessions for unknown babies at the boundary
		if _, err := as.BabyService.GetBaby(c.Request.Context(), req.BabyID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Baby not found"})
			return
		}

		session, err := as.SleepService.StartSession(c.Request.Context(), &req)
		if err != nil {
			as.Logger.Error("Failed to start sleep session",
				zap.String("baby_id", req.BabyID),
				zap.Error(err))
			var conflict *tracker.ActiveConflictError
			if errors.As(err, &conflict) {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start sleep session"})
			return
		}

		c.JSON(http.StatusCreated, session)
	}
}

func endSleepSession(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sleep.EndSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		req.SessionID = c.Param("sessionId")

		session, err := as.SleepService.EndSession(c.Request.Context(), &req)
		if err != nil {
			as.Logger.Error("Failed to end sleep session",
				zap.String("session_id", req.SessionID),
				zap.Error(err))
			var notFound *tracker.NotFoundError
			if errors.As(err, &notFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			var state *tracker.SessionStateError
			if errors.As(err, &state) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to end sleep session"})
			return
		}

		c.JSON(http.StatusOK, session)
	}
}

func getSleepSession(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("sessionId")

		session, err := as.SleepService.GetSession(c.Request.Context(), sessionID)
		if err != nil {
			as.Logger.Error("Failed to get sleep session", zap.String("session_id", sessionID), zap.Error(err))
			c.JSON(http.StatusNotFound, gin.H{"error": "Sleep session not found"})
			return
		}

		c.JSON(http.StatusOK, session)
	}
}

func listSleepSessions(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		babyID := c.Param("babyId")

		filter := sleep.ListFilter{
			Date: c.Query("date"),
			Type: sleep.Type(c.Query("type")),
		}
		if filter.Type != "" && !filter.Type.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("type query parameter must be one of: %s, %s", sleep.TypeNap, sleep.TypeNight),
			})
			return
		}

		sessions, err := as.SleepService.ListSessions(c.Request.Context(), babyID, filter)
		if err != nil {
			as.Logger.Error("Failed to list sleep sessions", zap.String("baby_id", babyID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sleep sessions"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"sessions": sessions,
			"count":    len(sessions),
		})
	}
}

func deleteSleepSession(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("sessionId")

		err := as.SleepService.DeleteSession(c.Request.Context(), sessionID)
		if err != nil {
			as.Logger.Error("Failed to delete sleep session", zap.String("session_id", sessionID), zap.Error(err))
			var notFound *tracker.NotFoundError
			if errors.As(err, &notFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sleep session"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Sleep session deleted successfully"})
	}
}

// Statistics handlers

func getSleepStats(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		babyID := c.Param("babyId")

		typ := sleep.Type(c.Query("type"))
		if !typ.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("type query parameter must be one of: %s, %s", sleep.TypeNap, sleep.TypeNight),
			})
			return
		}

		report, err := as.StatsService.Quality(c.Request.Context(), babyID, c.Query("date"), typ)
		if err != nil {
			as.Logger.Error("Failed to compute sleep stats",
				zap.String("baby_id", babyID),
				zap.String("type", string(typ)),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute sleep stats"})
			return
		}

		c.JSON(http.StatusOK, report)
	}
}

func getSleepSummary(as *AppState) gin.HandlerFunc {
	return func(c *gin.Context) {
		babyID := c.Param("babyId")

		date := c.Query("date")
		if date == "" {
			// Default to today on the caregiver's calendar
			loc := time.UTC
			if baby, err := as.BabyService.GetBaby(c.Request.Context(), babyID); err == nil {
				if owner, err := as.UserService.GetUser(c.Request.Context(), baby.UserID); err == nil {
					loc = owner.Location()
				}
			}
			date = time.Now().In(loc).Format(sleep.DateLayout)
		}
		if _, err := time.Parse(sleep.DateLayout, date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be in YYYY-MM-DD format"})
			return
		}

		summary, err := as.StatsService.DailySummary(c.Request.Context(), babyID, date)
		if err != nil {
			as.Logger.Error("Failed to compute sleep summary",
				zap.String("baby_id", babyID),
				zap.String("date", date),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute sleep summary"})
			return
		}

		c.JSON(http.StatusOK, summary)
	}
}
