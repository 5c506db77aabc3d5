package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/prepwise/interview-engine/internal/cache"
	"github.com/prepwise/interview-engine/internal/config"
	"github.com/prepwise/interview-engine/internal/errors"
	"github.com/prepwise/interview-engine/internal/interview"
	"github.com/prepwise/interview-engine/internal/monitoring"
	"github.com/prepwise/interview-engine/internal/providers"
	"github.com/prepwise/interview-engine/internal/security"
	"github.com/prepwise/interview-engine/internal/types"
)

func main() {
	// Structured logging setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	gin.SetMode(cfg.GinMode)

	// Provider clients. Either may be absent; the service then serves
	// fallback scores for the affected modality.
	var evaluator providers.Evaluator
	if cfg.HasGemini() {
		geminiEvaluator, err := providers.NewGeminiEvaluator(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			slog.Error("Failed to initialize Gemini client", "error", err)
			os.Exit(1)
		}
		defer geminiEvaluator.Close()
		evaluator = geminiEvaluator
	} else {
		slog.Warn("GEMINI_API_KEY not set, text evaluation will return fallback scores")
	}

	var transcriber providers.Transcriber
	if cfg.HasTranscription() {
		transcriber = providers.NewAssemblyAIClient(cfg.AssemblyAIAPIKey).WithBaseURL(cfg.AssemblyAIBaseURL)
	} else {
		slog.Warn("ASSEMBLYAI_API_KEY not set, audio analysis will return fallback scores")
	}

	r := gin.New()

	// Initialize monitoring system
	appMetrics := monitoring.NewMetrics()
	appLogger := monitoring.NewLogger()

	svc := interview.NewService(evaluator, transcriber, appLogger, appMetrics, cfg.MaxConcurrentAnalyses)

	// Add monitoring middleware first (to capture all requests)
	r.Use(monitoring.MonitoringMiddleware(appMetrics, appLogger))

	// Add error handling middleware
	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())

	// CORS for the interview frontend
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(corsConfig))

	// Security middleware setup
	securityConfig := security.DefaultSecurityConfig()
	securityConfig.AllowedOrigins = cfg.AllowedOrigins
	securityConfig.MaxRequestsPerMin = cfg.MaxRequestsPerMin
	securityConfig.RequestTimeout = cfg.RequestTimeout
	securityMiddleware := security.NewSecurityMiddleware(securityConfig)

	r.Use(securityMiddleware.SecurityHeaders)
	r.Use(securityMiddleware.RequestTimeout)
	r.Use(securityMiddleware.ValidateContentType)
	r.Use(securityMiddleware.LimitRequestBody)
	r.Use(securityMiddleware.RateLimitByIP)

	// Question sets for the same role and difficulty are cached
	questionCache := cache.NewCache(cfg.QuestionCacheTTL)
	r.Use(questionCache.Middleware(appMetrics))

	r.GET("/health", func(c *gin.Context) {
		providerStatus := gin.H{
			"gemini":     cfg.HasGemini(),
			"assemblyai": cfg.HasTranscription(),
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   "1.0.0",
			"providers": providerStatus,
			"metrics":   appMetrics.GetStats(),
		})
	})

	api := r.Group("/api")

	api.POST("/interview/analyze", func(c *gin.Context) {
		var req types.InterviewAnalysisRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			appErr := errors.NewValidationError("invalid request body", err.Error())
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		resp, err := svc.AnalyzeInterview(c.Request.Context(), req)
		if err != nil {
			appErr := errors.ToAppError(err)
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		c.JSON(http.StatusOK, resp)
	})

	api.POST("/audio/analyze-url", func(c *gin.Context) {
		var req types.AudioAnalysisRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			appErr := errors.NewValidationError("invalid request body", err.Error())
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		resp, err := svc.AnalyzeAudio(c.Request.Context(), req)
		if err != nil {
			appErr := errors.ToAppError(err)
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		c.JSON(http.StatusOK, resp)
	})

	api.POST("/audio/analyze-batch", func(c *gin.Context) {
		var req types.AudioBatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			appErr := errors.NewValidationError("invalid request body", err.Error())
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		results, err := svc.AnalyzeAudioBatch(c.Request.Context(), req)
		if err != nil {
			appErr := errors.ToAppError(err)
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"total":   len(results),
			"results": results,
		})
	})

	api.POST("/report", func(c *gin.Context) {
		var req types.ReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			appErr := errors.NewValidationError("invalid request body", err.Error())
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		report := svc.BuildReport(req)
		c.JSON(http.StatusOK, report)
	})

	api.POST("/questions/generate", func(c *gin.Context) {
		var req types.GenerateQuestionsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			appErr := errors.NewValidationError("invalid request body", err.Error())
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		questions, err := svc.GenerateQuestions(c.Request.Context(), req)
		if err != nil {
			appErr := errors.ToAppError(err)
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"role":      req.Role,
			"questions": questions,
		})
	})

	// Swagger documentation routes
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Metrics endpoint
	r.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, appMetrics.GetStats())
	})

	// Cache stats endpoint
	r.GET("/cache/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, questionCache.Stats())
	})

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}
