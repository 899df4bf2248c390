// Copyright 2025 Launchpage Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/your-org/launchpage/internal/asset"
	"github.com/your-org/launchpage/internal/brief"
	"github.com/your-org/launchpage/internal/config"
	"github.com/your-org/launchpage/internal/generator"
	"github.com/your-org/launchpage/internal/health"
	"github.com/your-org/launchpage/internal/llm"
	"github.com/your-org/launchpage/internal/logging"
	"github.com/your-org/launchpage/internal/resilience"
	"github.com/your-org/launchpage/internal/storage"
)

const serviceVersion = "1.0.0"

// GenerateResponse is the JSON response for a generation request
type GenerateResponse struct {
	ID       string `json:"id"`
	HTML     string `json:"html"`
	Fallback bool   `json:"fallback"`
	Attempts int    `json:"attempts"`
}

// serviceDependencies holds initialized service dependencies
type serviceDependencies struct {
	Store        *storage.Store
	Pipeline     *generator.Pipeline
	ErrorHandler *resilience.ErrorHandler
	Config       *config.Config
	Logger       *zap.Logger
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the landing page generation API server",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	maskedConfig := cfg.MaskSensitiveValues()
	logger.Info("Configuration loaded successfully",
		zap.String("service", "launchpage"),
		zap.String("port", maskedConfig.Server.Port),
		zap.String("openai_endpoint", maskedConfig.OpenAI.Endpoint),
		zap.String("openai_api_key", maskedConfig.OpenAI.APIKey),
		zap.String("model", maskedConfig.OpenAI.Model),
		zap.Int("max_attempts", maskedConfig.Generation.MaxAttempts),
		zap.String("sites_db_path", maskedConfig.Sites.DBPath),
	)

	deps, err := initializeDependencies(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize dependencies", zap.Error(err))
		return err
	}
	defer func() {
		if err := deps.Store.Close(); err != nil {
			logger.Warn("Failed to close sites store", zap.Error(err))
		}
	}()

	if err := config.WatchConfig(configPath, func(updated *config.Config) {
		logger.Info("Configuration file changed, restart to apply",
			zap.Int("max_attempts", updated.Generation.MaxAttempts),
			zap.String("model", updated.OpenAI.Model))
	}); err != nil {
		logger.Warn("Configuration watching disabled", zap.Error(err))
	}

	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := buildRouter(deps)

	port := ":" + cfg.Server.Port
	logger.Info("Starting launchpage service", zap.String("port", port))

	if err := router.Run(port); err != nil {
		logger.Error("Failed to start server", zap.Error(err))
		return err
	}
	return nil
}

// initializeDependencies initializes all service dependencies
func initializeDependencies(cfg *config.Config, logger *zap.Logger) (*serviceDependencies, error) {
	logger.Info("Initializing service dependencies")

	store, err := storage.NewStore(cfg.Sites.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sites store: %w", err)
	}

	client, err := llm.NewOpenAIClient(llm.Settings{
		APIKey:      cfg.OpenAI.APIKey,
		Endpoint:    cfg.OpenAI.Endpoint,
		Model:       cfg.OpenAI.Model,
		MaxTokens:   cfg.Generation.MaxTokens,
		Temperature: float32(cfg.Generation.Temperature),
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize model client: %w", err)
	}

	pipeline, err := generator.NewPipeline(client, generator.Config{
		MaxAttempts: cfg.Generation.MaxAttempts,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generation pipeline: %w", err)
	}

	logger.Info("Service dependencies initialized successfully")

	return &serviceDependencies{
		Store:        store,
		Pipeline:     pipeline,
		ErrorHandler: resilience.NewErrorHandler(logger),
		Config:       cfg,
		Logger:       logger,
	}, nil
}

// buildRouter builds the gin router with all routes and middleware
func buildRouter(deps *serviceDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = 8 << 20

	router.Use(cors.New(cors.Config{
		AllowOrigins:     deps.Config.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	healthManager := health.NewManager("launchpage", serviceVersion, deps.Logger)
	healthManager.AddChecker("sites_db", health.DatabaseHealthChecker("sites", deps.Store.Ping))

	router.GET("/health", gin.WrapH(healthManager.HTTPHandler()))

	api := router.Group("/api")
	api.POST("/generate", createGenerateHandler(deps))
	api.GET("/sites", createListSitesHandler(deps))
	api.GET("/sites/:id", createGetSiteHandler(deps))

	return router
}

// createGenerateHandler creates the handler for generation requests
func createGenerateHandler(deps *serviceDependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Header("X-Request-ID", requestID)

		raw, err := parseGenerateRequest(c)
		if err != nil {
			writeError(c, deps, resilience.NewBadRequestError(err.Error(), err), requestID)
			return
		}

		b, err := brief.Normalize(raw)
		if err != nil {
			writeError(c, deps, resilience.NewBadRequestError(err.Error(), err), requestID)
			return
		}

		deps.Logger.Info("Processing generation request",
			zap.String("request_id", requestID),
			zap.String("name", b.Name),
			zap.String("ticker", b.Ticker))

		var result *generator.Result
		timeout := time.Duration(deps.Config.Generation.TimeoutSeconds) * time.Second
		err = resilience.WithTimeout(c.Request.Context(), timeout, deps.Logger, func(ctx context.Context) error {
			var genErr error
			result, genErr = deps.Pipeline.Generate(ctx, b)
			return genErr
		})
		if err != nil {
			writeError(c, deps, deps.ErrorHandler.WrapError(err, "generating a page"), requestID)
			return
		}

		site := storage.Site{
			ID:        uuid.NewString(),
			Name:      b.Name,
			Ticker:    b.Ticker,
			HTML:      result.Document,
			Fallback:  result.Fallback,
			CreatedAt: time.Now().UTC(),
		}

		// Persistence is best effort. A page that cannot be saved is
		// still returned to the caller.
		go func() {
			saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := deps.Store.SaveSite(saveCtx, site); err != nil {
				deps.Logger.Warn("Failed to persist generated site",
					zap.String("site_id", site.ID),
					zap.Error(err))
			}
		}()

		c.JSON(http.StatusOK, GenerateResponse{
			ID:       site.ID,
			HTML:     result.Document,
			Fallback: result.Fallback,
			Attempts: len(result.Attempts),
		})
	}
}

// parseGenerateRequest parses the multipart generation form into a raw brief
func parseGenerateRequest(c *gin.Context) (brief.Raw, error) {
	raw := brief.Raw{
		Name:            c.PostForm("name"),
		Ticker:          c.PostForm("ticker"),
		Description:     c.PostForm("description"),
		PrimaryColor:    c.PostForm("primaryColor"),
		AccentColor:     c.PostForm("accentColor"),
		BackgroundColor: c.PostForm("backgroundColor"),
		TwitterURL:      c.PostForm("twitterUrl"),
		TelegramURL:     c.PostForm("telegramUrl"),
	}

	logo, err := readUpload(c, "logo")
	if err != nil {
		return raw, fmt.Errorf("invalid logo upload: %w", err)
	}
	raw.LogoAsset = logo

	background, err := readUpload(c, "background")
	if err != nil {
		return raw, fmt.Errorf("invalid background upload: %w", err)
	}
	raw.BackgroundAsset = background

	return raw, nil
}

// readUpload reads an optional uploaded image and encodes it as a data URI.
// A missing file is not an error, assets are optional.
func readUpload(c *gin.Context, field string) (string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", err
	}
	return encodeUpload(fileHeader)
}

func encodeUpload(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	return asset.EncodeDataURI(data)
}

// createGetSiteHandler creates the handler for fetching a saved site
func createGetSiteHandler(deps *serviceDependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Header("X-Request-ID", requestID)

		site, err := deps.Store.GetSite(c.Request.Context(), c.Param("id"))
		if err != nil {
			if err == storage.ErrNotFound {
				writeError(c, deps, resilience.NewNotFoundError("Site not found", err), requestID)
				return
			}
			writeError(c, deps, resilience.NewInternalError("Failed to load site", err), requestID)
			return
		}

		c.JSON(http.StatusOK, site)
	}
}

// createListSitesHandler creates the handler for listing saved sites
func createListSitesHandler(deps *serviceDependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Header("X-Request-ID", requestID)

		sites, err := deps.Store.ListSites(c.Request.Context(), 50)
		if err != nil {
			writeError(c, deps, resilience.NewInternalError("Failed to list sites", err), requestID)
			return
		}
		if sites == nil {
			sites = []storage.Site{}
		}

		c.JSON(http.StatusOK, gin.H{"sites": sites, "count": len(sites)})
	}
}

// writeError writes a ServiceError as a JSON error response
func writeError(c *gin.Context, deps *serviceDependencies, err *resilience.ServiceError, requestID string) {
	deps.ErrorHandler.LogError(err, c.FullPath(), zap.String("request_id", requestID))
	c.JSON(err.StatusCode, err.ToErrorResponse(requestID))
}
