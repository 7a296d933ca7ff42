package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/config"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/database"
	adminctrl "github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/controller/admin"
	userctrl "github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/controller/user"
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/middleware"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(_ *cobra.Command, _ []string) error {
		app := fx.New(
			coreModule(cfg),

			fx.Provide(
				NewGinEngine,
				func(cfg *config.Config) *middleware.JWTService {
					return middleware.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHours)
				},
			),

			// API Controllers Layer
			fx.Provide(
				adminctrl.NewResumeController,
				userctrl.NewAssessmentController,
			),

			fx.Invoke(func(db *gorm.DB) error { return database.AutoMigrate(db) }),
			fx.Invoke(RegisterRoutesAndStartServer),
		)

		if err := app.Start(context.Background()); err != nil {
			return err
		}
		<-app.Done()
		log.Info().Msg("Application shutting down gracefully...")

		stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return app.Stop(stopCtx)
	},
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		requestID, _ := param.Keys["requestID"].(string)
		log.Info().
			Str("request_id", requestID).
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	jwtService *middleware.JWTService,
	resumeCtrl *adminctrl.ResumeController,
	assessmentCtrl *userctrl.AssessmentController,
) {
	api := router.Group("/api/v1", middleware.AuthMiddleware(jwtService))
	assessmentCtrl.RegisterRoutes(api)
	resumeCtrl.RegisterRoutes(api.Group("/admin"))

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Assessment API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}
