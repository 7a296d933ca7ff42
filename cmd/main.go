package main

import (
	"fmt"
	"os"

	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/config"
	_ "github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/docs" // Swagger docs
	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/logger"
	"github.com/spf13/cobra"
)

// @title Assessment Generation & Grading API
// @version 1.0
// @description Generates role-specific technical assessments from a job description and resume, and grades candidate submissions.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "assessments",
	Short: "Assessment generation and grading service",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.Init("info")
		loaded, err := config.NewConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		logger.Init(cfg.LogLevel)
		return nil
	},
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd, tokenCmd, attemptCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
