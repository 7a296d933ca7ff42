package main

import (
	"errors"
	"fmt"

	"github.com/kp-weassist/agentic-powered-recruitment-platform-sub000/internal/middleware"
	"github.com/spf13/cobra"
)

var (
	tokenUser string
	tokenRole string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for local testing",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.JWT.Secret == "" {
			return errors.New("JWT_SECRET must be set")
		}
		token, err := middleware.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHours).GenerateTokenWithRole(tokenUser, tokenRole)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "User id to put in the token subject")
	tokenCmd.Flags().StringVar(&tokenRole, "role", "", `Optional role claim ("admin" may manage any user's resumes)`)
	_ = tokenCmd.MarkFlagRequired("user")
}
