package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/geocoder89/confirmhub/internal/auth"
	"github.com/geocoder89/confirmhub/internal/config"
)

var (
	tokenName string
	tokenRole string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an access token for the HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()

		if cfg.JWTSecret == "" {
			fmt.Fprintln(os.Stderr, "JWT_SECRET is not set")
			os.Exit(1)
		}

		if tokenRole != auth.RoleOperator && tokenRole != auth.RoleViewer {
			fmt.Fprintf(os.Stderr, "unknown role %q (use %s or %s)\n", tokenRole, auth.RoleOperator, auth.RoleViewer)
			os.Exit(1)
		}

		m := auth.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTAccessTTLMn)*time.Minute)

		token, err := m.GenerateAccessToken(tokenName, tokenRole)

		if err != nil {
			fmt.Fprintf(os.Stderr, "could not mint token: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(token)
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenName, "name", "operator", "caller name embedded in the token")
	tokenCmd.Flags().StringVar(&tokenRole, "role", auth.RoleOperator, "role to grant (operator or viewer)")

	rootCmd.AddCommand(tokenCmd)
}
