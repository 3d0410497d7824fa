package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/geocoder89/confirmhub/internal/config"
	"github.com/geocoder89/confirmhub/internal/observability"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the mail provider is ready to send",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		log := observability.NewLogger(cfg.Env)

		st := buildProvider(cfg, log).ConfigStatus()

		if !st.Configured {
			fmt.Printf("not configured: %s\n", st.Message)
			os.Exit(1)
		}

		fmt.Printf("configured (%s): %s\n", cfg.Provider, st.Message)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
