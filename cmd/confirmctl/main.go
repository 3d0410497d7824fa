package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/geocoder89/confirmhub/internal/config"
	"github.com/geocoder89/confirmhub/internal/mailer"
)

var rootCmd = &cobra.Command{
	Use:   "confirmctl",
	Short: "ConfirmHub CLI",
	Long:  `A CLI tool to send registration confirmation emails and inspect the mail setup.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() {
		// .env is a local convenience, same as the api binary
		_ = godotenv.Load()
	})
}

// same provider switch the api binary uses; wiring stays in main packages
func buildProvider(cfg config.Config, log *slog.Logger) mailer.Provider {
	switch cfg.Provider {
	case "resend":
		return mailer.NewResendProvider(cfg.ResendAPIKey, cfg.FromEmail)
	case "smtp":
		return mailer.NewSMTPProvider(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.FromEmail)
	default:
		return mailer.NewLogProvider(log)
	}
}

func main() {
	Execute()
}
