package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/geocoder89/confirmhub/internal/security"
)

var hashKeyCmd = &cobra.Command{
	Use:   "hash-key [key]",
	Short: "Hash an API key for the API_KEY_HASH setting",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		hash, err := security.HashAPIKey(args[0])

		if err != nil {
			fmt.Fprintf(os.Stderr, "could not hash key: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(hash)
	},
}

func init() {
	rootCmd.AddCommand(hashKeyCmd)
}
