package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"library-backend/internal/platform/config"
)

// @title        Library Backend API
// @version      1.0
// @description  Books, authors, customers and borrowing transactions.
// @BasePath     /api/v1
// @securityDefinitions.apikey LibraryToken
// @in   header
// @name X-Library-Token

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "library-backend",
		Short:         "Library management REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to config.yaml")

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newAccountCmd(),
		newTokenCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}
