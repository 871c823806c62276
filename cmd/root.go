package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/atlaschat/atlaschat/internal/app"
	"github.com/atlaschat/atlaschat/internal/config"
)

var (
	flagServerURL string
	flagLanguage  string
)

var rootCmd = &cobra.Command{
	Use:   "atlaschat",
	Short: "A map-aware assistant in your terminal",
	Long: `AtlasChat is a terminal client for a map-aware assistant. Ask about
places in natural language and get answers alongside an interactive map.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if flagServerURL != "" {
			cfg.ServerURL = flagServerURL
		}
		if flagLanguage != "" {
			cfg.Language = flagLanguage
		}

		application := app.NewApplication(cfg)
		defer application.Stop()

		if err := application.Start(); err != nil {
			log.Fatalf("Application error: %v", err)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServerURL, "server", "", "agent backend URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLanguage, "lang", "", "interface language, en or tr (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
