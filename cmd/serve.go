package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/atlaschat/atlaschat/internal/config"
	"github.com/atlaschat/atlaschat/internal/server"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the agent backend",
	Long: `Run the HTTP backend the chat client talks to. It proxies the model
catalog from OpenRouter and answers map queries with a tool-calling agent
backed by Nominatim.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if !cfg.HasAgentKey() {
			log.Fatal("No OpenRouter API key configured. Set OPENROUTER_API_KEY or run 'atlaschat config init'.")
		}

		srv := server.New(cfg)
		log.Printf("Listening on %s", flagAddr)
		if err := srv.ListenAndServe(flagAddr); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", ":8000", "listen address")
}
