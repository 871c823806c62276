package cmd

import (
	"fmt"
	"log"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/atlaschat/atlaschat/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage client and server configuration",
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		fmt.Printf("Server URL:    %s\n", cfg.ServerURL)
		fmt.Printf("Default model: %s\n", cfg.DefaultModel)
		fmt.Printf("Language:      %s\n", cfg.Language)
		hasKey := "No"
		if cfg.HasAgentKey() {
			hasKey = "Yes"
		}
		fmt.Printf("OpenRouter key: %s\n", hasKey)
	},
}

var initConfigCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively set up the configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		serverPrompt := promptui.Prompt{
			Label:   "Agent server URL",
			Default: cfg.ServerURL,
		}
		serverURL, err := serverPrompt.Run()
		if err != nil {
			log.Fatalf("Prompt cancelled: %v", err)
		}

		langSelect := promptui.Select{
			Label: "Interface language",
			Items: []string{"en", "tr"},
		}
		_, language, err := langSelect.Run()
		if err != nil {
			log.Fatalf("Prompt cancelled: %v", err)
		}

		keyPrompt := promptui.Prompt{
			Label: "OpenRouter API key (only needed for 'atlaschat serve', leave empty to skip)",
			Mask:  '*',
		}
		apiKey, err := keyPrompt.Run()
		if err != nil {
			log.Fatalf("Prompt cancelled: %v", err)
		}

		cfg.ServerURL = serverURL
		cfg.Language = language
		if apiKey != "" {
			cfg.OpenRouterAPIKey = apiKey
		}

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}
		fmt.Println("Configuration saved.")
	},
}

func init() {
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(initConfigCmd)
}
