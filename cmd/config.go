package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/battlemancer/internal/config"
)

// configCmd represents the config command group
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage battlemancer configuration",
	Long:  `Commands for managing the battlemancer configuration file.`,
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error initializing config: %v\n", err)
			return
		}

		fmt.Println("Config file initialized at:", config.GetConfigFilePath())
		fmt.Println("Card API:        ", cfg.APIBaseURL)
		fmt.Println("Fallback dataset:", cfg.FallbackURL)
		if cfg.APIKey == "" {
			fmt.Println("No API key set. Requests work without one but are rate limited;")
			fmt.Println("set one with 'battlemancer config set-key <key>'.")
		}
	},
}

// configSetKeyCmd represents the config set-key command
var configSetKeyCmd = &cobra.Command{
	Use:   "set-key [api_key]",
	Short: "Set the card API key",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := config.SetAPIKey(args[0]); err != nil {
			fmt.Printf("Error setting API key: %v\n", err)
			return
		}

		fmt.Println("API key saved.")
	},
}

// configPathCmd represents the config path command
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the location of the configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.GetConfigFilePath())
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetKeyCmd)
	configCmd.AddCommand(configPathCmd)
}
