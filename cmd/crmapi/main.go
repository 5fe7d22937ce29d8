package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/centerline-io/crmapi/cmd/crmapi/commands"
	"github.com/centerline-io/crmapi/internal/constants"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "crmapi",
	Short: "CRM API CLI",
	Long: `A command-line interface for the CRM vendor API.

Look up, search, create and delete CRM records (leads, contacts, accounts,
potentials) from the terminal, with table, JSON or YAML output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.crmapi/config.yml)")
	rootCmd.PersistentFlags().StringP("endpoint", "e", "", "API endpoint URL")
	rootCmd.PersistentFlags().StringP("credential", "t", "", "access credential")
	rootCmd.PersistentFlags().String("output", "table", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
	_ = viper.BindPFlag("credential", rootCmd.PersistentFlags().Lookup("credential"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewLoginCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewResourceCommand("leads", "Leads"))
	rootCmd.AddCommand(commands.NewResourceCommand("contacts", "Contacts"))
	rootCmd.AddCommand(commands.NewResourceCommand("accounts", "Accounts"))
	rootCmd.AddCommand(commands.NewResourceCommand("potentials", "Potentials"))
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Create config directory if it doesn't exist
		configDir := filepath.Join(home, ".crmapi")
		if err := os.MkdirAll(configDir, constants.ConfigDirPerm); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating config directory: %v\n", err)
		}

		// Search config in ~/.crmapi/config.yml
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix("CRMAPI")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
