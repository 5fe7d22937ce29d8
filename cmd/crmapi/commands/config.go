package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Get, set and unset values in the config file",
	}

	cmd.AddCommand(newConfigGetCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func configKeys(config *CLIConfig) map[string]*string {
	return map[string]*string{
		"endpoint":   &config.Endpoint,
		"credential": &config.Credential,
		"events_url": &config.EventsURL,
	}
}

func newConfigGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print one configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			field, ok := configKeys(config)[args[0]]
			if !ok {
				return fmt.Errorf("unknown configuration key %q", args[0])
			}

			if args[0] == "credential" && *field != "" {
				// Never echo the credential back
				fmt.Println("(set)")

				return nil
			}

			fmt.Println(*field)

			return nil
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set one configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			field, ok := configKeys(config)[args[0]]
			if !ok {
				return fmt.Errorf("unknown configuration key %q", args[0])
			}

			*field = args[1]

			err := saveConfig(config)
			if err != nil {
				return err
			}

			fmt.Printf("Set %s\n", args[0])

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Remove one configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			field, ok := configKeys(config)[args[0]]
			if !ok {
				return fmt.Errorf("unknown configuration key %q", args[0])
			}

			*field = ""

			err := saveConfig(config)
			if err != nil {
				return err
			}

			fmt.Printf("Unset %s\n", args[0])

			return nil
		},
	}
}
