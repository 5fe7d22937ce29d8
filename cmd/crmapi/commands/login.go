package commands

import (
	"context"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/centerline-io/crmapi/pkg/crm"
	"github.com/centerline-io/crmapi/pkg/crmclient"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var credential string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the API endpoint and credential",
		Long:  "Verify the credential against the API and persist it to the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			endpoint := viper.GetString("endpoint")
			if endpoint == "" {
				endpoint = loadConfig().Endpoint
			}

			if endpoint == "" {
				return crm.ErrEndpointRequired
			}

			if credential == "" {
				fmt.Print("Credential: ")

				byteCredential, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read credential: %w", err)
				}

				credential = string(byteCredential)

				fmt.Println()
			}

			client, err := crmclient.New(&crm.Config{
				Endpoint:   endpoint,
				Credential: credential,
			})
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}
			defer func() { _ = client.Close() }()

			// Verify the credential with a minimal request before saving
			query := crm.NewQuery().
				SetResource(crm.ResourceLeads).
				SetOperation(crm.OpList).
				SetParam(crm.FromIndexParam, "1").
				SetParam(crm.ToIndexParam, "1")

			_, err = client.Execute(context.Background(), query)
			if err != nil && !crm.IsVendorError(err) {
				return fmt.Errorf("failed to connect to API: %w", err)
			}

			if crm.IsVendorError(err) {
				return fmt.Errorf("credential rejected: %w", err)
			}

			config := loadConfig()
			config.Endpoint = endpoint
			config.Credential = credential

			err = saveConfig(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Println("Logged in and credential saved")

			return nil
		},
	}

	cmd.Flags().StringVar(&credential, "credential", "", "access credential (prompted when omitted)")

	return cmd
}
