package crmclient

import (
	"fmt"
	"strings"

	"github.com/centerline-io/crmapi/internal/client"
	"github.com/centerline-io/crmapi/pkg/crm"
)

// New creates a new CRM API client.
func New(config *crm.Config) (crm.Client, error) {
	if config == nil {
		return nil, crm.ErrConfigRequired
	}

	if config.Endpoint == "" {
		return nil, crm.ErrEndpointRequired
	}

	// Normalize the endpoint
	endpoint := strings.TrimSuffix(config.Endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	config.Endpoint = endpoint

	if config.Format == "" {
		config.Format = crm.FormatJSON
	}

	engine, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return engine, nil
}
