package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/centerline-io/crmapi/internal/constants"
	"github.com/centerline-io/crmapi/pkg/crm"
	"github.com/centerline-io/crmapi/pkg/crmclient"
)

// Output format names.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
)

// CLIConfig is what gets persisted to ~/.crmapi/config.yml.
type CLIConfig struct {
	Endpoint   string `yaml:"endpoint"`
	Credential string `yaml:"credential,omitempty"`
	EventsURL  string `yaml:"events_url,omitempty"`
}

func configFilePath() (string, error) {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		return cfgFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}

	return filepath.Join(home, ".crmapi", "config.yml"), nil
}

func loadConfig() *CLIConfig {
	config := &CLIConfig{}

	path, err := configFilePath()
	if err != nil {
		return config
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return config
	}

	_ = yaml.Unmarshal(data, config)

	return config
}

func saveConfig(config *CLIConfig) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// CreateClient assembles a crm.Client from flags, environment and the
// config file, in that precedence order (viper handles the merge).
func CreateClient() (crm.Client, error) {
	endpoint := viper.GetString("endpoint")
	credential := viper.GetString("credential")

	fileConfig := loadConfig()
	if endpoint == "" {
		endpoint = fileConfig.Endpoint
	}

	if credential == "" {
		credential = fileConfig.Credential
	}

	if endpoint == "" {
		return nil, crm.ErrEndpointRequired
	}

	config := &crm.Config{
		Endpoint:   endpoint,
		Credential: credential,
		Debug:      viper.GetBool("verbose"),
		EventsURL:  fileConfig.EventsURL,
	}

	if viper.GetBool("verbose") {
		config.Logger = newZerologAdapter()
	}

	return crmclient.New(config)
}

// recordColumns returns the union of field names across records, sorted so
// table output is deterministic.
func recordColumns(records []crm.Record) []string {
	seen := map[string]struct{}{}

	for _, record := range records {
		for key := range record {
			seen[key] = struct{}{}
		}
	}

	columns := make([]string, 0, len(seen))
	for key := range seen {
		columns = append(columns, key)
	}

	sort.Strings(columns)

	return columns
}

func outputRecords(records []crm.Record) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		return encoder.Encode(records)
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		return encoder.Encode(records)
	default:
		return outputRecordsTable(records)
	}
}

func outputRecordsTable(records []crm.Record) error {
	if len(records) == 0 {
		_, _ = os.Stdout.WriteString("No records found\n")

		return nil
	}

	columns := recordColumns(records)

	table := tablewriter.NewWriter(os.Stdout)

	header := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		header = append(header, column)
	}

	table.Header(header...)

	for _, record := range records {
		row := make([]interface{}, 0, len(columns))

		for _, column := range columns {
			value, ok := record[column]
			if !ok {
				value = ""
			}

			row = append(row, fmt.Sprint(value))
		}

		_ = table.Append(row...)
	}

	return table.Render()
}

func outputRecord(record crm.Record) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		return encoder.Encode(record)
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		return encoder.Encode(record)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Field", "Value")

		for _, column := range recordColumns([]crm.Record{record}) {
			_ = table.Append(column, fmt.Sprint(record[column]))
		}

		return table.Render()
	}
}
