package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/centerline-io/crmapi/pkg/crm"
)

// NewResourceCommand creates the command group for one CRM resource
// (e.g. "leads" → resource "Leads").
func NewResourceCommand(use, resource string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: fmt.Sprintf("Work with %s records", resource),
	}

	cmd.AddCommand(newResourceGetCommand(resource))
	cmd.AddCommand(newResourceListCommand(resource))
	cmd.AddCommand(newResourceSearchCommand(resource))
	cmd.AddCommand(newResourceCreateCommand(resource))
	cmd.AddCommand(newResourceDeleteCommand(resource))

	return cmd
}

func newResourceGetCommand(resource string) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: fmt.Sprintf("Get one %s record by id", resource),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			query := crm.NewQuery().
				SetResource(resource).
				SetOperation(crm.OpFind).
				SetParam("id", args[0])

			resp, err := client.Execute(context.Background(), query)
			if err != nil {
				return fmt.Errorf("failed to get %s record %q: %w", resource, args[0], err)
			}

			record, ok := resp.Record()
			if !ok {
				return fmt.Errorf("%s record %q: %w", resource, args[0], crm.ErrRecordNotFound)
			}

			return outputRecord(record)
		},
	}
}

func newResourceListCommand(resource string) *cobra.Command {
	var (
		allPages bool
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List %s records", resource),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			query := crm.NewQuery().
				SetResource(resource).
				SetOperation(crm.OpList).
				SetWindow(crm.MinStartIndex, pageSize).
				MarkPaginated(allPages)

			if !allPages {
				query.SetParam(crm.FromIndexParam, "1").
					SetParam(crm.ToIndexParam, fmt.Sprint(pageSize))
			}

			resp, err := client.Execute(context.Background(), query)
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", resource, err)
			}

			return outputRecords(resp.Records())
		},
	}

	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&pageSize, "page-size", crm.DefaultPageSize, "records per page")

	return cmd
}

func newResourceSearchCommand(resource string) *cobra.Command {
	return &cobra.Command{
		Use:   "search FIELD=VALUE [FIELD=VALUE...]",
		Short: fmt.Sprintf("Search %s records", resource),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria, err := parseFieldArgs(args)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			query := crm.NewQuery().
				SetResource(resource).
				SetOperation(crm.OpSearch).
				SetParams(criteria)

			resp, err := client.Execute(context.Background(), query)
			if err != nil {
				return fmt.Errorf("failed to search %s: %w", resource, err)
			}

			return outputRecords(resp.Records())
		},
	}
}

func newResourceCreateCommand(resource string) *cobra.Command {
	return &cobra.Command{
		Use:   "create FIELD=VALUE [FIELD=VALUE...]",
		Short: fmt.Sprintf("Create one %s record", resource),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseFieldArgs(args)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			query := crm.NewQuery().
				SetResource(resource).
				SetOperation(crm.OpInsert).
				SetParams(fields)

			resp, err := client.Execute(context.Background(), query)
			if err != nil {
				return fmt.Errorf("failed to create %s record: %w", resource, err)
			}

			if record, ok := resp.Record(); ok {
				return outputRecord(record)
			}

			fmt.Println("Record created")

			return nil
		},
	}
}

func newResourceDeleteCommand(resource string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: fmt.Sprintf("Delete one %s record", resource),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			query := crm.NewQuery().
				SetResource(resource).
				SetOperation(crm.OpDelete).
				SetParam("id", args[0])

			_, err = client.Execute(context.Background(), query)
			if err != nil {
				return fmt.Errorf("failed to delete %s record %q: %w", resource, args[0], err)
			}

			fmt.Println("Record deleted")

			return nil
		},
	}
}

func parseFieldArgs(args []string) (map[string]string, error) {
	fields := make(map[string]string, len(args))

	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid field argument %q, expected FIELD=VALUE", arg)
		}

		fields[key] = value
	}

	return fields, nil
}
