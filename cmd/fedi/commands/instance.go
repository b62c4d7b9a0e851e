package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewInstanceCommand creates the instance command.
func NewInstanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "instance",
		Short: "Show information about the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			instance, err := client.Instance().Get(ctx)
			if err != nil {
				return fmt.Errorf("fetching instance: %w", err)
			}

			format := viper.GetString("output")
			if format != OutputFormatTable {
				return renderStructured(format, instance)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Field", "Value")
			_ = table.Append("URI", instance.URI)
			_ = table.Append("Title", instance.Title)
			_ = table.Append("Version", instance.Version)
			_ = table.Append("Email", instance.Email)
			_ = table.Append("Registrations", fmt.Sprintf("%t", instance.Registrations))

			if instance.Stats != nil {
				_ = table.Append("Users", fmt.Sprintf("%d", instance.Stats.UserCount))
				_ = table.Append("Statuses", fmt.Sprintf("%d", instance.Stats.StatusCount))
				_ = table.Append("Domains", fmt.Sprintf("%d", instance.Stats.DomainCount))
			}

			_ = table.Render()

			return nil
		},
	}
}
