package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fedikit/fedigo/pkg/fedi"
)

// NewNotificationsCommand creates the notifications command group.
func NewNotificationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Read and manage notifications",
	}

	cmd.AddCommand(newNotificationsListCommand())
	cmd.AddCommand(newNotificationsDismissCommand())
	cmd.AddCommand(newNotificationsClearCommand())

	return cmd
}

func newNotificationsListCommand() *cobra.Command {
	var (
		limit        int
		excludeTypes []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			params := fedi.NewQueryParams().WithLimit(limit)
			if len(excludeTypes) > 0 {
				params = params.WithFilter("exclude_types[]", excludeTypes...)
			}

			notifications, err := client.Notifications().List(params).Advance(ctx, nil)
			if err != nil {
				return fmt.Errorf("fetching notifications: %w", err)
			}

			format := viper.GetString("output")
			if format != OutputFormatTable {
				return renderStructured(format, notifications)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Type", "Account", "Status")

			for _, notification := range notifications {
				statusText := ""
				if notification.Status != nil {
					statusText = truncate(stripHTML(notification.Status.Content), contentColumnWidth)
				}

				_ = table.Append(notification.ID, notification.Type, "@"+notification.Account.Acct, statusText)
			}

			_ = table.Render()

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultTimelineLimit, "notifications per page")
	cmd.Flags().StringSliceVar(&excludeTypes, "exclude", nil, "notification types to exclude")

	return cmd
}

func newNotificationsDismissCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss <id>",
		Short: "Dismiss one notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			err = client.Notifications().Dismiss(ctx, args[0])
			if err != nil {
				return fmt.Errorf("dismissing notification: %w", err)
			}

			fmt.Println("Dismissed")

			return nil
		},
	}
}

func newNotificationsClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			err = client.Notifications().Clear(ctx)
			if err != nil {
				return fmt.Errorf("clearing notifications: %w", err)
			}

			fmt.Println("Cleared")

			return nil
		},
	}
}
