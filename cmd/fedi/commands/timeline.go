package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fedikit/fedigo/pkg/fedi"
)

const (
	defaultTimelineLimit = 20
	contentColumnWidth   = 80
)

// NewTimelineCommand creates the timeline command.
func NewTimelineCommand() *cobra.Command {
	var (
		local bool
		limit int
		pages int
	)

	cmd := &cobra.Command{
		Use:   "timeline [home|public|tag <tag>|list <id>]",
		Short: "Read a timeline",
		Long:  "Fetch statuses from the home, public, hashtag, or list timeline",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			name := "home"
			if len(args) > 0 {
				name = args[0]
			}

			params := fedi.NewQueryParams().WithLimit(limit)

			var pager *fedi.Pager[fedi.Status]

			switch name {
			case "home":
				pager = client.Timelines().Home(params)
			case "public":
				pager = client.Timelines().Public(local, params)
			case "tag":
				if len(args) < 2 {
					return ErrTagRequired
				}

				pager = client.Timelines().Tag(args[1], params)
			case "list":
				if len(args) < 2 {
					return ErrListIDRequired
				}

				pager = client.Timelines().List(args[1], params)
			default:
				return fmt.Errorf("%w: %s", ErrUnknownTimeline, name)
			}

			var statuses []fedi.Status

			for fetched := 0; pages == 0 || fetched < pages; fetched++ {
				page, err := pager.Advance(ctx, nil)
				if err != nil {
					if errors.Is(err, fedi.ErrNoMorePages) {
						break
					}

					return fmt.Errorf("fetching timeline: %w", err)
				}

				statuses = append(statuses, page...)
			}

			format := viper.GetString("output")
			if format != OutputFormatTable {
				return renderStructured(format, statuses)
			}

			renderStatusTable(statuses)

			return nil
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "restrict the public timeline to local statuses")
	cmd.Flags().IntVar(&limit, "limit", defaultTimelineLimit, "statuses per page")
	cmd.Flags().IntVar(&pages, "pages", 1, "pages to fetch (0 for all)")

	return cmd
}

func renderStatusTable(statuses []fedi.Status) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Account", "Content")

	for _, status := range statuses {
		content := status.Content
		if status.Reblog != nil {
			content = "RT @" + status.Reblog.Account.Acct + ": " + status.Reblog.Content
		}

		_ = table.Append(status.ID, "@"+status.Account.Acct, truncate(stripHTML(content), contentColumnWidth))
	}

	_ = table.Render()
}
