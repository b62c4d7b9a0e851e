package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fedikit/fedigo/pkg/fedi"
)

const defaultSearchLimit = 10

// NewAccountsCommand creates the accounts command group.
func NewAccountsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Inspect and manage accounts",
	}

	cmd.AddCommand(newAccountsShowCommand())
	cmd.AddCommand(newAccountsSearchCommand())
	cmd.AddCommand(newAccountsFollowCommand())
	cmd.AddCommand(newAccountsUnfollowCommand())
	cmd.AddCommand(newAccountsFollowersCommand())
	cmd.AddCommand(newAccountsWhoamiCommand())

	return cmd
}

func newAccountsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			account, err := client.Accounts().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("fetching account: %w", err)
			}

			return renderAccount(account)
		},
	}
}

func newAccountsWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			account, err := client.Accounts().VerifyCredentials(ctx)
			if err != nil {
				return fmt.Errorf("verifying credentials: %w", err)
			}

			return renderAccount(account)
		},
	}
}

func newAccountsSearchCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search accounts by name or handle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			accounts, err := client.Accounts().Search(ctx, args[0], limit)
			if err != nil {
				return fmt.Errorf("searching accounts: %w", err)
			}

			return renderAccountList(accounts)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultSearchLimit, "maximum results")

	return cmd
}

func newAccountsFollowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "follow <id>",
		Short: "Follow an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			relationship, err := client.Accounts().Follow(ctx, args[0], nil)
			if err != nil {
				return fmt.Errorf("following account: %w", err)
			}

			if relationship.Requested {
				fmt.Println("Follow requested")
			} else {
				fmt.Println("Following")
			}

			return nil
		},
	}
}

func newAccountsUnfollowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unfollow <id>",
		Short: "Unfollow an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			_, err = client.Accounts().Unfollow(ctx, args[0])
			if err != nil {
				return fmt.Errorf("unfollowing account: %w", err)
			}

			fmt.Println("Unfollowed")

			return nil
		},
	}
}

func newAccountsFollowersCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "followers <id>",
		Short: "List an account's followers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			pager := client.Accounts().Followers(args[0], fedi.NewQueryParams().WithLimit(limit))

			accounts, err := pager.Advance(ctx, nil)
			if err != nil {
				return fmt.Errorf("fetching followers: %w", err)
			}

			return renderAccountList(accounts)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultTimelineLimit, "followers per page")

	return cmd
}

func renderAccount(account *fedi.Account) error {
	format := viper.GetString("output")
	if format != OutputFormatTable {
		return renderStructured(format, account)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Field", "Value")
	_ = table.Append("ID", account.ID)
	_ = table.Append("Handle", "@"+account.Acct)
	_ = table.Append("Display name", account.DisplayName)
	_ = table.Append("Followers", strconv.FormatInt(account.FollowersCount, 10))
	_ = table.Append("Following", strconv.FormatInt(account.FollowingCount, 10))
	_ = table.Append("Statuses", strconv.FormatInt(account.StatusesCount, 10))
	_ = table.Append("Note", truncate(stripHTML(account.Note), contentColumnWidth))
	_ = table.Render()

	return nil
}

func renderAccountList(accounts []fedi.Account) error {
	format := viper.GetString("output")
	if format != OutputFormatTable {
		return renderStructured(format, accounts)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Handle", "Display name", "Followers")

	for _, account := range accounts {
		_ = table.Append(account.ID, "@"+account.Acct, account.DisplayName, strconv.FormatInt(account.FollowersCount, 10))
	}

	_ = table.Render()

	return nil
}
