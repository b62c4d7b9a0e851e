package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fedikit/fedigo/pkg/fedi"
)

// NewStreamCommand creates the stream command.
func NewStreamCommand() *cobra.Command {
	var (
		useSocket bool
		local     bool
	)

	cmd := &cobra.Command{
		Use:   "stream [user|public|tag <tag>|list <id>]",
		Short: "Follow a live event stream",
		Long:  "Print timeline events as the server delivers them; interrupt to stop",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			name := "user"
			if len(args) > 0 {
				name = args[0]
			}

			streaming := client.Streaming()

			var session *fedi.StreamSession

			switch name {
			case "user":
				if useSocket {
					session = streaming.UserSocket()
				} else {
					session = streaming.User()
				}
			case "public":
				if useSocket {
					session = streaming.PublicSocket(local)
				} else {
					session = streaming.Public(local)
				}
			case "tag":
				if len(args) < 2 {
					return ErrTagRequired
				}

				if useSocket {
					session = streaming.HashtagSocket(args[1])
				} else {
					session = streaming.Hashtag(args[1])
				}
			case "list":
				if len(args) < 2 {
					return ErrListIDRequired
				}

				if useSocket {
					session = streaming.ListSocket(args[1])
				} else {
					session = streaming.List(args[1])
				}
			default:
				return fmt.Errorf("%w: %s", ErrUnknownStream, name)
			}

			registerStreamPrinters(session)

			err = session.Connect(ctx)
			if err != nil {
				return fmt.Errorf("connecting stream: %w", err)
			}

			defer session.Close()

			interrupts := make(chan os.Signal, 1)
			signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(interrupts)

			select {
			case <-interrupts:
			case <-ctx.Done():
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&useSocket, "ws", false, "stream over a socket connection instead of server-sent events")
	cmd.Flags().BoolVar(&local, "local", false, "restrict the public stream to local statuses")

	return cmd
}

func registerStreamPrinters(session *fedi.StreamSession) {
	session.On(fedi.EventUpdate, func(frame fedi.EventFrame) {
		status, err := fedi.DecodeUpdate(frame)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bad update event: %v\n", err)

			return
		}

		fmt.Printf("[update] @%s: %s\n", status.Account.Acct, truncate(stripHTML(status.Content), contentColumnWidth))
	})

	session.On(fedi.EventNotification, func(frame fedi.EventFrame) {
		notification, err := fedi.DecodeNotification(frame)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bad notification event: %v\n", err)

			return
		}

		fmt.Printf("[%s] @%s\n", notification.Type, notification.Account.Acct)
	})

	session.On(fedi.EventDelete, func(frame fedi.EventFrame) {
		fmt.Printf("[delete] %s\n", fedi.DecodeDelete(frame))
	})
}
