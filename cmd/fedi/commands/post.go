package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fedikit/fedigo/pkg/fedi"
)

// NewPostCommand creates the post command.
func NewPostCommand() *cobra.Command {
	var (
		visibility string
		spoiler    string
		sensitive  bool
		replyTo    string
		mediaFiles []string
	)

	cmd := &cobra.Command{
		Use:   "post <text>",
		Short: "Publish a status",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" && len(mediaFiles) == 0 {
				return ErrStatusTextRequired
			}

			if viper.GetString("token") == "" {
				return ErrNotAuthenticated
			}

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			mediaIDs := make([]string, 0, len(mediaFiles))

			for _, path := range mediaFiles {
				file, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("opening media file: %w", err)
				}

				attachment, err := client.Media().Upload(ctx, file, filepath.Base(path), "")

				_ = file.Close()

				if err != nil {
					return fmt.Errorf("uploading media: %w", err)
				}

				mediaIDs = append(mediaIDs, attachment.ID)
			}

			status, err := client.Statuses().Create(ctx, &fedi.StatusCreateRequest{
				Status:      text,
				InReplyToID: replyTo,
				MediaIDs:    mediaIDs,
				Sensitive:   sensitive,
				SpoilerText: spoiler,
				Visibility:  visibility,
			})
			if err != nil {
				return fmt.Errorf("creating status: %w", err)
			}

			format := viper.GetString("output")
			if format != OutputFormatTable {
				return renderStructured(format, status)
			}

			fmt.Printf("Posted %s\n", status.URL)

			return nil
		},
	}

	cmd.Flags().StringVar(&visibility, "visibility", "", "visibility (public, unlisted, private, direct)")
	cmd.Flags().StringVar(&spoiler, "cw", "", "content warning text")
	cmd.Flags().BoolVar(&sensitive, "sensitive", false, "mark attached media as sensitive")
	cmd.Flags().StringVar(&replyTo, "reply-to", "", "status ID being replied to")
	cmd.Flags().StringSliceVar(&mediaFiles, "media", nil, "media files to attach")

	return cmd
}
