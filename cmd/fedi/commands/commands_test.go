package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAccountsCommand(t *testing.T) {
	cmd := NewAccountsCommand()
	assert.Equal(t, "accounts", cmd.Use)
	assert.Equal(t, "Inspect and manage accounts", cmd.Short)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 6)

	var commandNames []string
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "show")
	assert.Contains(t, commandNames, "whoami")
	assert.Contains(t, commandNames, "search")
	assert.Contains(t, commandNames, "follow")
	assert.Contains(t, commandNames, "unfollow")
	assert.Contains(t, commandNames, "followers")
}

func TestNewTimelineCommand(t *testing.T) {
	cmd := NewTimelineCommand()
	assert.Equal(t, "timeline [home|public|tag <tag>|list <id>]", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)

	assert.NotNil(t, cmd.Flags().Lookup("local"))
	assert.NotNil(t, cmd.Flags().Lookup("limit"))
	assert.NotNil(t, cmd.Flags().Lookup("pages"))
}

func TestNewNotificationsCommand(t *testing.T) {
	cmd := NewNotificationsCommand()
	assert.Equal(t, "notifications", cmd.Use)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 3)

	var commandNames []string
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "dismiss")
	assert.Contains(t, commandNames, "clear")
}

func TestNewStreamCommand(t *testing.T) {
	cmd := NewStreamCommand()
	assert.Equal(t, "stream [user|public|tag <tag>|list <id>]", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	assert.NotNil(t, cmd.Flags().Lookup("ws"))
	assert.NotNil(t, cmd.Flags().Lookup("local"))
}

func TestNewConfigCommand(t *testing.T) {
	cmd := NewConfigCommand()
	assert.Equal(t, "config", cmd.Use)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 3)
}

func TestNewPostCommand(t *testing.T) {
	cmd := NewPostCommand()
	assert.Equal(t, "post <text>", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	assert.NotNil(t, cmd.Flags().Lookup("visibility"))
	assert.NotNil(t, cmd.Flags().Lookup("cw"))
	assert.NotNil(t, cmd.Flags().Lookup("sensitive"))
	assert.NotNil(t, cmd.Flags().Lookup("reply-to"))
	assert.NotNil(t, cmd.Flags().Lookup("media"))
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3", "abc123", "2026-01-01")
	assert.Equal(t, "version", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}
