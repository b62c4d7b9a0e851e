package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configKeys are the keys the config command manages.
var configKeys = []string{"server", "token", "output"}

// NewConfigCommand creates the config command with get/set/list subcommands.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Read and write the persistent configuration at $HOME/.fedi/config.yml",
	}

	cmd.AddCommand(newConfigGetCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigListCommand())

	return cmd
}

func validConfigKey(key string) bool {
	for _, known := range configKeys {
		if key == known {
			return true
		}
	}

	return false
}

func newConfigGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !validConfigKey(key) {
				return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
			}

			value := viper.GetString(key)
			if key == "token" && value != "" {
				value = "***"
			}

			fmt.Println(value)

			return nil
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if !validConfigKey(key) {
				return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
			}

			viper.Set(key, value)

			err := viper.WriteConfig()
			if err != nil {
				// First write; the file does not exist yet.
				err = viper.SafeWriteConfig()
			}

			if err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Printf("Set %s\n", key)

			return nil
		},
	}
}

func newConfigListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, key := range configKeys {
				value := viper.GetString(key)
				if key == "token" && value != "" {
					value = "***"
				}

				fmt.Printf("%s: %s\n", key, value)
			}

			return nil
		},
	}
}
