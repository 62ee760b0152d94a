package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guilhermegouw/tabhome/internal/config"
)

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and change configuration",
		Long: `Read and change fields of the global configuration file.

Examples:
  tabhome config list                        Show every field and its value
  tabhome config get home.bundle_limit       Show one field
  tabhome config set home.start_private true Change one field`,
	}

	cmd.AddCommand(newConfigListCmd())
	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())

	return cmd
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every configuration field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			for _, f := range config.Fields {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-8s %s\n", f.Key, cfg.Value(f.Key), f.Description)
			}
			return nil
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Show one configuration field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if _, ok := config.LookupField(key); !ok {
				return fmt.Errorf("unknown config key %q", key)
			}

			value, ok, err := config.GetField(config.GlobalConfigPath(), key)
			if err != nil {
				return err
			}
			if !ok {
				// Not in the file: report the effective default.
				cfg, err := config.Load()
				if err != nil {
					return fmt.Errorf("loading config: %w", err)
				}
				value = cfg.Value(key)
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one configuration field",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := config.ParseFieldValue(args[0], args[1])
			if err != nil {
				return err
			}
			if err := config.SetField(config.GlobalConfigPath(), args[0], value); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", args[0], value)
			return nil
		},
	}
}
