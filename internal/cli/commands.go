package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"passgrip/internal/config"
)

func newConfigCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the passgrip config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file holding the current settings",
		Long: `Write a config file holding the current settings.

Defaults, PASSGRIP_* variables and flags given on this command line are
merged, so "passgrip config init --clipboard osc52" records osc52.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := *configPath
			if path == "" {
				path = config.DefaultPath()
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
				} else if !errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("failed to check config file: %w", err)
				}
			}

			// Start from defaults, not from the file being replaced
			cfg, err := config.FromEnv(cmd.Flags())
			if err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")

	cmd.AddCommand(initCmd)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "passgrip %s\n", version)
		},
	}
}
