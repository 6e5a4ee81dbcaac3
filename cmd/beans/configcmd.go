package main

import (
	"fmt"

	"github.com/spf13/cobra"

	beansconfig "github.com/beansdev/beans/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "get or set store configuration, honoring BEANS_* env overrides",
	}
	cmd.AddCommand(newConfigGetCmd(), newConfigSetCmd())
	return cmd
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "print a configuration value (env > file)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd)
			if err != nil {
				return err
			}
			v := bindViper(app.store)
			val := v.Get(args[0])
			if val == nil {
				return fmt.Errorf("config key %q is not set", args[0])
			}
			fmt.Println(val)
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "persist a configuration value to config.toml",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd)
			if err != nil {
				return err
			}
			cfg, err := beansconfig.LoadLocal(app.store.ConfigPath())
			if err != nil {
				return err
			}
			key, value := args[0], args[1]
			switch key {
			case "project":
				cfg.Project = value
			case "run":
				cfg.Run = value
			case "next_id":
				var n int64
				if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
					return fmt.Errorf("next_id must be an integer: %w", err)
				}
				cfg.NextID = n
			case "stale_claim_after_seconds":
				var n int64
				if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
					return fmt.Errorf("stale_claim_after_seconds must be an integer: %w", err)
				}
				cfg.StaleClaimAfterSeconds = n
			default:
				return fmt.Errorf("unknown config key %q", key)
			}
			if err := beansconfig.Save(app.store.ConfigPath(), cfg); err != nil {
				return err
			}
			if !flags.quiet {
				fmt.Printf("%s = %s\n", key, value)
			}
			return nil
		},
	}
}
