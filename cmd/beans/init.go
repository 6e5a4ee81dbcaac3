package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/beansdev/beans/internal/store"
)

func newInitCmd() *cobra.Command {
	var project string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "create a new store in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := flags.storeDir
			if dir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return err
				}
				dir = wd
			}
			if project == "" {
				project = dirBase(dir)
			}
			if _, err := store.Init(dir, project); err != nil {
				return err
			}
			cmd.Println("initialized beans store at", dir)
			return nil
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "project name recorded in config.toml")
	return cmd
}

func dirBase(dir string) string {
	for i := len(dir) - 1; i >= 0; i-- {
		if dir[i] == '/' {
			return dir[i+1:]
		}
	}
	return dir
}
