package main

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/beansdev/beans/internal/graph"
	"github.com/beansdev/beans/internal/index"
)

// newWatchCmd implements a foreground, read-only watch over the store
// root: on every write, create, remove or rename event it rebuilds the
// index and re-prints the @ready set. It is explicitly not a daemon — it
// runs until the user
// interrupts it (Ctrl-C), holds no lock, and writes nothing but the
// index cache beans already rebuilds on every other command.
func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "watch the store for changes and print a summary on every rebuild (foreground, not a daemon)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd)
			if err != nil {
				return err
			}

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("watch: %w", err)
			}
			defer watcher.Close()

			if err := watcher.Add(app.store.Root); err != nil {
				return fmt.Errorf("watch: %w", err)
			}
			if err := watcher.Add(app.store.ArchiveRoot()); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("watch: %w", err)
			}

			printSummary := func() {
				idx, warnings, err := index.Build(app.ctx, app.store, true)
				if err != nil {
					app.log.Error("rebuild failed", "error", err)
					return
				}
				if err := index.Save(app.store.IndexPath(), idx); err != nil {
					app.log.Error("save index failed", "error", err)
					return
				}
				for _, w := range warnings {
					app.log.Warn(w.Message)
				}
				ready := graph.New(idx).Ready()
				fmt.Println(renderIDList(app, idx, ready, false))
			}

			printSummary()
			for {
				select {
				case <-app.ctx.Done():
					return nil
				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
						continue
					}
					printSummary()
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					app.log.Error("watch error", "error", err)
				}
			}
		},
	}
}
