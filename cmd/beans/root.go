package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/beansdev/beans/internal/beanerr"
	"github.com/beansdev/beans/internal/config"
	"github.com/beansdev/beans/internal/lifecycle"
	"github.com/beansdev/beans/internal/store"
	"github.com/beansdev/beans/internal/types"
	"github.com/beansdev/beans/internal/ui"
)

// globalFlags holds the state shared by every subcommand.
type globalFlags struct {
	storeDir string
	jsonOut  bool
	quiet    bool
	actor    string
}

var flags globalFlags

// appContext bundles everything a command needs once the store has been
// discovered: the engine, a logger matched to --json, and a renderer.
type appContext struct {
	ctx      context.Context
	store    *store.Store
	engine   *lifecycle.Engine
	log      *slog.Logger
	renderer *ui.Renderer
	actor    string
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "beans",
		Short:         "a stateless, file-backed task engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.storeDir, "store", "", "path to start store discovery from (default: current directory)")
	root.PersistentFlags().BoolVar(&flags.jsonOut, "json", false, "emit machine-readable JSON output")
	root.PersistentFlags().BoolVar(&flags.quiet, "quiet", false, "suppress non-essential output")
	root.PersistentFlags().StringVar(&flags.actor, "actor", "", "actor identity (default: $BEANS_ACTOR)")

	root.AddCommand(
		newInitCmd(),
		newCreateCmd(),
		newQuickCmd(),
		newClaimCmd(),
		newVerifyCmd(),
		newCloseCmd(),
		newReopenCmd(),
		newDeleteCmd(),
		newAdoptCmd(),
		newTidyCmd(),
		newArchiveCmd(),
		newUnarchiveCmd(),
		newReadyCmd(),
		newBlockedCmd(),
		newShowCmd(),
		newListCmd(),
		newDepCmd(),
		newHooksCmd(),
		newConfigCmd(),
		newWatchCmd(),
	)
	wrapArgsValidators(root)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return wrapUsageError(err)
	})
	return root
}

// wrapArgsValidators marks every command's positional-argument check as a
// usage error (exit code 2) rather than a lifecycle error (exit code 1),
// recursing into subcommands like `dep add`/`config get`.
func wrapArgsValidators(cmd *cobra.Command) {
	if cmd.Args != nil {
		inner := cmd.Args
		cmd.Args = func(c *cobra.Command, args []string) error {
			if err := inner(c, args); err != nil {
				return wrapUsageError(err)
			}
			return nil
		}
	}
	for _, child := range cmd.Commands() {
		wrapArgsValidators(child)
	}
}

func actor() string {
	if flags.actor != "" {
		return flags.actor
	}
	return os.Getenv("BEANS_ACTOR")
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("BEANS_DEBUG") == "1" {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if flags.jsonOut {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// setup discovers the store from --store (or the working directory),
// builds a logger and engine, and returns the per-command appContext.
func setup(cmd *cobra.Command) (*appContext, error) {
	start := flags.storeDir
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, beanerr.WrapIO(".", err)
		}
		start = wd
	}
	s, err := store.Discover(start)
	if err != nil {
		return nil, err
	}
	log := newLogger()
	engine := lifecycle.New(s, log)

	var out = cmd.OutOrStdout()
	renderer := ui.NewRenderer(out, flags.jsonOut || !isTerminal(out))

	return &appContext{
		ctx:      cmd.Context(),
		store:    s,
		engine:   engine,
		log:      log,
		renderer: renderer,
		actor:    actor(),
	}, nil
}

func isTerminal(w interface{ Write([]byte) (int, error) }) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// loadConfig reads config.toml for commands that need Config fields
// (e.g. tidy's default stale-claim bound) without going through Viper.
func loadConfig(app *appContext) (*types.Config, error) {
	return config.LoadLocal(app.store.ConfigPath())
}

// bindViper wires a Viper instance over config.toml for the config
// get/set commands, giving BEANS_* env vars precedence over the file.
// No command-line flags are bound to it.
func bindViper(s *store.Store) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(s.ConfigPath())
	v.SetConfigType("toml")
	v.SetEnvPrefix("BEANS")
	v.AutomaticEnv()
	_ = v.ReadInConfig()
	return v
}

func printJSONOrLine(app *appContext, jsonFn func() (string, error), lineFn func() string) error {
	if flags.jsonOut {
		s, err := jsonFn()
		if err != nil {
			return err
		}
		fmt.Println(s)
		return nil
	}
	if !flags.quiet {
		fmt.Println(lineFn())
	}
	return nil
}
