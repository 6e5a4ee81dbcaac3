package main

import (
	"fmt"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/spf13/cobra"
)

func newTidyCmd() *cobra.Command {
	var olderThan string
	cmd := &cobra.Command{
		Use:   "tidy",
		Short: "archive closed beans, release stale claims, and rebuild the index",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd)
			if err != nil {
				return err
			}
			staleAfter, err := staleBoundFromConfigOrFlag(app, olderThan)
			if err != nil {
				return err
			}
			report, err := app.engine.Tidy(app.ctx, staleAfter)
			if err != nil {
				return err
			}
			if !flags.quiet {
				fmt.Printf("archived %d, released %d stale claim(s)\n", len(report.Archived), len(report.ClaimsReleased))
				for _, w := range report.Warnings {
					fmt.Println("warning:", w.Message)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&olderThan, "older-than", "", `natural-language staleness bound for released claims, e.g. "2 hours ago"`)
	return cmd
}

// staleBoundFromConfigOrFlag parses --older-than as a human-friendly
// natural-language phrase via olebedev/when, falling back to the store's
// configured StaleClaimAfterSeconds.
func staleBoundFromConfigOrFlag(app *appContext, phrase string) (time.Duration, error) {
	if phrase == "" {
		cfg, err := loadConfig(app)
		if err != nil {
			return 0, err
		}
		return time.Duration(cfg.StaleClaimAfterSeconds) * time.Second, nil
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	result, err := w.Parse(phrase, time.Now())
	if err != nil || result == nil {
		return 0, fmt.Errorf("could not parse %q as a time phrase", phrase)
	}
	d := time.Since(result.Time)
	if d < 0 {
		d = -d
	}
	return d, nil
}
