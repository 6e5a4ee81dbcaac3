package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/spf13/cobra"

	"github.com/beansdev/beans/internal/lifecycle"
	"github.com/beansdev/beans/internal/types"
)

func newCreateCmd() *cobra.Command {
	return createLikeCmd("create", "create a new bean", false)
}

func newQuickCmd() *cobra.Command {
	return createLikeCmd("quick", "create a new bean, requiring verify or acceptance up front", true)
}

func createLikeCmd(use, short string, requireVerifyOrAcceptance bool) *cobra.Command {
	var opts lifecycle.CreateOptions
	var claim bool
	var retry bool
	var deadline string

	cmd := &cobra.Command{
		Use:   use + " <title>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd)
			if err != nil {
				return err
			}
			opts.Title = args[0]
			opts.RequireVerifyOrAcceptance = requireVerifyOrAcceptance
			if claim {
				opts.ClaimActor = app.actor
			}
			if deadline != "" {
				note, err := deadlineNote(deadline)
				if err != nil {
					return err
				}
				opts.Notes = note
			}

			run := func() (*types.Bean, error) { return app.engine.Create(app.ctx, opts) }
			b, err := maybeRetry(retry, run)
			if err != nil {
				return err
			}

			return printJSONOrLine(app,
				func() (string, error) {
					data, err := json.Marshal(b)
					return string(data), err
				},
				func() string { return fmt.Sprintf("created %s: %s", b.ID, b.Title) },
			)
		},
	}
	cmd.Flags().StringVar(&opts.Parent, "parent", "", "parent bean ID")
	cmd.Flags().StringVar(&opts.Description, "description", "", "free-text description")
	cmd.Flags().StringVar(&opts.Acceptance, "acceptance", "", "acceptance criteria")
	cmd.Flags().StringVar(&opts.Design, "design", "", "design notes")
	cmd.Flags().StringVar(&opts.Verify, "verify", "", "shell command that must pass for close")
	cmd.Flags().BoolVar(&opts.PassOk, "pass-ok", false, "skip the fail-first gate")
	cmd.Flags().IntVar(&opts.Priority, "priority", 2, "priority 0 (highest) to 4")
	cmd.Flags().StringVar(&opts.Assignee, "assignee", "", "intended assignee")
	cmd.Flags().StringSliceVar(&opts.Labels, "label", nil, "opaque tag (repeatable)")
	cmd.Flags().StringSliceVar(&opts.Requires, "requires", nil, "capability token required (repeatable)")
	cmd.Flags().StringSliceVar(&opts.Produces, "produces", nil, "capability token produced (repeatable)")
	cmd.Flags().StringSliceVar(&opts.Dependencies, "dep", nil, "explicit dependency ID (repeatable)")
	cmd.Flags().BoolVar(&claim, "claim", false, "claim the bean immediately for --actor")
	cmd.Flags().BoolVar(&retry, "retry", false, "retry with exponential backoff on a transient conflict")
	cmd.Flags().StringVar(&deadline, "deadline", "", `natural-language deadline recorded as a note, e.g. "2 days from now" (advisory only, not a stored field)`)
	return cmd
}

// deadlineNote resolves a natural-language phrase to an absolute time and
// formats it as a note. Deadlines are advisory only: beans stores the
// resolved text, not a dedicated field.
func deadlineNote(phrase string) (string, error) {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	result, err := w.Parse(phrase, time.Now())
	if err != nil || result == nil {
		return "", fmt.Errorf("could not parse %q as a time phrase", phrase)
	}
	return fmt.Sprintf("deadline: %s", result.Time.Format(time.RFC3339)), nil
}
