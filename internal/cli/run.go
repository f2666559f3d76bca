package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"proj/internal/config"
	"proj/internal/executor"
	"proj/internal/resolver"
)

func newRunCommand(app *App) *cobra.Command {
	var onFailure string
	var dry bool

	cmd := &cobra.Command{
		Use:   "run [name]",
		Short: "Run a named command or workflow",
		Long: `Run a command or workflow declared in project.yml.

Workflows are expanded depth-first into a flat plan of commands, which
then execute sequentially in declared order. Without a name, run lists
everything the project declares.

The failure policy decides what a non-zero step exit does: "stop"
(default) halts the remaining steps, "continue" runs them all. Either
way the process exits non-zero when any step failed.`,
		Example: `  proj run build
  proj run all --on-failure continue
  proj run all --dry`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := app.loadProject()
			if err != nil {
				app.errorf("%v", err)
				return NewExitError(ExitResolveFailure)
			}

			if len(args) == 0 {
				app.printEntryListing(project)
				return nil
			}
			name := args[0]

			plan, err := resolver.Resolve(project.Registry, name)
			if err != nil {
				app.errorf("%v", err)
				return NewExitError(ExitResolveFailure)
			}

			policy := app.Settings.OnFailure
			if project.OnFailure != "" {
				policy = project.OnFailure
			}
			if cmd.Flags().Changed("on-failure") {
				if onFailure != config.OnFailureStop && onFailure != config.OnFailureContinue {
					app.errorf("unknown on-failure policy %q (expected %q or %q)",
						onFailure, config.OnFailureStop, config.OnFailureContinue)
					return NewExitError(ExitResolveFailure)
				}
				policy = onFailure
			}

			start := time.Now()
			results, execErr := executor.Execute(cmd.Context(), plan, executor.Options{
				OnFailure:   policy,
				BaseDir:     project.Dir,
				DryRun:      dry,
				Stdout:      app.Stdout,
				Stderr:      app.Stderr,
				OnStepStart: app.stepBanner(),
			})
			if execErr != nil {
				app.errorf("%v", execErr)
				return NewExitError(ExitExecFailure)
			}

			app.printRunSummary(name, results, len(plan), time.Since(start))
			if executor.AnyFailed(results) {
				return NewExitError(ExitExecFailure)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&onFailure, "on-failure", "",
		fmt.Sprintf("failure policy: %q or %q (overrides project.yml)",
			config.OnFailureStop, config.OnFailureContinue))
	cmd.Flags().BoolVarP(&dry, "dry", "D", false,
		"print the plan without executing anything")

	return cmd
}
