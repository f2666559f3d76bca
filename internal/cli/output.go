package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"proj/internal/config"
	"proj/internal/executor"
)

// printEntryListing prints the available commands and workflows when
// run is invoked without a name.
func (a *App) printEntryListing(project *config.Project) {
	s := a.Styles()
	configName := filepath.Base(a.configPath())

	if project.Title != "" {
		fmt.Fprintln(a.Stdout, s.Title.Render(project.Title))
		if project.Description != "" {
			fmt.Fprintln(a.Stdout, s.Muted.Render(project.Description))
		}
		fmt.Fprintln(a.Stdout)
	}

	if commands := project.Registry.Commands(); len(commands) > 0 {
		fmt.Fprintln(a.Stdout, s.Title.Render("Commands in "+configName))
		tbl := s.newTable("COMMAND", "USAGE", "DESCRIPTION")
		for _, cmd := range commands {
			tbl.Row(cmd.Name, "proj run "+cmd.Name, cmd.Help)
		}
		fmt.Fprintln(a.Stdout, tbl.Render())
		fmt.Fprintln(a.Stdout)
	}

	if workflows := project.Registry.Workflows(); len(workflows) > 0 {
		fmt.Fprintln(a.Stdout, s.Title.Render("Workflows in "+configName))
		tbl := s.newTable("WORKFLOW", "USAGE", "STEPS")
		for _, wf := range workflows {
			tbl.Row(wf.Name, "proj run "+wf.Name, strings.Join(wf.Steps, " -> "))
		}
		fmt.Fprintln(a.Stdout, tbl.Render())
	}
}

// stepBanner returns the per-step callback for executor progress.
func (a *App) stepBanner() executor.StepStartFunc {
	return func(index, total int, cmd *config.Command) {
		s := a.Styles()
		header := fmt.Sprintf("[%d/%d] %s", index, total, cmd.Name)
		fmt.Fprintln(a.Stdout, s.Banner.Render(header))
		fmt.Fprintln(a.Stdout, s.Muted.Render("$ "+cmd.Exec.String()))
	}
}

// printRunSummary prints the per-step outcome table after a run.
func (a *App) printRunSummary(name string, results []executor.Result, planned int, elapsed time.Duration) {
	s := a.Styles()

	fmt.Fprintln(a.Stdout)
	if executor.AnyFailed(results) {
		fmt.Fprintln(a.Stdout, s.Failure.Render(fmt.Sprintf("✗ %s failed", name)))
	} else if len(results) < planned {
		fmt.Fprintln(a.Stdout, s.Failure.Render(fmt.Sprintf("✗ %s aborted", name)))
	} else {
		fmt.Fprintln(a.Stdout, s.Success.Render(fmt.Sprintf("✓ %s complete", name)))
	}

	for _, r := range results {
		mark := s.Success.Render("✓")
		if r.ExitCode != 0 {
			mark = s.Failure.Render(fmt.Sprintf("✗ (exit %d)", r.ExitCode))
		}
		fmt.Fprintf(a.Stdout, "  %-24s %s %s\n",
			r.Name, s.Muted.Render(r.Duration.Round(time.Millisecond).String()), mark)
	}
	if skipped := planned - len(results); skipped > 0 {
		fmt.Fprintln(a.Stdout, s.Muted.Render(fmt.Sprintf("  %d step(s) skipped", skipped)))
	}
	fmt.Fprintln(a.Stdout, s.Muted.Render("  total "+elapsed.Round(time.Millisecond).String()))
}
