package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"proj/internal/config"
)

func newInitCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Create a default project.yml",
		Long: `Write a starter project.yml that demonstrates commands, workflows
and per-command environment variables.

Without a path the file is created in the project directory. An
existing file is never overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(app.projectDir, config.DefaultConfigFile)
			if len(args) == 1 {
				path = args[0]
				if info, err := os.Stat(path); err == nil && info.IsDir() {
					path = filepath.Join(path, config.DefaultConfigFile)
				}
			}

			if _, err := os.Stat(path); err == nil {
				app.errorf("%s already exists, not overwriting", path)
				return NewExitError(ExitResolveFailure)
			}

			if err := os.WriteFile(path, []byte(config.DefaultProjectYAML), 0644); err != nil {
				app.errorf("failed to write %s: %v", path, err)
				return NewExitError(ExitResolveFailure)
			}

			fmt.Fprintln(app.Stdout, app.Styles().Success.Render("✓ created "+path))
			return nil
		},
	}
}
