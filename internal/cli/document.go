package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"proj/internal/docs"
)

func newDocumentCommand(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "document",
		Short: "Generate Markdown documentation for the project",
		Long: `Generate a Markdown description of every command and workflow
declared in project.yml, in declaration order, without executing
anything.

The generated block is wrapped in hidden markers. When the output file
already exists and contains those markers, only the marked region is
replaced and any hand-written content around it is kept. A file
containing the ignore marker is never touched.

Use --output - to print to stdout instead of writing a file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := app.loadProject()
			if err != nil {
				app.errorf("%v", err)
				return NewExitError(ExitResolveFailure)
			}

			content := docs.Render(project)

			if output == "-" {
				fmt.Fprint(app.Stdout, content)
				return nil
			}

			path := output
			if !filepath.IsAbs(path) {
				path = filepath.Join(app.projectDir, output)
			}

			if existing, err := os.ReadFile(path); err == nil {
				merged, mergeErr := docs.Merge(string(existing), content)
				if errors.Is(mergeErr, docs.ErrIgnoreMarker) {
					fmt.Fprintln(app.Stdout, app.Styles().Muted.Render(
						"found ignore marker in "+output+": skipping"))
					return nil
				}
				if mergeErr != nil {
					app.errorf("%v", mergeErr)
					return NewExitError(ExitResolveFailure)
				}
				content = merged
			}

			if err := docs.WriteFile(path, content); err != nil {
				app.errorf("%v", err)
				return NewExitError(ExitResolveFailure)
			}

			fmt.Fprintln(app.Stdout, app.Styles().Success.Render("✓ saved project documentation to "+output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "README.md",
		"output file path, or - for stdout")

	return cmd
}
