// Package cli wires the proj command-line interface.
//
// The CLI is thin plumbing around the engine packages: it locates and
// loads project.yml (config), resolves requested names (resolver),
// runs plans (executor) and writes generated documentation (docs).
// All engine state is passed explicitly; nothing in this package holds
// ambient configuration beyond the [App] it was constructed with.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"proj/internal/config"
)

// App holds the dependencies shared by all commands. Tests construct
// an App with buffer writers; Execute builds one against the real
// process streams.
type App struct {
	Settings *config.Settings
	Stdout   io.Writer
	Stderr   io.Writer

	projectDir string
	configFile string
	noColor    bool

	styles *Styles
}

// NewApp creates an App bound to the host process streams.
func NewApp(settings *config.Settings) *App {
	return &App{
		Settings: settings,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

// Styles returns the terminal styles, honoring --no-color and
// PROJ_NO_COLOR.
func (a *App) Styles() *Styles {
	if a.styles == nil {
		a.styles = NewStyles(a.noColor || a.Settings.NoColor)
	}
	return a.styles
}

// configPath returns the project configuration file path from the
// --project-dir and --config flags, falling back to the settings
// default file name.
func (a *App) configPath() string {
	file := a.configFile
	if file == "" {
		file = a.Settings.ConfigFile
	}
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(a.projectDir, file)
}

// loadProject loads and validates the project configuration.
func (a *App) loadProject() (*config.Project, error) {
	return config.Load(a.configPath())
}

// errorf prints a styled error line to stderr.
func (a *App) errorf(format string, args ...any) {
	fmt.Fprintln(a.Stderr, a.Styles().Failure.Render("✗ "+fmt.Sprintf(format, args...)))
}

// NewRootCommand builds the proj root command with all subcommands.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "proj",
		Short: "Run commands and workflows declared in project.yml",
		Long: `proj is a project-local command runner. A project.yml file declares
named shell commands and named workflows (ordered compositions of
commands and other workflows); proj runs them by name and can generate
Markdown documentation of everything it knows about.

Exit codes:
  0  success
  1  configuration or resolution failure (bad project.yml, unknown
     name, cyclic workflow)
  2  execution failure (failed step, spawn failure, interrupt)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&app.projectDir, "project-dir", "C", ".",
		"project directory to operate in")
	root.PersistentFlags().StringVar(&app.configFile, "config", "",
		"project config file name (default \"project.yml\", or PROJ_CONFIG_FILE)")
	root.PersistentFlags().BoolVar(&app.noColor, "no-color", false,
		"disable terminal colors")

	root.AddCommand(newInitCommand(app))
	root.AddCommand(newRunCommand(app))
	root.AddCommand(newDocumentCommand(app))

	return root
}

// Execute runs the CLI and returns the process exit code. An interrupt
// signal cancels the command context, which kills any running child
// process and aborts the remaining plan.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitResolveFailure
	}

	app := NewApp(settings)
	root := NewRootCommand(app)

	if err := root.ExecuteContext(ctx); err != nil {
		if code, ok := IsExitError(err); ok {
			return code
		}
		fmt.Fprintf(app.Stderr, "Error: %v\n", err)
		return ExitResolveFailure
	}
	return ExitOK
}
