// Package docs generates Markdown documentation from a loaded project.
//
// Rendering walks the entry registry in declaration order and never
// executes anything. The output is deterministic: the same project
// configuration always produces byte-identical text. Workflows are
// documented one level deep, showing their declared step names rather
// than the fully expanded plan; nested workflows are discovered by
// following their own entries.
//
// The generated block is wrapped in marker comments so it can be
// re-rendered in place inside a README that carries hand-written
// content before or after it.
package docs

import (
	"errors"
	"fmt"
	"strings"

	"proj/internal/config"
)

// Markers delimiting the auto-generated region of an output file.
const (
	// MarkerStart opens the auto-generated block.
	MarkerStart = "<!-- PROJ: AUTO-GENERATED DOCS START (do not remove) -->"

	// MarkerEnd closes the auto-generated block.
	MarkerEnd = "<!-- PROJ: AUTO-GENERATED DOCS END (do not remove) -->"

	// MarkerIgnore, anywhere in an existing file, prevents the file
	// from being touched at all.
	MarkerIgnore = "<!-- PROJ: IGNORE -->"
)

// ErrIgnoreMarker is returned by [Merge] when the existing file opts
// out of documentation generation via [MarkerIgnore].
var ErrIgnoreMarker = errors.New("existing file contains the ignore marker")

const (
	introProject = "The [`project.yml`](project.yml) defines the commands and workflows available in this project."

	introCommands = "The following commands are defined by the project. They can be executed with `proj run <name>`."

	introWorkflows = "The following workflows are defined by the project. They can be executed with `proj run <name>` and run their steps in the declared order."
)

// Render produces the Markdown documentation for a project, wrapped in
// the start/end markers. It has no side effects.
func Render(project *config.Project) string {
	var b strings.Builder

	section := func(lines ...string) {
		for _, line := range lines {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	section(MarkerStart)

	title := "Project"
	if project.Title != "" {
		title = "Project: " + project.Title
	}
	section("# " + title)

	if project.Description != "" {
		section(project.Description)
	}

	section("## project.yml")
	section(introProject)

	if commands := project.Registry.Commands(); len(commands) > 0 {
		section("### Commands")
		section(introCommands)

		rows := []string{
			"| Command | Runs | Description |",
			"| --- | --- | --- |",
		}
		for _, cmd := range commands {
			rows = append(rows, fmt.Sprintf("| `%s` | `%s` | %s |", cmd.Name, cmd.Exec, cmd.Help))
		}
		section(rows...)
	}

	if workflows := project.Registry.Workflows(); len(workflows) > 0 {
		section("### Workflows")
		section(introWorkflows)

		rows := []string{
			"| Workflow | Steps | Description |",
			"| --- | --- | --- |",
		}
		for _, wf := range workflows {
			steps := make([]string, len(wf.Steps))
			for i, s := range wf.Steps {
				steps[i] = "`" + s + "`"
			}
			rows = append(rows, fmt.Sprintf("| `%s` | %s | %s |",
				wf.Name, strings.Join(steps, " &rarr; "), wf.Help))
		}
		section(rows...)
	}

	b.WriteString(MarkerEnd)
	b.WriteString("\n")
	return b.String()
}

// Merge combines freshly generated documentation with the existing
// content of the output file.
//
// When the existing content carries both markers, only the region
// between them is replaced and surrounding hand-written content is
// kept. When it carries [MarkerIgnore], Merge returns
// [ErrIgnoreMarker] and the file must be left untouched. Otherwise the
// generated text replaces the file wholesale.
func Merge(existing, generated string) (string, error) {
	if strings.Contains(existing, MarkerIgnore) {
		return "", ErrIgnoreMarker
	}
	start := strings.Index(existing, MarkerStart)
	end := strings.Index(existing, MarkerEnd)
	if start >= 0 && end >= 0 && start < end {
		before := existing[:start]
		after := existing[end+len(MarkerEnd):]
		after = strings.TrimPrefix(after, "\n")
		return before + generated + after, nil
	}
	return generated, nil
}
