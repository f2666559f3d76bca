// Package config loads and validates the project.yml configuration file.
//
// A project file declares named commands (single shell invocations) and
// named workflows (ordered compositions of commands and/or other
// workflows). Both kinds share one namespace: a name may not be reused
// across the two sections. The parsed catalogue is exposed as a
// [Registry], which preserves declaration order so that documentation
// and listings are stable across invocations.
//
// Key types:
//   - [Project] is the fully loaded configuration for one project
//   - [Registry] is the ordered, read-only name -> entry catalogue
//   - [Command] and [Workflow] are the two entry kinds
//   - [Settings] holds tool-level settings loaded via Viper
//
// Load-time validation rejects duplicate names ([DuplicateNameError])
// and structurally invalid entries ([MalformedEntryError]) before any
// command is resolved or executed.
package config

import (
	"fmt"

	"github.com/kballard/go-shellquote"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default project configuration file name.
const DefaultConfigFile = "project.yml"

// On-failure policy values for workflow execution.
const (
	// OnFailureStop halts the plan at the first failing step.
	OnFailureStop = "stop"

	// OnFailureContinue runs every step regardless of individual failures.
	OnFailureContinue = "continue"
)

// Entry is either a *[Command] or a *[Workflow]. The two kinds share a
// single namespace inside a [Registry] and are told apart by type switch.
type Entry interface {
	// EntryName returns the unique name the entry was declared under.
	EntryName() string
}

// Exec is a command invocation declared either as a single shell-style
// string or as an explicit argv list.
//
//	exec: go test ./...
//
//	exec: [go, test, ./...]
//
// The string form is tokenized with shell-style quoting rules when the
// command is executed; the list form is passed through verbatim.
type Exec struct {
	// Command is the string form. Empty when the list form was used.
	Command string

	// Args is the argv list form. Nil when the string form was used.
	Args []string
}

// UnmarshalYAML accepts either a scalar or a sequence node.
func (e *Exec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&e.Command)
	case yaml.SequenceNode:
		return node.Decode(&e.Args)
	default:
		return fmt.Errorf("line %d: exec must be a string or a list of strings", node.Line)
	}
}

// IsZero reports whether no invocation was declared.
func (e Exec) IsZero() bool {
	return e.Command == "" && len(e.Args) == 0
}

// Argv returns the invocation as an argv slice. The string form is
// split with shell quoting rules; the list form is returned as-is.
func (e Exec) Argv() ([]string, error) {
	if len(e.Args) > 0 {
		return e.Args, nil
	}
	argv, err := shellquote.Split(e.Command)
	if err != nil {
		return nil, fmt.Errorf("invalid exec string %q: %w", e.Command, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("exec string %q contains no command", e.Command)
	}
	return argv, nil
}

// String returns the invocation in display form.
func (e Exec) String() string {
	if len(e.Args) > 0 {
		return shellquote.Join(e.Args...)
	}
	return e.Command
}

// Command is a single named shell invocation.
//
// Workdir is resolved relative to the project directory when it is not
// absolute; when empty, the command runs in the project directory
// itself. Env entries are merged over the host environment.
type Command struct {
	Name    string            `yaml:"-"`
	Help    string            `yaml:"help"`
	Exec    Exec              `yaml:"exec"`
	Workdir string            `yaml:"workdir"`
	Env     map[string]string `yaml:"env"`
}

// EntryName implements [Entry].
func (c *Command) EntryName() string { return c.Name }

// Workflow is a named ordered composition of command and/or workflow
// references. Steps are executed depth-first, left to right.
type Workflow struct {
	Name  string   `yaml:"-"`
	Help  string   `yaml:"help"`
	Steps []string `yaml:"steps"`
}

// EntryName implements [Entry].
func (w *Workflow) EntryName() string { return w.Name }

// Registry is the ordered catalogue of all declared entries. It is
// built once by [Parse] and read-only thereafter.
type Registry struct {
	entries map[string]Entry
	order   []string
}

// Lookup returns the entry declared under name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.entries[name]
	return e, ok
}

// Entries returns all entries in declaration order: commands in file
// order, followed by workflows in file order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.order))
	for i, name := range r.order {
		out[i] = r.entries[name]
	}
	return out
}

// Commands returns the declared commands in declaration order.
func (r *Registry) Commands() []*Command {
	var out []*Command
	for _, name := range r.order {
		if c, ok := r.entries[name].(*Command); ok {
			out = append(out, c)
		}
	}
	return out
}

// Workflows returns the declared workflows in declaration order.
func (r *Registry) Workflows() []*Workflow {
	var out []*Workflow
	for _, name := range r.order {
		if w, ok := r.entries[name].(*Workflow); ok {
			out = append(out, w)
		}
	}
	return out
}

// Len returns the number of declared entries.
func (r *Registry) Len() int { return len(r.order) }

// add registers an entry, rejecting empty and duplicate names.
func (r *Registry) add(e Entry) error {
	name := e.EntryName()
	if name == "" {
		return &MalformedEntryError{Name: name, Reason: "entry name must not be empty"}
	}
	if _, exists := r.entries[name]; exists {
		return &DuplicateNameError{Name: name}
	}
	r.entries[name] = e
	r.order = append(r.order, name)
	return nil
}

// Project is one fully loaded project configuration.
type Project struct {
	// Title and Description feed the generated documentation header.
	Title       string
	Description string

	// OnFailure is the declared default failure policy ("stop" or
	// "continue"). Empty when project.yml does not set one.
	OnFailure string

	// Dir is the directory containing the configuration file. Commands
	// without an explicit workdir run here.
	Dir string

	// Registry is the ordered entry catalogue.
	Registry *Registry
}
