package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DuplicateNameError reports a name declared more than once across the
// combined command/workflow namespace.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate entry name %q: commands and workflows share one namespace", e.Name)
}

// MalformedEntryError reports an entry that is structurally invalid,
// such as a command without an exec or a workflow without steps.
type MalformedEntryError struct {
	Name   string
	Reason string
}

func (e *MalformedEntryError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("malformed entry: %s", e.Reason)
	}
	return fmt.Sprintf("malformed entry %q: %s", e.Name, e.Reason)
}

// rawProject mirrors the top-level project.yml structure. The commands
// and workflows sections are kept as raw nodes so that declaration
// order can be preserved while decoding.
type rawProject struct {
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	OnFailure   string    `yaml:"on_failure"`
	Commands    yaml.Node `yaml:"commands"`
	Workflows   yaml.Node `yaml:"workflows"`
}

// Load reads and parses the project configuration at path. The
// returned project's Dir is the directory containing the file.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project config: %w", err)
	}

	dir := filepath.Dir(path)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	project, err := Parse(data, dir)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", filepath.Base(path), err)
	}
	return project, nil
}

// Parse parses project.yml content and validates it. dir becomes the
// project directory that relative workdirs resolve against.
func Parse(data []byte, dir string) (*Project, error) {
	var raw rawProject
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("not valid YAML: %w", err)
	}

	switch raw.OnFailure {
	case "", OnFailureStop, OnFailureContinue:
	default:
		return nil, fmt.Errorf("unknown on_failure policy %q (expected %q or %q)",
			raw.OnFailure, OnFailureStop, OnFailureContinue)
	}

	reg := &Registry{entries: make(map[string]Entry)}

	if err := decodeCommands(&raw.Commands, reg); err != nil {
		return nil, err
	}
	if err := decodeWorkflows(&raw.Workflows, reg); err != nil {
		return nil, err
	}

	if reg.Len() == 0 {
		return nil, errors.New("no commands or workflows defined")
	}

	return &Project{
		Title:       raw.Title,
		Description: raw.Description,
		OnFailure:   raw.OnFailure,
		Dir:         dir,
		Registry:    reg,
	}, nil
}

// decodeCommands walks the commands mapping in document order.
func decodeCommands(node *yaml.Node, reg *Registry) error {
	if node.Kind == 0 || node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return &MalformedEntryError{Reason: "commands must be a mapping of name to command"}
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]

		cmd := &Command{}
		if err := valNode.Decode(cmd); err != nil {
			return &MalformedEntryError{Name: keyNode.Value, Reason: err.Error()}
		}
		cmd.Name = keyNode.Value

		if cmd.Exec.IsZero() {
			return &MalformedEntryError{Name: cmd.Name, Reason: "command has no exec"}
		}

		if err := reg.add(cmd); err != nil {
			return err
		}
	}
	return nil
}

// decodeWorkflows walks the workflows mapping in document order. Each
// workflow may be declared as a mapping with a steps key, or directly
// as a step list:
//
//	workflows:
//	  all:
//	    steps: [build, test]
//	  quick: [test]
func decodeWorkflows(node *yaml.Node, reg *Registry) error {
	if node.Kind == 0 || node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return &MalformedEntryError{Reason: "workflows must be a mapping of name to workflow"}
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]

		wf := &Workflow{}
		switch valNode.Kind {
		case yaml.SequenceNode:
			if err := valNode.Decode(&wf.Steps); err != nil {
				return &MalformedEntryError{Name: keyNode.Value, Reason: err.Error()}
			}
		default:
			if err := valNode.Decode(wf); err != nil {
				return &MalformedEntryError{Name: keyNode.Value, Reason: err.Error()}
			}
		}
		wf.Name = keyNode.Value

		if len(wf.Steps) == 0 {
			return &MalformedEntryError{Name: wf.Name, Reason: "workflow has no steps"}
		}
		for _, step := range wf.Steps {
			if step == "" {
				return &MalformedEntryError{Name: wf.Name, Reason: "workflow step name must not be empty"}
			}
		}

		if err := reg.add(wf); err != nil {
			return err
		}
	}
	return nil
}
