package config

// DefaultProjectYAML is the scaffold written by `proj init`. It parses
// cleanly through [Parse] so a freshly initialized project works with
// run and document out of the box.
const DefaultProjectYAML = `title: project-demo
description: Describe what this project does.

commands:
  hello:
    help: Print a greeting
    exec: echo hello

  env-check:
    help: Show the extra environment passed to commands
    exec: printenv GREETING
    env:
      GREETING: hello from project.yml

workflows:
  all:
    help: Run every command in order
    steps: [hello, env-check]
`
