package main

import (
	"os"

	"proj/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
