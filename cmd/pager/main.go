package main

import (
	"os"

	"github.com/deltegui/pager/internal/cli"
)

var version = "dev"

func run() error {
	return cli.NewRootCmd(version).Execute()
}

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}
