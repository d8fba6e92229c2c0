package main

import (
	"os"

	"github.com/forgenotes/changelog-gen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
