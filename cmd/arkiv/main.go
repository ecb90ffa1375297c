package main

import (
	"github.com/arkiv-labs/arkiv-cli/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
