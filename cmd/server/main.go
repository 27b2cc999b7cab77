package main // Entry point package

import (
	"fmt"
	"os"

	"github.com/iliyamo/bike-catalog-admin/cmd/server/cli"
)

// Set via -ldflags at build time
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
