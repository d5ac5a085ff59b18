// Command shelf manages a personal book catalogue.
package main

import (
	"os"

	"github.com/mesh-intelligence/shelf/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
