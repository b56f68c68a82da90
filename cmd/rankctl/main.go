// rankctl parses athletics all-time ranking pages from the command line.
package main

import (
	"os"

	"github.com/couchcryptid/athletics-rankings-etl/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
