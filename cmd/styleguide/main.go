// styleguide renders lint results from a multi-language lint run as a text
// report, JSON or SARIF 2.1.0.
package main

import (
	"os"

	"github.com/tydukes/coding-style-guide-sub009/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
