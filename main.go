// Command adxutil validates, builds and previews ADX projects.
package main

import (
	"os"

	"github.com/AskiaADX/ADXStudio-sub004/internal/cli"
)

// Build information, injected with
// -ldflags "-X main.version=... -X main.commit=... -X main.date=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := cli.Execute(version, commit, date); err != nil {
		return 1
	}
	return 0
}
