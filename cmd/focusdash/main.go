package main

import (
	"fmt"

	"github.com/tgienger/focusdash/cmd/focusdash/root"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	root.Execute(fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date))
}
