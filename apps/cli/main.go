package main

import (
	"github.com/abdul-hamid-achik/checkspec/apps/cli/cmd"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	cmd.Execute(version, buildTime)
}
