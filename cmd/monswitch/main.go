// Package main switches a two-monitor desktop between the game and work layouts.
package main

import (
	"os"

	"github.com/frudas24/monswitch/internal/display"
	"github.com/frudas24/monswitch/internal/monitor"
)

// main is the entrypoint for the monswitch CLI.
func main() {
	deps := dependencies{
		newAPI: display.NewAPI,
		lister: monitor.ListMonitors,
	}
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr, deps))
}
