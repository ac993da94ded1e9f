// Package main is the entry point of radar-runner, the market-hours aware
// dispatcher for the radar-fundamentos collector.
package main

import (
	"os"
	_ "time/tzdata"

	"github.com/aristath/radar-runner/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
