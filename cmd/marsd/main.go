package main

import (
	"os"

	"github.com/mars-protocol/mars-common/cmd/marsd/cmd"
)

func main() {
	home := resolveHome(os.Args[1:])
	if port := loadMetricsPort(home); port > 0 {
		StartPrometheusServer(port)
	}

	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
