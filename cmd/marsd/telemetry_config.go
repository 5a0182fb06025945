package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/mars-protocol/mars-common/cmd/marsd/cmd"
)

// resolveHome returns the marsd home directory. MARS_HOME wins over --home.
func resolveHome(args []string) string {
	if home := os.Getenv(cmd.EnvPrefix + "_HOME"); home != "" {
		return home
	}

	for i, arg := range args {
		if strings.HasPrefix(arg, "--home=") {
			return strings.SplitN(arg, "=", 2)[1]
		}
		if arg == "--home" && i+1 < len(args) {
			return args[i+1]
		}
	}

	return cmd.DefaultHome
}

// loadMetricsPort reads telemetry.metrics-port from the config file, then
// MARS_TELEMETRY_METRICS_PORT. Zero disables the metrics server.
func loadMetricsPort(home string) int {
	var port int

	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigFile(filepath.Join(home, cmd.ConfigFileName))
	if err := v.ReadInConfig(); err == nil {
		port = parsePort(v.Get("telemetry.metrics-port"))
	}

	if env := os.Getenv(cmd.EnvPrefix + "_TELEMETRY_METRICS_PORT"); env != "" {
		if p := parsePort(env); p > 0 {
			port = p
		}
	}

	return port
}

func parsePort(value any) int {
	port, err := cast.ToIntE(value)
	if err != nil || port <= 0 || port > 65535 {
		return 0
	}
	return port
}
