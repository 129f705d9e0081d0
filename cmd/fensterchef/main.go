// Command fensterchef is a tiling X11 window manager. It connects to the
// display named by $DISPLAY, becomes the window manager of the default
// screen, loads its configuration, and runs the event loop described in
// spec.md §4/§6 until interrupted.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	var (
		configPath  string
		checkConfig bool
		logLevel    string
	)

	root := &cobra.Command{
		Use:   "fensterchef",
		Short: "A tiling X11 window manager",
		RunE: func(cmd *cobra.Command, args []string) error {
			if checkConfig {
				return runCheckConfig(configPath, logLevel)
			}
			return run(configPath, logLevel)
		},
	}
	root.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath(), "path to the configuration file")
	root.Flags().BoolVar(&checkConfig, "check-config", false, "parse the configuration file and report errors without starting")
	root.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.Version = version

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir + "/.config/fensterchef/config"
	}
	return "fensterchef.conf"
}
