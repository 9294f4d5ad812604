// Package config defines the command line surface. Every flag can also come
// from the environment or a json/yaml/toml config file.
package config

import "github.com/dmove/dmove/internal/cmd"

type Log struct {
	Level string `help:"Log level: trace, debug, info, warn, error" default:"info" enum:"trace,debug,info,warn,error" env:"DMOVE_LOG_LEVEL"`
	File  string `help:"Log file path (default: none; logs only to console)" type:"path" env:"DMOVE_LOG_FILE"`
}

// CLI is the root command structure for kong.
type CLI struct {
	Log    `embed:"" prefix:"log."`
	Config string `help:"Path to a config file (json, yaml or toml)" type:"path" env:"DMOVE_CONFIG"`

	Run         cmd.Run         `cmd:"" default:"withargs" help:"Run the controller service and its control API"`
	Detect      cmd.Detect      `cmd:"" help:"Plug in a pad that holds the stick forward so games can detect it"`
	Shape       cmd.Shape       `cmd:"" help:"Print the stick vector for held directions"`
	Ctl         cmd.Ctl         `cmd:"" help:"Send a command to a running service"`
	PrintConfig cmd.PrintConfig `cmd:"" name:"print-config" help:"Print the effective service configuration"`
	Install     cmd.Install     `cmd:"" help:"Start dmove with the user session"`
	Uninstall   cmd.Uninstall   `cmd:"" help:"Remove the startup entry"`
}
