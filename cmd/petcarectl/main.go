package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

var CLI struct {
	Version  kong.VersionFlag
	LogLevel string `help:"Log level (debug, info, warn, error)." env:"LOG_LEVEL" default:"info"`

	Migrate MigrateCmd `cmd:"" help:"Apply the embedded schema to Postgres or SQLite."`
	Ping    PingCmd    `cmd:"" help:"Check connectivity with the configured storage."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("petcarectl"),
		kong.Description("Operational tasks for the pet-care API"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	if err := ctx.Run(newAppContext(CLI.LogLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
