// Command tracker runs one instance of the vehicle session registry and
// carries the operator subcommands that go with it.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/banshee-data/vehicle.tracker/internal/db"
	"github.com/banshee-data/vehicle.tracker/internal/version"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run dispatches on the first argument. With no subcommand, or when the
// first argument is a flag, it serves.
func run(args []string, out io.Writer) error {
	cmd := "serve"
	if len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "serve":
		opts, err := parseServeFlags(args)
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		if err != nil {
			return err
		}
		return serve(opts)

	case "migrate":
		fs := pflag.NewFlagSet("tracker migrate", pflag.ContinueOnError)
		dbPath := fs.String("db-path", "tracker.db", "path to the SQLite database")
		if err := fs.Parse(args); err != nil {
			if errors.Is(err, pflag.ErrHelp) {
				return nil
			}
			return err
		}
		return db.RunMigrateCommand(fs.Args(), *dbPath, out)

	case "vehicles", "vehicle", "command", "sweep":
		return runClient(cmd, args, out, nil)

	case "version":
		v := version.Get()
		fmt.Fprintf(out, "tracker %s (%s) built %s with %s\n", v.Version, v.GitSHA, v.BuildTime, v.GoVersion)
		return nil

	case "help":
		printUsage(out)
		return nil

	default:
		printUsage(out)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func printUsage(out io.Writer) {
	fmt.Fprint(out, `Usage: tracker [command] [flags]

Commands:
  serve                      Run a registry instance (default)
  migrate <action>           Manage the database schema (see 'tracker migrate help')
  vehicles                   List active vehicles of a running instance
  vehicle <id>               Show the status of one vehicle
  command <id> <command>     Push a command to a vehicle streaming to the instance
  sweep                      Ask the instance for an immediate sweeper pass
  version                    Print build information

Run 'tracker serve --help' for server flags.
`)
}
