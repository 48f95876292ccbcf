package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/banshee-data/vehicle.tracker/internal/api"
	"github.com/banshee-data/vehicle.tracker/internal/httputil"
	"github.com/banshee-data/vehicle.tracker/internal/tracking"
	"github.com/banshee-data/vehicle.tracker/internal/units"
)

// runClient implements the subcommands that talk to a running instance over
// its HTTP API. hc is nil outside tests.
func runClient(cmd string, args []string, out io.Writer, hc httputil.HTTPClient) error {
	fs := pflag.NewFlagSet("tracker "+cmd, pflag.ContinueOnError)
	addr := fs.String("addr", "http://localhost:8080", "base URL of the tracker HTTP API")
	asJSON := fs.Bool("json", false, "print raw JSON")
	timeout := fs.Duration("timeout", 10*time.Second, "request timeout")
	unit := fs.String("units", units.KMH, "speed units for table output: "+units.GetValidUnitsString())
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if !units.IsValid(*unit) {
		return fmt.Errorf("invalid units %q; must be one of: %s", *unit, units.GetValidUnitsString())
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	c := api.NewClient(*addr, hc)

	switch cmd {
	case "vehicles":
		vehicles, err := c.Vehicles(ctx)
		if err != nil {
			return err
		}
		if *asJSON {
			return printJSON(out, vehicles)
		}
		printVehicles(out, vehicles, *unit)

	case "vehicle":
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: tracker vehicle <id>")
		}
		v, err := c.Vehicle(ctx, tracking.VehicleID(fs.Arg(0)))
		if err != nil {
			return err
		}
		if *asJSON {
			return printJSON(out, v)
		}
		printVehicles(out, []*tracking.VehicleStatus{v}, *unit)

	case "command":
		if fs.NArg() != 2 {
			return fmt.Errorf("usage: tracker command <id> <command>")
		}
		msg, err := c.SendCommand(ctx, tracking.VehicleID(fs.Arg(0)), tracking.Command(fs.Arg(1)))
		if err != nil {
			return err
		}
		fmt.Fprintln(out, msg)

	case "sweep":
		queued, err := c.RunSweeper(ctx)
		if err != nil {
			return err
		}
		if queued {
			fmt.Fprintln(out, "sweeper run queued")
		} else {
			fmt.Fprintln(out, "sweeper run already pending")
		}
	}
	return nil
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printVehicles(out io.Writer, vehicles []*tracking.VehicleStatus, unit string) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VEHICLE\tSTATUS\tPOINTS\tSPEED CHANGES\tLAST SPEED")
	for _, v := range vehicles {
		speed := "-"
		if v.LastPosition != nil {
			speed = fmt.Sprintf("%.1f %s", units.ConvertSpeed(v.LastPosition.SpeedKmh, unit), units.Label(unit))
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", v.VehicleID, v.Status, v.TotalPoints, v.SpeedChangeCount, speed)
	}
	tw.Flush()
}
