package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dharmasatrya/flightfinder/cmd/flightctl/commands"
)

func main() {
	root := &cobra.Command{
		Use:          "flightctl",
		Short:        "Operate the flight search service from the command line",
		Long:         "Seed the local flight store and run searches through the same pipeline the HTTP server uses.",
		SilenceUsage: true,
	}

	root.PersistentFlags().Bool("debug", false, "Enable debug logging")

	root.AddCommand(commands.SeedCmd())
	root.AddCommand(commands.SearchCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
